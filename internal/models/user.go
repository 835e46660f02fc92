package models

import "time"

// UserRole represents the available roles.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
)

// Capability is a named permission consumed as a boolean check. Roles
// are granted capabilities; the services never look at roles directly.
type Capability string

const (
	CapabilityUser  Capability = "user"
	CapabilityAdmin Capability = "admin"
)

// HasCapability reports whether the role grants the capability. Admins
// hold the user capability as well.
func (r UserRole) HasCapability(c Capability) bool {
	switch c {
	case CapabilityUser:
		return r == RoleTeacher || r == RoleAdmin
	case CapabilityAdmin:
		return r == RoleAdmin
	default:
		return false
	}
}

// Capabilities lists the capabilities granted by the role.
func (r UserRole) Capabilities() []Capability {
	caps := make([]Capability, 0, 2)
	if r.HasCapability(CapabilityUser) {
		caps = append(caps, CapabilityUser)
	}
	if r.HasCapability(CapabilityAdmin) {
		caps = append(caps, CapabilityAdmin)
	}
	return caps
}

// User represents an application user stored in the users table. When
// the IServ bridge is enabled, rows are provisioned from portal headers
// and password_hash stays empty.
type User struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	FullName     string     `db:"full_name" json:"full_name"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         UserRole   `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
