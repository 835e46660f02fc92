package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Offer types a booking can represent.
const (
	OfferTypeSport   = "sport"
	OfferTypeGames   = "games"
	OfferTypeOutdoor = "outdoor"
	OfferTypeOther   = "other"
)

// IsValidOfferType reports whether the offer type is known.
func IsValidOfferType(t string) bool {
	switch t {
	case OfferTypeSport, OfferTypeGames, OfferTypeOutdoor, OfferTypeOther:
		return true
	}
	return false
}

// Student is one participant entry of a booking.
type Student struct {
	Name   string `json:"name" validate:"required"`
	Klasse string `json:"klasse" validate:"required"`
}

// StudentList stores the participant list as a JSONB column.
type StudentList []Student

// Value implements driver.Valuer.
func (s StudentList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal student list: %w", err)
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (s *StudentList) Scan(src interface{}) error {
	if src == nil {
		*s = StudentList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported student list source %T", src)
	}
	if len(raw) == 0 {
		*s = StudentList{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// Booking reserves one (date, period) slot for a group of students.
type Booking struct {
	ID              string      `db:"id" json:"id"`
	Date            time.Time   `db:"date" json:"-"`
	Weekday         string      `db:"weekday" json:"weekday"`
	Period          int         `db:"period" json:"period"`
	TeacherID       string      `db:"teacher_id" json:"teacher_id"`
	TeacherName     string      `db:"teacher_name" json:"teacher_name"`
	TeacherClass    string      `db:"teacher_class" json:"teacher_class"`
	Students        StudentList `db:"students" json:"students"`
	OfferType       string      `db:"offer_type" json:"offer_type"`
	OfferLabel      string      `db:"offer_label" json:"offer_label"`
	CalendarEventID *string     `db:"calendar_event_id" json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// StudentCount returns the number of participants.
func (b *Booking) StudentCount() int {
	return len(b.Students)
}

// MarshalJSON renders the booking with the wire date format and the
// derived student_count field the frontend expects.
func (b Booking) MarshalJSON() ([]byte, error) {
	type alias Booking
	return json.Marshal(struct {
		alias
		Date         string `json:"date"`
		StudentCount int    `json:"student_count"`
	}{
		alias:        alias(b),
		Date:         b.Date.Format("2006-01-02"),
		StudentCount: b.StudentCount(),
	})
}
