package models

import "time"

// NotificationType enumerates the domain events recorded for admins.
type NotificationType string

const (
	NotificationNewBooking     NotificationType = "new_booking"
	NotificationBookingUpdated NotificationType = "booking_updated"
	NotificationBookingDeleted NotificationType = "booking_deleted"
	NotificationSlotBlocked    NotificationType = "slot_blocked"
)

// Notification is one entry of the append-only admin event feed. Only
// is_read/read_at ever mutate.
type Notification struct {
	ID        string           `db:"id" json:"id"`
	BookingID *string          `db:"booking_id" json:"booking_id,omitempty"`
	Type      NotificationType `db:"notification_type" json:"notification_type"`
	Message   string           `db:"message" json:"message"`
	IsRead    bool             `db:"is_read" json:"is_read"`
	ReadAt    *time.Time       `db:"read_at" json:"read_at,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}
