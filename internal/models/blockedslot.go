package models

import (
	"encoding/json"
	"time"
)

// BlockedSlot marks one (date, period) as unbookable, e.g. for
// counseling sessions. Unique per (date, period).
type BlockedSlot struct {
	ID            string    `db:"id" json:"id"`
	Date          time.Time `db:"date" json:"-"`
	Weekday       string    `db:"weekday" json:"weekday"`
	Period        int       `db:"period" json:"period"`
	Reason        string    `db:"reason" json:"reason"`
	BlockedBy     string    `db:"blocked_by" json:"blocked_by_id"`
	BlockedByName string    `db:"blocked_by_name" json:"blocked_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// MarshalJSON renders the block with the wire date format.
func (b BlockedSlot) MarshalJSON() ([]byte, error) {
	type alias BlockedSlot
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{
		alias: alias(b),
		Date:  b.Date.Format("2006-01-02"),
	})
}
