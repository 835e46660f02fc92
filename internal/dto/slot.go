package dto

import "github.com/sportoase/sportoase-api/internal/models"

// SlotInfo is the per-period availability view for one date. It carries
// the full booking list so teachers and admins can see who reserved the
// period, not just counts.
type SlotInfo struct {
	Period          int              `json:"period"`
	Weekday         string           `json:"weekday"`
	Label           string           `json:"label"`
	StartTime       string           `json:"start_time"`
	EndTime         string           `json:"end_time"`
	MaxStudents     int              `json:"max_students"`
	CurrentStudents int              `json:"current_students"`
	AvailableSpots  int              `json:"available_spots"`
	IsAvailable     bool             `json:"is_available"`
	IsBlocked       bool             `json:"is_blocked"`
	BlockedReason   *string          `json:"blocked_reason"`
	Bookings        []models.Booking `json:"bookings"`
}

// DayOverview bundles one date's slots for the week view.
type DayOverview struct {
	Date    string     `json:"date"`
	Weekday string     `json:"weekday"`
	Slots   []SlotInfo `json:"slots"`
}

// SlotsResponse is the payload of GET /slots.
type SlotsResponse struct {
	Date  string     `json:"date"`
	Slots []SlotInfo `json:"slots"`
}

// WeekOverviewResponse is the payload of GET /slots/week.
type WeekOverviewResponse struct {
	StartDate string        `json:"start_date"`
	WeekData  []DayOverview `json:"week_data"`
}
