package models

// Weekday codes used throughout the booking tables. Only school days
// carry catalog entries.
const (
	WeekdayMon = "Mon"
	WeekdayTue = "Tue"
	WeekdayWed = "Wed"
	WeekdayThu = "Thu"
	WeekdayFri = "Fri"
)

// SchoolWeekdays lists the bookable weekdays in order.
var SchoolWeekdays = []string{WeekdayMon, WeekdayTue, WeekdayWed, WeekdayThu, WeekdayFri}

// IsSchoolWeekday reports whether the code names a bookable weekday.
func IsSchoolWeekday(code string) bool {
	for _, w := range SchoolWeekdays {
		if w == code {
			return true
		}
	}
	return false
}

// TimeSlot is one catalog entry: a fixed weekday period with a label,
// time range and capacity. Admin-managed reference data, unique per
// (weekday, period).
type TimeSlot struct {
	ID          string `db:"id" json:"id"`
	Weekday     string `db:"weekday" json:"weekday"`
	Period      int    `db:"period" json:"period"`
	Label       string `db:"label" json:"label"`
	StartTime   string `db:"start_time" json:"start_time"`
	EndTime     string `db:"end_time" json:"end_time"`
	MaxStudents int    `db:"max_students" json:"max_students"`
}
