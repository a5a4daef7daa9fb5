package entities

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire and form format of every loan date.
const DateLayout = "2006-01-02"

// TruncateToDay drops the time of day, keeping the calendar date in UTC.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a calendar date.
func NewDate(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FormatDate renders a nullable date for forms and listings; nil renders empty.
func FormatDate(d *datatypes.Date) string {
	if d == nil || time.Time(*d).IsZero() {
		return ""
	}
	return time.Time(*d).Format(DateLayout)
}
