package trip

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// MaxTripDays bounds how many day plans one trip may generate.
const MaxTripDays = 365

// ParseDate reads a calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrValidation, s)
	}
	return d, nil
}

func FormatDate(t time.Time) string { return t.Format(dateLayout) }

// DayCount counts both endpoints: a trip from the 1st to the 3rd has three days.
func DayCount(start, end time.Time) int {
	s := truncateDay(start)
	e := truncateDay(end)
	return int(e.Sub(s)/(24*time.Hour)) + 1
}

// DayDate is the calendar date of day n, counting from 1.
func DayDate(start time.Time, n int) time.Time {
	return truncateDay(start).AddDate(0, 0, n-1)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
