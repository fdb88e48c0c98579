package trip

import (
	"errors"
	"testing"
	"time"
)

func TestDayCountInclusive(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"same day", start, start, 1},
		{"three days", start, start.AddDate(0, 0, 2), 3},
		{"month boundary", time.Date(2025, 2, 26, 0, 0, 0, 0, time.UTC), start.AddDate(0, 0, 1), 5},
		{"time of day ignored", start.Add(23 * time.Hour), start.Add(25 * time.Hour), 2},
	}
	for _, tc := range cases {
		if got := DayCount(tc.start, tc.end); got != tc.want {
			t.Fatalf("%s: expected %d days, got %d", tc.name, tc.want, got)
		}
	}
}

func TestDayDate(t *testing.T) {
	start := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(DayDate(start, 1)); got != "2024-12-30" {
		t.Fatalf("day 1: got %s", got)
	}
	if got := FormatDate(DayDate(start, 4)); got != "2025-01-02" {
		t.Fatalf("day 4: got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-04-30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Location() != time.UTC || FormatDate(d) != "2025-04-30" {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("30/04/2025"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
