package stream

import (
	"errors"
	"fmt"
	"strings"
)

// Tables that emit change events.
const (
	TableTrips        = "trips"
	TableTripMembers  = "trip_members"
	TableDayPlans     = "day_plans"
	TablePlaceVisits  = "place_visits"
	TableCustomCities = "custom_cities"
	TableCustomPlaces = "custom_places"
)

var knownTables = map[string]bool{
	TableTrips:        true,
	TableTripMembers:  true,
	TableDayPlans:     true,
	TablePlaceVisits:  true,
	TableCustomCities: true,
	TableCustomPlaces: true,
}

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Change announces that a row changed. It carries keys only; subscribers
// refetch whatever they display.
type Change struct {
	Table  string            `json:"table"`
	Op     Op                `json:"op"`
	Keys   map[string]string `json:"keys"`
	Origin string            `json:"origin,omitempty"`
}

var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrUnknownTable  = errors.New("unknown table")

	ErrWatchForbidden = errors.New("not allowed to watch this feed")
)

// Filter narrows a subscription to rows whose column equals a value. The
// zero Filter matches every row of the table.
type Filter struct {
	Column string
	Value  string
}

// ParseFilter reads the "column=eq.value" form. An empty string yields the
// match-all filter.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return Filter{}, nil
	}
	col, rest, ok := strings.Cut(s, "=")
	if !ok || col == "" {
		return Filter{}, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
	val, ok := strings.CutPrefix(rest, "eq.")
	if !ok || val == "" {
		return Filter{}, fmt.Errorf("%w: only eq is supported: %q", ErrInvalidFilter, s)
	}
	return Filter{Column: col, Value: val}, nil
}

func (f Filter) String() string {
	if f.Column == "" {
		return ""
	}
	return f.Column + "=eq." + f.Value
}

func (f Filter) Matches(ch Change) bool {
	if f.Column == "" {
		return true
	}
	return ch.Keys[f.Column] == f.Value
}

// EqFilter builds the filter string for column = value.
func EqFilter(column, value string) string {
	return Filter{Column: column, Value: value}.String()
}
