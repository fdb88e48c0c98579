package stream

import (
	"errors"
	"testing"
)

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("trip_id=eq.abc")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Column != "trip_id" || f.Value != "abc" {
		t.Fatalf("unexpected filter %+v", f)
	}
	if f.String() != "trip_id=eq.abc" {
		t.Fatalf("unexpected string %q", f.String())
	}

	f, err = ParseFilter("")
	if err != nil || f.Column != "" || f.String() != "" {
		t.Fatalf("expected match-all filter")
	}

	for _, bad := range []string{"trip_id", "=eq.x", "trip_id=gt.5", "trip_id=eq."} {
		if _, err := ParseFilter(bad); !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("%q: expected invalid filter, got %v", bad, err)
		}
	}
}

func TestFilterMatches(t *testing.T) {
	ch := Change{Table: TablePlaceVisits, Keys: map[string]string{"id": "v1", "day_plan_id": "d1"}}
	if !(Filter{}).Matches(ch) {
		t.Fatalf("zero filter should match")
	}
	if !(Filter{Column: "day_plan_id", Value: "d1"}).Matches(ch) {
		t.Fatalf("expected match")
	}
	if (Filter{Column: "day_plan_id", Value: "d2"}).Matches(ch) {
		t.Fatalf("unexpected match")
	}
	if (Filter{Column: "trip_id", Value: "d1"}).Matches(ch) {
		t.Fatalf("missing key should not match")
	}
	if EqFilter("trip_id", "t1") != "trip_id=eq.t1" {
		t.Fatalf("unexpected eq filter")
	}
}
