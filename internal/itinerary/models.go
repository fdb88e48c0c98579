package itinerary

import (
	"time"

	"backend-vietrip/internal/resolver"
)

// Visit is one stop in a day plan. OrderIndex values of a day plan are
// always 0..n-1.
type Visit struct {
	ID             string    `json:"id"`
	DayPlanID      string    `json:"day_plan_id"`
	PlaceRef       string    `json:"place_id"`
	OrderIndex     int       `json:"order_index"`
	IsVisited      bool      `json:"is_visited"`
	StartTime      *string   `json:"start_time"`
	EndTime        *string   `json:"end_time"`
	Notes          string    `json:"notes"`
	SelectedDishes []string  `json:"selected_dishes"`
	AddedBy        *string   `json:"added_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// VisitView pairs a visit with its resolved place. Place is nil when the
// reference no longer resolves.
type VisitView struct {
	Visit
	Place *resolver.ResolvedPlace `json:"place"`
}

type AddVisitInput struct {
	PlaceRef       string   `json:"place_id"`
	StartTime      *string  `json:"start_time"`
	EndTime        *string  `json:"end_time"`
	Notes          string   `json:"notes"`
	SelectedDishes []string `json:"selected_dishes"`
}

type VisitPatch struct {
	IsVisited      *bool     `json:"is_visited"`
	StartTime      *string   `json:"start_time"`
	EndTime        *string   `json:"end_time"`
	ClearTimes     bool      `json:"clear_times"`
	Notes          *string   `json:"notes"`
	SelectedDishes *[]string `json:"selected_dishes"`
}

type DaySummary struct {
	DayPlanID    string  `json:"day_plan_id"`
	VisitCount   int     `json:"visit_count"`
	VisitedCount int     `json:"visited_count"`
	MappedCount  int     `json:"mapped_count"`
	DistanceKm   float64 `json:"distance_km"`
}
