package itinerary

import (
	"context"
	"math"

	"backend-vietrip/internal/shared/geo"
)

// Summary counts a day's visits and measures the straight-line route
// through the ones that have coordinates, in visiting order.
func (s *Service) Summary(ctx context.Context, viewerID, dayPlanID string) (DaySummary, error) {
	views, err := s.VisitViews(ctx, viewerID, dayPlanID)
	if err != nil {
		return DaySummary{}, err
	}
	sum := DaySummary{DayPlanID: dayPlanID, VisitCount: len(views)}
	var points []geo.Point
	for _, v := range views {
		if v.IsVisited {
			sum.VisitedCount++
		}
		if v.Place != nil && v.Place.HasCoordinates() {
			points = append(points, geo.Point{Lat: *v.Place.Lat, Lng: *v.Place.Lng})
		}
	}
	sum.MappedCount = len(points)
	sum.DistanceKm = math.Round(geo.PathKm(points)*10) / 10
	return sum, nil
}
