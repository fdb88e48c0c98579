package trip

import (
	"context"
	"errors"
	"fmt"

	"backend-vietrip/internal/stream"
)

// AuthorizeWatch decides which change feeds userID may follow. Custom
// content is visible to its owner only; trip tables need a filter that pins
// the feed to a trip or day the user belongs to.
func (s *Service) AuthorizeWatch(ctx context.Context, userID, table string, f stream.Filter) error {
	switch table {
	case stream.TableCustomCities, stream.TableCustomPlaces:
		if f.Column == "user_id" && f.Value == userID {
			return nil
		}
	case stream.TableTrips:
		if f.Column == "owner_id" && f.Value == userID {
			return nil
		}
		if f.Column == "id" {
			return s.watchTrip(ctx, f.Value, userID)
		}
	case stream.TableTripMembers:
		if f.Column == "user_id" && f.Value == userID {
			return nil
		}
		if f.Column == "trip_id" {
			return s.watchTrip(ctx, f.Value, userID)
		}
	case stream.TableDayPlans:
		if f.Column == "trip_id" {
			return s.watchTrip(ctx, f.Value, userID)
		}
	case stream.TablePlaceVisits:
		if f.Column == "day_plan_id" {
			_, err := s.AuthorizeDayPlan(ctx, f.Value, userID)
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
				return fmt.Errorf("%w: day %s", stream.ErrWatchForbidden, f.Value)
			}
			return err
		}
	}
	return fmt.Errorf("%w: %s filtered by %q", stream.ErrWatchForbidden, table, f.String())
}

func (s *Service) watchTrip(ctx context.Context, tripID, userID string) error {
	ok, err := s.IsMember(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: trip %s", stream.ErrWatchForbidden, tripID)
	}
	return nil
}
