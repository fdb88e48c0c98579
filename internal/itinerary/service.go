package itinerary

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"backend-vietrip/internal/catalog"
	"backend-vietrip/internal/db"
	"backend-vietrip/internal/metrics"
	"backend-vietrip/internal/resolver"
	"backend-vietrip/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound   = errors.New("visit not found")
	ErrValidation = errors.New("invalid visit")
)

const visitColumns = `id, day_plan_id, place_id, order_index, is_visited, start_time, end_time,
	notes, selected_dishes, added_by, created_at`

// PlaceResolver resolves the place a visit points at.
type PlaceResolver interface {
	ResolvePlaceRef(ctx context.Context, viewerID, ref string) (resolver.ResolvedPlace, bool)
}

type Service struct {
	db     db.Querier
	places PlaceResolver
	events stream.Publisher
}

func NewService(q db.Querier, places PlaceResolver, events stream.Publisher) *Service {
	return &Service{db: q, places: places, events: events}
}

// AddVisit appends a visit to the end of the day.
func (s *Service) AddVisit(ctx context.Context, userID, dayPlanID string, in AddVisitInput) (Visit, error) {
	place, ok := s.places.ResolvePlaceRef(ctx, userID, in.PlaceRef)
	if !ok {
		return Visit{}, fmt.Errorf("%w: unknown place %q", ErrValidation, in.PlaceRef)
	}
	dishes := in.SelectedDishes
	if dishes == nil {
		dishes = []string{}
	}
	if err := checkDishes(place, dishes); err != nil {
		return Visit{}, err
	}
	if err := checkTimes(in.StartTime, in.EndTime); err != nil {
		return Visit{}, err
	}

	v := Visit{
		ID:             uuid.NewString(),
		DayPlanID:      dayPlanID,
		PlaceRef:       in.PlaceRef,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Notes:          in.Notes,
		SelectedDishes: dishes,
	}
	if userID != "" {
		v.AddedBy = &userID
	}

	err := db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := lockDay(ctx, tx, dayPlanID); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM place_visits WHERE day_plan_id=$1`, dayPlanID).Scan(&v.OrderIndex); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `
			INSERT INTO place_visits (id, day_plan_id, place_id, order_index, start_time, end_time, notes, selected_dishes, added_by)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING created_at
		`, v.ID, v.DayPlanID, v.PlaceRef, v.OrderIndex, v.StartTime, v.EndTime, v.Notes, v.SelectedDishes, v.AddedBy).Scan(&v.CreatedAt)
	})
	if err != nil {
		return Visit{}, err
	}
	s.publish(ctx, stream.OpInsert, v.ID, v.DayPlanID)
	return v, nil
}

func (s *Service) GetVisit(ctx context.Context, id string) (Visit, error) {
	row := s.db.QueryRow(ctx, `SELECT `+visitColumns+` FROM place_visits WHERE id=$1`, id)
	v, err := scanVisit(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Visit{}, ErrNotFound
	}
	return v, err
}

// Visits lists a day's visits by position.
func (s *Service) Visits(ctx context.Context, dayPlanID string) ([]Visit, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+visitColumns+`
		FROM place_visits WHERE day_plan_id=$1
		ORDER BY order_index
	`, dayPlanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := []Visit{}
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// VisitViews lists a day's visits with their places resolved as viewerID
// sees them.
func (s *Service) VisitViews(ctx context.Context, viewerID, dayPlanID string) ([]VisitView, error) {
	visits, err := s.Visits(ctx, dayPlanID)
	if err != nil {
		return nil, err
	}
	views := make([]VisitView, len(visits))
	for i, v := range visits {
		views[i].Visit = v
		if place, ok := s.places.ResolvePlaceRef(ctx, viewerID, v.PlaceRef); ok {
			views[i].Place = &place
		}
	}
	return views, nil
}

func (s *Service) UpdateVisit(ctx context.Context, userID, id string, patch VisitPatch) (Visit, error) {
	v, err := s.GetVisit(ctx, id)
	if err != nil {
		return Visit{}, err
	}
	if patch.IsVisited != nil {
		v.IsVisited = *patch.IsVisited
	}
	if patch.ClearTimes {
		v.StartTime, v.EndTime = nil, nil
	}
	if patch.StartTime != nil {
		v.StartTime = patch.StartTime
	}
	if patch.EndTime != nil {
		v.EndTime = patch.EndTime
	}
	if patch.Notes != nil {
		v.Notes = *patch.Notes
	}
	if patch.SelectedDishes != nil {
		v.SelectedDishes = *patch.SelectedDishes
		if v.SelectedDishes == nil {
			v.SelectedDishes = []string{}
		}
		if len(v.SelectedDishes) > 0 {
			place, ok := s.places.ResolvePlaceRef(ctx, userID, v.PlaceRef)
			if !ok {
				return Visit{}, fmt.Errorf("%w: place %q no longer exists", ErrValidation, v.PlaceRef)
			}
			if err := checkDishes(place, v.SelectedDishes); err != nil {
				return Visit{}, err
			}
		}
	}
	if err := checkTimes(v.StartTime, v.EndTime); err != nil {
		return Visit{}, err
	}

	_, err = s.db.Exec(ctx, `
		UPDATE place_visits
		SET is_visited=$2, start_time=$3, end_time=$4, notes=$5, selected_dishes=$6
		WHERE id=$1
	`, v.ID, v.IsVisited, v.StartTime, v.EndTime, v.Notes, v.SelectedDishes)
	if err != nil {
		return Visit{}, err
	}
	s.publish(ctx, stream.OpUpdate, v.ID, v.DayPlanID)
	return v, nil
}

// DeleteVisit removes a visit and closes the gap it leaves.
func (s *Service) DeleteVisit(ctx context.Context, id string) error {
	var dayPlanID string
	err := s.db.QueryRow(ctx, `SELECT day_plan_id FROM place_visits WHERE id=$1`, id).Scan(&dayPlanID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	err = db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := lockDay(ctx, tx, dayPlanID); err != nil {
			return err
		}
		var index int
		err := tx.QueryRow(ctx, `DELETE FROM place_visits WHERE id=$1 RETURNING order_index`, id).Scan(&index)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE place_visits SET order_index = order_index - 1
			WHERE day_plan_id=$1 AND order_index > $2
		`, dayPlanID, index)
		return err
	})
	if err != nil {
		return err
	}
	s.publish(ctx, stream.OpDelete, id, dayPlanID)
	return nil
}

// Reorder applies a full ordering in one transaction and returns what was
// written. Unknown ids are ignored and visits the moves leave out keep
// their relative order after the named ones.
func (s *Service) Reorder(ctx context.Context, dayPlanID string, moves []Move) ([]Move, error) {
	var result []Move
	_, err := s.rewrite(ctx, dayPlanID, func(current []string) ([]string, bool) {
		next := Normalize(current, moves)
		result = Assign(next)
		return next, true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MoveUp swaps a visit with the one before it. The first visit stays put
// and nothing is written.
func (s *Service) MoveUp(ctx context.Context, dayPlanID, visitID string) (bool, error) {
	return s.moveNeighbor(ctx, dayPlanID, visitID, Up)
}

// MoveDown swaps a visit with the one after it. The last visit stays put.
func (s *Service) MoveDown(ctx context.Context, dayPlanID, visitID string) (bool, error) {
	return s.moveNeighbor(ctx, dayPlanID, visitID, Down)
}

func (s *Service) moveNeighbor(ctx context.Context, dayPlanID, visitID string, dir Direction) (bool, error) {
	var missing bool
	moved, err := s.rewrite(ctx, dayPlanID, func(current []string) ([]string, bool) {
		i := slices.Index(current, visitID)
		if i < 0 {
			missing = true
			return nil, false
		}
		return SwapNeighbor(current, i, dir)
	})
	if err == nil && missing {
		return false, ErrNotFound
	}
	return moved, err
}

// MoveTo drags a visit to a new position.
func (s *Service) MoveTo(ctx context.Context, dayPlanID, visitID string, index int) (bool, error) {
	var missing bool
	moved, err := s.rewrite(ctx, dayPlanID, func(current []string) ([]string, bool) {
		i := slices.Index(current, visitID)
		if i < 0 {
			missing = true
			return nil, false
		}
		return MoveItem(current, i, index)
	})
	if err == nil && missing {
		return false, ErrNotFound
	}
	return moved, err
}

// rewrite locks the day, hands the current order to plan and writes the
// planned order back. When plan reports false nothing is written.
func (s *Service) rewrite(ctx context.Context, dayPlanID string, plan func(current []string) ([]string, bool)) (bool, error) {
	var written bool
	err := db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := lockDay(ctx, tx, dayPlanID); err != nil {
			return err
		}
		current, err := orderedIDs(ctx, tx, dayPlanID)
		if err != nil {
			return err
		}
		next, ok := plan(current)
		if !ok || len(next) == 0 {
			return nil
		}
		indexes := make([]int, len(next))
		for i := range next {
			indexes[i] = i
		}
		_, err = tx.Exec(ctx, `
			UPDATE place_visits AS v SET order_index = u.idx
			FROM unnest($1::text[], $2::int[]) AS u(id, idx)
			WHERE v.id = u.id AND v.day_plan_id = $3
		`, next, indexes, dayPlanID)
		if err != nil {
			return err
		}
		written = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if written {
		metrics.VisitReordered()
		s.publish(ctx, stream.OpUpdate, "", dayPlanID)
	}
	return written, nil
}

// ImportVisit stores a visit under a caller-chosen id and position.
// Re-importing the same id is a no-op.
func (s *Service) ImportVisit(ctx context.Context, v Visit) error {
	if v.OrderIndex < 0 {
		return fmt.Errorf("%w: negative order index", ErrValidation)
	}
	if v.SelectedDishes == nil {
		v.SelectedDishes = []string{}
	}
	tag, err := s.db.Exec(ctx, `
		INSERT INTO place_visits (id, day_plan_id, place_id, order_index, is_visited, start_time, end_time, notes, selected_dishes, added_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO NOTHING
	`, v.ID, v.DayPlanID, v.PlaceRef, v.OrderIndex, v.IsVisited, v.StartTime, v.EndTime, v.Notes, v.SelectedDishes, v.AddedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		s.publish(ctx, stream.OpInsert, v.ID, v.DayPlanID)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, op stream.Op, id, dayPlanID string) {
	if s.events == nil {
		return
	}
	keys := map[string]string{"day_plan_id": dayPlanID}
	if id != "" {
		keys["id"] = id
	}
	s.events.Publish(ctx, stream.Change{Table: stream.TablePlaceVisits, Op: op, Keys: keys})
}

// lockDay serialises every change to one day's ordering.
func lockDay(ctx context.Context, tx pgx.Tx, dayPlanID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT id FROM day_plans WHERE id=$1 FOR UPDATE`, dayPlanID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func orderedIDs(ctx context.Context, tx pgx.Tx, dayPlanID string) ([]string, error) {
	rows, err := tx.Query(ctx, `SELECT id FROM place_visits WHERE day_plan_id=$1 ORDER BY order_index`, dayPlanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func checkDishes(place resolver.ResolvedPlace, dishes []string) error {
	if len(dishes) > 0 && !catalog.CategoryFor(place.Category).HasDishes {
		return fmt.Errorf("%w: %s does not serve food", ErrValidation, place.Name)
	}
	for _, d := range dishes {
		if !slices.Contains(place.RecommendedDishes, d) {
			return fmt.Errorf("%w: %q is not served at %s", ErrValidation, d, place.Name)
		}
	}
	return nil
}

const clockLayout = "15:04"

func checkTimes(start, end *string) error {
	var s, e time.Time
	var err error
	if start != nil {
		if s, err = time.Parse(clockLayout, *start); err != nil {
			return fmt.Errorf("%w: start time %q is not HH:MM", ErrValidation, *start)
		}
	}
	if end != nil {
		if e, err = time.Parse(clockLayout, *end); err != nil {
			return fmt.Errorf("%w: end time %q is not HH:MM", ErrValidation, *end)
		}
	}
	if start != nil && end != nil && e.Before(s) {
		return fmt.Errorf("%w: end time before start time", ErrValidation)
	}
	return nil
}

func scanVisit(row pgx.Row) (Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.DayPlanID, &v.PlaceRef, &v.OrderIndex, &v.IsVisited, &v.StartTime, &v.EndTime,
		&v.Notes, &v.SelectedDishes, &v.AddedBy, &v.CreatedAt)
	return v, err
}
