package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend-vietrip/internal/db"
	"backend-vietrip/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound      = errors.New("trip not found")
	ErrValidation    = errors.New("invalid trip")
	ErrForbidden     = errors.New("not allowed on this trip")
	ErrInviteInvalid = errors.New("invite code is invalid or expired")
)

const tripColumns = `t.id, t.owner_id, t.name, t.start_date, t.end_date, t.notes, t.city_ids,
	t.invite_code, t.invite_expires_at, t.created_at`

const dayPlanColumns = `d.id, d.trip_id, d.day_number, d.date, d.notes`

type Service struct {
	db        db.Querier
	events    stream.Publisher
	inviteTTL time.Duration
	now       func() time.Time
}

func NewService(q db.Querier, events stream.Publisher, inviteTTL time.Duration) *Service {
	return &Service{db: q, events: events, inviteTTL: inviteTTL, now: time.Now}
}

// CreateTrip stores the trip, its owner membership and one day plan per
// calendar day in a single transaction.
func (s *Service) CreateTrip(ctx context.Context, ownerID string, in CreateTripInput) (Trip, error) {
	trip, err := newTrip(ownerID, in)
	if err != nil {
		return Trip{}, err
	}
	days := trip.DayCount()

	err = db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO trips (id, owner_id, name, start_date, end_date, notes, city_ids)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING created_at
		`, trip.ID, trip.OwnerID, trip.Name, trip.StartDate, trip.EndDate, trip.Notes, trip.CityIDs)
		if err := row.Scan(&trip.CreatedAt); err != nil {
			return fmt.Errorf("insert trip: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO trip_members (trip_id, user_id, role)
			VALUES ($1,$2,$3)
		`, trip.ID, ownerID, RoleOwner); err != nil {
			return fmt.Errorf("insert owner: %w", err)
		}
		sql, args := dayPlanInsert(trip, days)
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert day plans: %w", err)
		}
		return nil
	})
	if err != nil {
		return Trip{}, err
	}

	s.publish(ctx, stream.TableTrips, stream.OpInsert, map[string]string{"id": trip.ID, "owner_id": ownerID})
	s.publish(ctx, stream.TableTripMembers, stream.OpInsert, map[string]string{"trip_id": trip.ID, "user_id": ownerID})
	s.publish(ctx, stream.TableDayPlans, stream.OpInsert, map[string]string{"trip_id": trip.ID})
	return trip, nil
}

func newTrip(ownerID string, in CreateTripInput) (Trip, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Trip{}, fmt.Errorf("%w: name required", ErrValidation)
	}
	start, err := ParseDate(in.StartDate)
	if err != nil {
		return Trip{}, err
	}
	end, err := ParseDate(in.EndDate)
	if err != nil {
		return Trip{}, err
	}
	if end.Before(start) {
		return Trip{}, fmt.Errorf("%w: end date before start date", ErrValidation)
	}
	if DayCount(start, end) > MaxTripDays {
		return Trip{}, fmt.Errorf("%w: trip longer than %d days", ErrValidation, MaxTripDays)
	}
	cityIDs := in.CityIDs
	if cityIDs == nil {
		cityIDs = []string{}
	}
	return Trip{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Notes:     in.Notes,
		CityIDs:   cityIDs,
	}, nil
}

func dayPlanInsert(trip Trip, days int) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO day_plans (id, trip_id, day_number, date) VALUES ")
	args := make([]any, 0, days*4)
	for n := 1; n <= days; n++ {
		if n > 1 {
			b.WriteString(", ")
		}
		i := len(args)
		fmt.Fprintf(&b, "($%d,$%d,$%d,$%d)", i+1, i+2, i+3, i+4)
		args = append(args, uuid.NewString(), trip.ID, n, DayDate(trip.StartDate, n))
	}
	return b.String(), args
}

func (s *Service) GetTrip(ctx context.Context, id string) (Trip, error) {
	row := s.db.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips t WHERE t.id=$1`, id)
	trip, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Trip{}, ErrNotFound
	}
	return trip, err
}

// ListTrips returns every trip the user owns or joined, newest first.
func (s *Service) ListTrips(ctx context.Context, userID string) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+tripColumns+`
		FROM trips t
		JOIN trip_members m ON m.trip_id = t.id
		WHERE m.user_id=$1
		ORDER BY t.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

func (s *Service) UpdateTrip(ctx context.Context, userID, id string, patch TripPatch) (Trip, error) {
	if _, err := s.Authorize(ctx, id, userID); err != nil {
		return Trip{}, err
	}
	trip, err := s.GetTrip(ctx, id)
	if err != nil {
		return Trip{}, err
	}
	if patch.Name != nil {
		trip.Name = strings.TrimSpace(*patch.Name)
		if trip.Name == "" {
			return Trip{}, fmt.Errorf("%w: name required", ErrValidation)
		}
	}
	if patch.Notes != nil {
		trip.Notes = *patch.Notes
	}
	if patch.CityIDs != nil {
		trip.CityIDs = *patch.CityIDs
		if trip.CityIDs == nil {
			trip.CityIDs = []string{}
		}
	}

	_, err = s.db.Exec(ctx, `
		UPDATE trips
		SET name=$2, notes=$3, city_ids=$4
		WHERE id=$1
	`, trip.ID, trip.Name, trip.Notes, trip.CityIDs)
	if err != nil {
		return Trip{}, err
	}
	s.publish(ctx, stream.TableTrips, stream.OpUpdate, map[string]string{"id": trip.ID, "owner_id": trip.OwnerID})
	return trip, nil
}

// DeleteTrip removes the trip and, through foreign key cascades, its
// members, day plans and visits. Only the owner may delete.
func (s *Service) DeleteTrip(ctx context.Context, userID, id string) error {
	var dayPlanIDs []string
	err := db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		var ownerID string
		err := tx.QueryRow(ctx, `SELECT owner_id FROM trips WHERE id=$1 FOR UPDATE`, id).Scan(&ownerID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if ownerID != userID {
			return ErrForbidden
		}

		rows, err := tx.Query(ctx, `SELECT id FROM day_plans WHERE trip_id=$1`, id)
		if err != nil {
			return err
		}
		for rows.Next() {
			var dp string
			if err := rows.Scan(&dp); err != nil {
				rows.Close()
				return err
			}
			dayPlanIDs = append(dayPlanIDs, dp)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM trips WHERE id=$1`, id)
		return err
	})
	if err != nil {
		return err
	}

	s.publish(ctx, stream.TableTrips, stream.OpDelete, map[string]string{"id": id, "owner_id": userID})
	s.publish(ctx, stream.TableTripMembers, stream.OpDelete, map[string]string{"trip_id": id})
	s.publish(ctx, stream.TableDayPlans, stream.OpDelete, map[string]string{"trip_id": id})
	for _, dp := range dayPlanIDs {
		s.publish(ctx, stream.TablePlaceVisits, stream.OpDelete, map[string]string{"day_plan_id": dp})
	}
	return nil
}

// Authorize returns the user's role on the trip. ErrNotFound means there is
// no such trip, ErrForbidden that the user is not a member.
func (s *Service) Authorize(ctx context.Context, tripID, userID string) (string, error) {
	var role *string
	err := s.db.QueryRow(ctx, `
		SELECT m.role
		FROM trips t
		LEFT JOIN trip_members m ON m.trip_id = t.id AND m.user_id = $2
		WHERE t.id=$1
	`, tripID, userID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if role == nil {
		return "", ErrForbidden
	}
	return *role, nil
}

// AuthorizeDayPlan loads a day plan the user can see through trip
// membership.
func (s *Service) AuthorizeDayPlan(ctx context.Context, dayPlanID, userID string) (DayPlan, error) {
	var (
		dp   DayPlan
		role *string
	)
	err := s.db.QueryRow(ctx, `
		SELECT `+dayPlanColumns+`, m.role
		FROM day_plans d
		LEFT JOIN trip_members m ON m.trip_id = d.trip_id AND m.user_id = $2
		WHERE d.id=$1
	`, dayPlanID, userID).Scan(&dp.ID, &dp.TripID, &dp.DayNumber, &dp.Date, &dp.Notes, &role)
	if errors.Is(err, pgx.ErrNoRows) {
		return DayPlan{}, ErrNotFound
	}
	if err != nil {
		return DayPlan{}, err
	}
	if role == nil {
		return DayPlan{}, ErrForbidden
	}
	return dp, nil
}

func (s *Service) IsMember(ctx context.Context, tripID, userID string) (bool, error) {
	_, err := s.Authorize(ctx, tripID, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *Service) DayPlans(ctx context.Context, tripID string) ([]DayPlan, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+dayPlanColumns+`
		FROM day_plans d WHERE d.trip_id=$1
		ORDER BY d.day_number
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []DayPlan{}
	for rows.Next() {
		var dp DayPlan
		if err := rows.Scan(&dp.ID, &dp.TripID, &dp.DayNumber, &dp.Date, &dp.Notes); err != nil {
			return nil, err
		}
		plans = append(plans, dp)
	}
	return plans, rows.Err()
}

func (s *Service) DayPlan(ctx context.Context, tripID string, dayNumber int) (DayPlan, error) {
	var dp DayPlan
	err := s.db.QueryRow(ctx, `
		SELECT `+dayPlanColumns+`
		FROM day_plans d WHERE d.trip_id=$1 AND d.day_number=$2
	`, tripID, dayNumber).Scan(&dp.ID, &dp.TripID, &dp.DayNumber, &dp.Date, &dp.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return DayPlan{}, ErrNotFound
	}
	return dp, err
}

func (s *Service) UpdateDayPlanNotes(ctx context.Context, userID, tripID string, dayNumber int, notes string) (DayPlan, error) {
	if _, err := s.Authorize(ctx, tripID, userID); err != nil {
		return DayPlan{}, err
	}
	dp, err := s.DayPlan(ctx, tripID, dayNumber)
	if err != nil {
		return DayPlan{}, err
	}
	if _, err := s.db.Exec(ctx, `UPDATE day_plans SET notes=$2 WHERE id=$1`, dp.ID, notes); err != nil {
		return DayPlan{}, err
	}
	dp.Notes = notes
	s.publish(ctx, stream.TableDayPlans, stream.OpUpdate, map[string]string{"id": dp.ID, "trip_id": dp.TripID})
	return dp, nil
}

func (s *Service) Members(ctx context.Context, tripID string) ([]Member, error) {
	rows, err := s.db.Query(ctx, `
		SELECT m.trip_id, m.user_id, m.role, m.joined_at, p.username, p.display_name
		FROM trip_members m
		JOIN profiles p ON p.id = m.user_id
		WHERE m.trip_id=$1
		ORDER BY m.joined_at
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.TripID, &m.UserID, &m.Role, &m.JoinedAt, &m.Username, &m.DisplayName); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ImportTrip stores a trip under a caller-chosen id together with its owner
// membership. Day plans are imported separately. Repeating an import is a
// no-op.
func (s *Service) ImportTrip(ctx context.Context, trip Trip) error {
	if strings.TrimSpace(trip.Name) == "" || trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: trip %s", ErrValidation, trip.ID)
	}
	if trip.CityIDs == nil {
		trip.CityIDs = []string{}
	}
	var inserted bool
	err := db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO trips (id, owner_id, name, start_date, end_date, notes, city_ids)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (id) DO NOTHING
		`, trip.ID, trip.OwnerID, trip.Name, trip.StartDate, trip.EndDate, trip.Notes, trip.CityIDs)
		if err != nil {
			return err
		}
		inserted = tag.RowsAffected() > 0
		_, err = tx.Exec(ctx, `
			INSERT INTO trip_members (trip_id, user_id, role)
			VALUES ($1,$2,$3)
			ON CONFLICT (trip_id, user_id) DO NOTHING
		`, trip.ID, trip.OwnerID, RoleOwner)
		return err
	})
	if err != nil {
		return err
	}
	if inserted {
		s.publish(ctx, stream.TableTrips, stream.OpInsert, map[string]string{"id": trip.ID, "owner_id": trip.OwnerID})
	}
	return nil
}

func (s *Service) ImportDayPlan(ctx context.Context, dp DayPlan) error {
	if dp.DayNumber < 1 {
		return fmt.Errorf("%w: day number %d", ErrValidation, dp.DayNumber)
	}
	tag, err := s.db.Exec(ctx, `
		INSERT INTO day_plans (id, trip_id, day_number, date, notes)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT DO NOTHING
	`, dp.ID, dp.TripID, dp.DayNumber, dp.Date, dp.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		s.publish(ctx, stream.TableDayPlans, stream.OpInsert, map[string]string{"id": dp.ID, "trip_id": dp.TripID})
	}
	return nil
}

func (s *Service) publish(ctx context.Context, table string, op stream.Op, keys map[string]string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, stream.Change{Table: table, Op: op, Keys: keys})
}

func scanTrip(row pgx.Row) (Trip, error) {
	var t Trip
	err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &t.StartDate, &t.EndDate, &t.Notes, &t.CityIDs,
		&t.InviteCode, &t.InviteExpiresAt, &t.CreatedAt)
	return t, err
}
