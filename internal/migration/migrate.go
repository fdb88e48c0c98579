// Package migration moves a user's records out of the legacy per-user
// SQLite store into Postgres, once.
package migration

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"backend-vietrip/internal/catalog"
	"backend-vietrip/internal/custom"
	"backend-vietrip/internal/db"
	"backend-vietrip/internal/itinerary"
	"backend-vietrip/internal/logger"
	"backend-vietrip/internal/metrics"
	"backend-vietrip/internal/trip"

	"github.com/rs/zerolog"
)

type State string

const (
	NotStarted          State = "not_started"
	CheckingLegacyStore State = "checking_legacy_store"
	NoLegacyData        State = "no_legacy_data"
	Migrating           State = "migrating"
	Succeeded           State = "succeeded"
	Failed              State = "failed"
	AlreadyDone         State = "already_done"
)

var (
	ErrInProgress  = errors.New("legacy migration already running for this user")
	ErrInvalidUser = errors.New("invalid user id")
)

// Target receives migrated records. Every import must be a no-op for an id
// that already exists.
type Target interface {
	ImportCity(ctx context.Context, c custom.City) error
	ImportPlace(ctx context.Context, p custom.Place) error
	ImportTrip(ctx context.Context, t trip.Trip) error
	ImportDayPlan(ctx context.Context, dp trip.DayPlan) error
	ImportVisit(ctx context.Context, v itinerary.Visit) error
}

// Services routes imports to the owning services.
type Services struct {
	Custom    *custom.Service
	Trips     *trip.Service
	Itinerary *itinerary.Service
}

func (s Services) ImportCity(ctx context.Context, c custom.City) error  { return s.Custom.ImportCity(ctx, c) }
func (s Services) ImportPlace(ctx context.Context, p custom.Place) error { return s.Custom.ImportPlace(ctx, p) }
func (s Services) ImportTrip(ctx context.Context, t trip.Trip) error     { return s.Trips.ImportTrip(ctx, t) }
func (s Services) ImportDayPlan(ctx context.Context, dp trip.DayPlan) error {
	return s.Trips.ImportDayPlan(ctx, dp)
}
func (s Services) ImportVisit(ctx context.Context, v itinerary.Visit) error {
	return s.Itinerary.ImportVisit(ctx, v)
}

type FlagStore interface {
	Done(ctx context.Context, userID string) (bool, error)
	MarkDone(ctx context.Context, userID string) error
}

type Counts struct {
	Migrated int `json:"migrated"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

type Report struct {
	UserID     string    `json:"user_id"`
	State      State     `json:"state"`
	Cities     Counts    `json:"cities"`
	Places     Counts    `json:"places"`
	Trips      Counts    `json:"trips"`
	DayPlans   Counts    `json:"day_plans"`
	Visits     Counts    `json:"visits"`
	DroppedRef int       `json:"dropped_city_refs"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

type Migrator struct {
	dir    string
	flags  FlagStore
	target Target
	log    zerolog.Logger
	now    func() time.Time

	mu      sync.Mutex
	running map[string]bool
}

func NewMigrator(dir string, flags FlagStore, target Target, log zerolog.Logger) *Migrator {
	return &Migrator{
		dir:     dir,
		flags:   flags,
		target:  target,
		log:     logger.Component(log, "migration"),
		now:     time.Now,
		running: map[string]bool{},
	}
}

// StorePath is where the legacy file of a user lives.
func (m *Migrator) StorePath(userID string) string {
	return filepath.Join(m.dir, userID+".sqlite")
}

// Run performs the pass for one user. The completion flag is written only
// when the pass ends without an unexpected error; a Failed report leaves it
// unset so the next call starts over. Per-record failures are counted in
// the report and do not fail the pass.
func (m *Migrator) Run(ctx context.Context, userID string) (Report, error) {
	if userID == "" || strings.ContainsAny(userID, `/\`) || strings.Contains(userID, "..") {
		return Report{}, ErrInvalidUser
	}
	if !m.acquire(userID) {
		return Report{}, ErrInProgress
	}
	defer m.release(userID)

	r := &Report{UserID: userID, State: NotStarted, StartedAt: m.now()}
	err := m.run(ctx, r)
	r.FinishedAt = m.now()
	if err != nil {
		r.State = Failed
		r.Error = err.Error()
		m.log.Error().Err(err).Str("user_id", userID).Msg("legacy migration failed, will retry next session")
		return *r, err
	}
	m.log.Info().Str("user_id", userID).Str("state", string(r.State)).
		Int("trips", r.Trips.Migrated).Int("visits", r.Visits.Migrated).
		Msg("legacy migration finished")
	return *r, nil
}

func (m *Migrator) run(ctx context.Context, r *Report) error {
	done, err := m.flags.Done(ctx, r.UserID)
	if err != nil {
		return fmt.Errorf("read completion flag: %w", err)
	}
	if done {
		r.State = AlreadyDone
		return nil
	}

	r.State = CheckingLegacyStore
	path := m.StorePath(r.UserID)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		r.State = NoLegacyData
		return m.flags.MarkDone(ctx, r.UserID)
	} else if err != nil {
		return fmt.Errorf("stat legacy store: %w", err)
	}

	conn, err := db.OpenLegacy(path)
	if err != nil {
		return fmt.Errorf("open legacy store: %w", err)
	}
	data, err := readLegacy(ctx, conn)
	_ = conn.Close()
	if err != nil {
		return err
	}

	if data.empty() {
		r.State = NoLegacyData
	} else {
		r.State = Migrating
		if err := m.migrate(ctx, r, data); err != nil {
			return err
		}
		r.State = Succeeded
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove legacy store: %w", err)
	}
	return m.flags.MarkDone(ctx, r.UserID)
}

// migrate writes records in dependency order. A record whose parent did not
// make it is skipped; a record the target rejects is counted as failed.
// Only cancellation aborts the pass.
func (m *Migrator) migrate(ctx context.Context, r *Report, data legacyData) error {
	userID := r.UserID
	tr := newTranslation()
	log := m.log.With().Str("user_id", userID).Logger()

	for _, lc := range data.Cities {
		if err := ctx.Err(); err != nil {
			return err
		}
		city := custom.City{
			ID:          newID(userID, "custom_cities", lc.ID),
			UserID:      userID,
			Name:        lc.Name,
			Region:      lc.Region,
			Description: lc.Description,
			Lat:         lc.Lat,
			Lng:         lc.Lng,
			Thumbnail:   lc.Thumbnail,
		}
		if err := m.target.ImportCity(ctx, city); err != nil {
			m.fail(log, &r.Cities, "custom_city", lc.ID, err)
			continue
		}
		tr.cities[lc.ID] = city.ID
		m.ok(&r.Cities, "custom_city")
	}

	for _, lp := range data.Places {
		if err := ctx.Err(); err != nil {
			return err
		}
		place := custom.Place{
			ID:                newID(userID, "custom_places", lp.ID),
			UserID:            userID,
			CityID:            lp.CityID,
			IsCustomCity:      lp.IsCustomCity,
			Name:              lp.Name,
			Category:          legacyCategory(lp.Category),
			Description:       lp.Description,
			Address:           lp.Address,
			Lat:               lp.Lat,
			Lng:               lp.Lng,
			Thumbnail:         lp.Thumbnail,
			RecommendedDishes: []string(lp.RecommendedDishes),
		}
		if lp.IsCustomCity {
			if lp.CustomCityID == nil {
				m.skip(log, &r.Places, "custom_place", lp.ID, "no custom city")
				continue
			}
			cityID, ok := tr.cities[*lp.CustomCityID]
			if !ok {
				m.skip(log, &r.Places, "custom_place", lp.ID, "custom city not migrated")
				continue
			}
			place.CustomCityID = &cityID
			place.CityID = cityID
		}
		if err := m.target.ImportPlace(ctx, place); err != nil {
			m.fail(log, &r.Places, "custom_place", lp.ID, err)
			continue
		}
		tr.places[lp.ID] = place.ID
		m.ok(&r.Places, "custom_place")
	}

	for _, lt := range data.Trips {
		if err := ctx.Err(); err != nil {
			return err
		}
		start, err1 := trip.ParseDate(legacyDate(lt.StartDate))
		end, err2 := trip.ParseDate(legacyDate(lt.EndDate))
		if err := errors.Join(err1, err2); err != nil {
			m.fail(log, &r.Trips, "trip", lt.ID, err)
			continue
		}
		cityIDs, dropped := tr.cityRefs(lt.CityIDs)
		r.DroppedRef += dropped
		t := trip.Trip{
			ID:        newID(userID, "trips", lt.ID),
			OwnerID:   userID,
			Name:      lt.Name,
			StartDate: start,
			EndDate:   end,
			Notes:     lt.Notes,
			CityIDs:   cityIDs,
		}
		if err := m.target.ImportTrip(ctx, t); err != nil {
			m.fail(log, &r.Trips, "trip", lt.ID, err)
			continue
		}
		tr.trips[lt.ID] = t.ID
		m.ok(&r.Trips, "trip")
	}

	for _, ld := range data.DayPlans {
		if err := ctx.Err(); err != nil {
			return err
		}
		tripID, ok := tr.trips[ld.TripID]
		if !ok {
			m.skip(log, &r.DayPlans, "day_plan", ld.ID, "trip not migrated")
			continue
		}
		date, err := trip.ParseDate(legacyDate(ld.Date))
		if err != nil {
			m.fail(log, &r.DayPlans, "day_plan", ld.ID, err)
			continue
		}
		dp := trip.DayPlan{
			ID:        newID(userID, "day_plans", ld.ID),
			TripID:    tripID,
			DayNumber: ld.DayNumber,
			Date:      date,
			Notes:     ld.Notes,
		}
		if err := m.target.ImportDayPlan(ctx, dp); err != nil {
			m.fail(log, &r.DayPlans, "day_plan", ld.ID, err)
			continue
		}
		tr.dayPlans[ld.ID] = dp.ID
		m.ok(&r.DayPlans, "day_plan")
	}

	return m.migrateVisits(ctx, log, r, tr, data.Visits)
}

// migrateVisits keeps each day's legacy order but renumbers the visits that
// survive so positions stay dense.
func (m *Migrator) migrateVisits(ctx context.Context, log zerolog.Logger, r *Report, tr *translation, visits []legacyVisit) error {
	visits = slices.Clone(visits)
	slices.SortStableFunc(visits, func(a, b legacyVisit) int {
		if a.DayPlanID != b.DayPlanID {
			return cmp.Compare(a.DayPlanID, b.DayPlanID)
		}
		if a.OrderIndex != b.OrderIndex {
			return cmp.Compare(a.OrderIndex, b.OrderIndex)
		}
		return cmp.Compare(a.ID, b.ID)
	})

	next := map[string]int{}
	userID := r.UserID
	for _, lv := range visits {
		if err := ctx.Err(); err != nil {
			return err
		}
		dayPlanID, ok := tr.dayPlans[lv.DayPlanID]
		if !ok {
			m.skip(log, &r.Visits, "place_visit", lv.ID, "day plan not migrated")
			continue
		}
		placeRef, ok := tr.placeRef(lv.PlaceRef)
		if !ok {
			m.skip(log, &r.Visits, "place_visit", lv.ID, "place not migrated")
			continue
		}
		v := itinerary.Visit{
			ID:             newID(userID, "place_visits", lv.ID),
			DayPlanID:      dayPlanID,
			PlaceRef:       placeRef,
			OrderIndex:     next[dayPlanID],
			IsVisited:      lv.IsVisited,
			StartTime:      blankToNil(lv.StartTime),
			EndTime:        blankToNil(lv.EndTime),
			Notes:          lv.Notes,
			SelectedDishes: []string(lv.SelectedDishes),
			AddedBy:        &userID,
		}
		if err := m.target.ImportVisit(ctx, v); err != nil {
			m.fail(log, &r.Visits, "place_visit", lv.ID, err)
			continue
		}
		next[dayPlanID]++
		m.ok(&r.Visits, "place_visit")
	}
	return nil
}

func (m *Migrator) ok(c *Counts, entity string) {
	c.Migrated++
	metrics.LegacyRecord(entity, "migrated")
}

func (m *Migrator) skip(log zerolog.Logger, c *Counts, entity string, old int64, reason string) {
	c.Skipped++
	metrics.LegacyRecord(entity, "skipped")
	log.Warn().Str("entity", entity).Int64("legacy_id", old).Str("reason", reason).Msg("legacy record skipped")
}

func (m *Migrator) fail(log zerolog.Logger, c *Counts, entity string, old int64, err error) {
	c.Failed++
	metrics.LegacyRecord(entity, "failed")
	log.Warn().Err(err).Str("entity", entity).Int64("legacy_id", old).Msg("legacy record not migrated")
}

func (m *Migrator) acquire(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running[userID] {
		return false
	}
	m.running[userID] = true
	return true
}

func (m *Migrator) release(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.running, userID)
}

// legacyCategory maps the old free-form category onto a known one; anything
// unrecognised becomes the default.
func legacyCategory(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	if catalog.IsCategory(c) {
		return c
	}
	return ""
}

// legacyDate accepts both plain dates and full timestamps.
func legacyDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
