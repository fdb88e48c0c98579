package migration

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// The legacy store keeps one SQLite file per user. Ids are small integers
// and list columns hold JSON text.

type legacyCity struct {
	ID          int64    `db:"id"`
	Name        string   `db:"name"`
	Region      string   `db:"region"`
	Description string   `db:"city_description"`
	Lat         *float64 `db:"lat"`
	Lng         *float64 `db:"lng"`
	Thumbnail   string   `db:"thumbnail"`
}

type legacyPlace struct {
	ID                int64    `db:"id"`
	CustomCityID      *int64   `db:"custom_city_id"`
	Name              string   `db:"name"`
	Category          string   `db:"category_raw_value"`
	Description       string   `db:"place_description"`
	Address           string   `db:"address"`
	CityID            string   `db:"city_id"`
	IsCustomCity      bool     `db:"is_custom_city"`
	Lat               *float64 `db:"lat"`
	Lng               *float64 `db:"lng"`
	Thumbnail         string   `db:"thumbnail"`
	RecommendedDishes jsonList `db:"recommended_dishes"`
}

type legacyTrip struct {
	ID        int64    `db:"id"`
	Name      string   `db:"name"`
	StartDate string   `db:"start_date"`
	EndDate   string   `db:"end_date"`
	Notes     string   `db:"notes"`
	CityIDs   jsonList `db:"city_ids"`
}

type legacyDayPlan struct {
	ID        int64  `db:"id"`
	TripID    int64  `db:"trip_id"`
	DayNumber int    `db:"day_number"`
	Date      string `db:"date"`
	Notes     string `db:"notes"`
}

type legacyVisit struct {
	ID             int64    `db:"id"`
	DayPlanID      int64    `db:"day_plan_id"`
	PlaceRef       string   `db:"place_id"`
	Notes          string   `db:"notes"`
	IsVisited      bool     `db:"is_visited"`
	OrderIndex     int      `db:"order_index"`
	StartTime      *string  `db:"start_time"`
	EndTime        *string  `db:"end_time"`
	SelectedDishes jsonList `db:"selected_dishes"`
}

type legacyData struct {
	Cities   []legacyCity
	Places   []legacyPlace
	Trips    []legacyTrip
	DayPlans []legacyDayPlan
	Visits   []legacyVisit
}

func (d legacyData) empty() bool {
	return len(d.Cities)+len(d.Places)+len(d.Trips)+len(d.DayPlans)+len(d.Visits) == 0
}

// jsonList reads a JSON array stored as text. NULL and empty text read as
// an empty list.
type jsonList []string

func (l *jsonList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = jsonList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("json list: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*l = jsonList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("json list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

func (l jsonList) Value() (driver.Value, error) {
	b, err := json.Marshal([]string(l))
	return string(b), err
}

var legacyQueries = map[string]string{
	"custom_cities": `SELECT id, COALESCE(name,'') AS name, COALESCE(region,'') AS region,
		COALESCE(city_description,'') AS city_description, lat, lng, COALESCE(thumbnail,'') AS thumbnail
		FROM custom_cities ORDER BY id`,
	"custom_places": `SELECT id, custom_city_id, COALESCE(name,'') AS name, COALESCE(category_raw_value,'') AS category_raw_value,
		COALESCE(place_description,'') AS place_description, COALESCE(address,'') AS address,
		COALESCE(city_id,'') AS city_id, COALESCE(is_custom_city,0) AS is_custom_city, lat, lng,
		COALESCE(thumbnail,'') AS thumbnail, recommended_dishes
		FROM custom_places ORDER BY id`,
	"trips": `SELECT id, COALESCE(name,'') AS name, COALESCE(start_date,'') AS start_date, COALESCE(end_date,'') AS end_date,
		COALESCE(notes,'') AS notes, city_ids
		FROM trips ORDER BY id`,
	"day_plans": `SELECT id, trip_id, day_number, COALESCE(date,'') AS date, COALESCE(notes,'') AS notes
		FROM day_plans ORDER BY trip_id, day_number`,
	"place_visits": `SELECT id, day_plan_id, COALESCE(place_id,'') AS place_id, COALESCE(notes,'') AS notes,
		COALESCE(is_visited,0) AS is_visited, COALESCE(order_index,0) AS order_index, start_time, end_time, selected_dishes
		FROM place_visits ORDER BY day_plan_id, order_index, id`,
}

// readLegacy loads every record. Tables the file never had read as empty.
func readLegacy(ctx context.Context, conn *sqlx.DB) (legacyData, error) {
	var tables []string
	if err := conn.SelectContext(ctx, &tables, `SELECT name FROM sqlite_master WHERE type='table'`); err != nil {
		return legacyData{}, fmt.Errorf("list legacy tables: %w", err)
	}
	present := map[string]bool{}
	for _, t := range tables {
		present[t] = true
	}

	var data legacyData
	steps := []struct {
		table string
		dest  any
	}{
		{"custom_cities", &data.Cities},
		{"custom_places", &data.Places},
		{"trips", &data.Trips},
		{"day_plans", &data.DayPlans},
		{"place_visits", &data.Visits},
	}
	for _, s := range steps {
		if !present[s.table] {
			continue
		}
		if err := conn.SelectContext(ctx, s.dest, legacyQueries[s.table]); err != nil {
			return legacyData{}, fmt.Errorf("read legacy %s: %w", s.table, err)
		}
	}
	return data, nil
}
