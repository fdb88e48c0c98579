package db

import (
	"context"
	"fmt"
)

// CreateSchema creates every table the service needs.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS refresh_tokens (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    token TEXT NOT NULL UNIQUE,
    expires_at TIMESTAMPTZ NOT NULL,
    revoked_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS trips (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    city_ids TEXT[] NOT NULL DEFAULT '{}',
    invite_code TEXT UNIQUE,
    invite_expires_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (start_date <= end_date)
);

CREATE INDEX IF NOT EXISTS idx_trips_owner ON trips(owner_id);

CREATE TABLE IF NOT EXISTS trip_members (
    trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    role TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('owner', 'member')),
    joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (trip_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_trip_members_user ON trip_members(user_id);

CREATE TABLE IF NOT EXISTS day_plans (
    id TEXT PRIMARY KEY,
    trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
    day_number INT NOT NULL CHECK (day_number >= 1),
    date DATE NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    UNIQUE (trip_id, day_number)
);

CREATE TABLE IF NOT EXISTS place_visits (
    id TEXT PRIMARY KEY,
    day_plan_id TEXT NOT NULL REFERENCES day_plans(id) ON DELETE CASCADE,
    place_id TEXT NOT NULL,
    order_index INT NOT NULL CHECK (order_index >= 0),
    is_visited BOOLEAN NOT NULL DEFAULT FALSE,
    start_time TEXT,
    end_time TEXT,
    notes TEXT NOT NULL DEFAULT '',
    selected_dishes TEXT[] NOT NULL DEFAULT '{}',
    added_by TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT place_visits_order_unique UNIQUE (day_plan_id, order_index) DEFERRABLE INITIALLY DEFERRED
);

CREATE TABLE IF NOT EXISTS custom_cities (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    region TEXT NOT NULL DEFAULT '',
    city_description TEXT NOT NULL DEFAULT '',
    lat DOUBLE PRECISION,
    lng DOUBLE PRECISION,
    thumbnail TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_custom_cities_user ON custom_cities(user_id);

CREATE TABLE IF NOT EXISTS custom_places (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    custom_city_id TEXT REFERENCES custom_cities(id) ON DELETE CASCADE,
    city_id TEXT NOT NULL DEFAULT '',
    is_custom_city BOOLEAN NOT NULL DEFAULT FALSE,
    name TEXT NOT NULL,
    category_raw_value TEXT NOT NULL DEFAULT 'landmark',
    place_description TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    lat DOUBLE PRECISION,
    lng DOUBLE PRECISION,
    thumbnail TEXT NOT NULL DEFAULT '',
    recommended_dishes TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK ((is_custom_city AND custom_city_id IS NOT NULL) OR (NOT is_custom_city AND city_id <> ''))
);

CREATE INDEX IF NOT EXISTS idx_custom_places_city ON custom_places(user_id, city_id);
CREATE INDEX IF NOT EXISTS idx_custom_places_custom_city ON custom_places(custom_city_id);

CREATE TABLE IF NOT EXISTS legacy_migrations (
    user_id TEXT PRIMARY KEY REFERENCES profiles(id) ON DELETE CASCADE,
    completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
