package custom

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backend-vietrip/internal/catalog"
	"backend-vietrip/internal/db"
	"backend-vietrip/internal/refs"
	"backend-vietrip/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound   = errors.New("custom content not found")
	ErrValidation = errors.New("invalid custom content")
	ErrForbidden  = errors.New("custom content belongs to another user")
)

const cityColumns = `id, user_id, name, region, city_description, lat, lng, thumbnail, created_at`

const placeColumns = `id, user_id, custom_city_id, city_id, is_custom_city, name, category_raw_value,
	place_description, address, lat, lng, thumbnail, recommended_dishes, created_at`

// Visibility clauses for custom rows seen by someone other than the owner.
// $2 is the viewer. $3 is the row's own reference where the clause needs it.
const (
	sharedCity = `EXISTS (
		SELECT 1 FROM trips t JOIN trip_members m ON m.trip_id=t.id
		WHERE m.user_id=$2 AND $3 = ANY(t.city_ids))`
	sharedPlace = `EXISTS (
		SELECT 1 FROM place_visits v
		JOIN day_plans d ON d.id=v.day_plan_id
		JOIN trip_members m ON m.trip_id=d.trip_id
		WHERE m.user_id=$2 AND v.place_id=$3)`
	sharedPlaceCity = `(p.is_custom_city AND EXISTS (
		SELECT 1 FROM trips t JOIN trip_members m ON m.trip_id=t.id
		WHERE m.user_id=$2 AND ('cc:' || p.custom_city_id) = ANY(t.city_ids)))`
)

type Service struct {
	db     db.Querier
	events stream.Publisher
}

func NewService(q db.Querier, events stream.Publisher) *Service {
	return &Service{db: q, events: events}
}

func (s *Service) CreateCity(ctx context.Context, userID string, in CityInput) (City, error) {
	city := City{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Region:      in.Region,
		Description: in.Description,
		Lat:         in.Lat,
		Lng:         in.Lng,
		Thumbnail:   in.Thumbnail,
	}
	if err := validateCity(city); err != nil {
		return City{}, err
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO custom_cities (id, user_id, name, region, city_description, lat, lng, thumbnail)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`, city.ID, city.UserID, city.Name, city.Region, city.Description, city.Lat, city.Lng, city.Thumbnail)
	if err := row.Scan(&city.CreatedAt); err != nil {
		return City{}, err
	}
	s.publish(ctx, stream.TableCustomCities, stream.OpInsert, cityKeys(city))
	return city, nil
}

// ImportCity inserts a city under a caller-chosen id. Re-importing the same
// id is a no-op.
func (s *Service) ImportCity(ctx context.Context, city City) error {
	if err := validateCity(city); err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, `
		INSERT INTO custom_cities (id, user_id, name, region, city_description, lat, lng, thumbnail)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO NOTHING
	`, city.ID, city.UserID, city.Name, city.Region, city.Description, city.Lat, city.Lng, city.Thumbnail)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		s.publish(ctx, stream.TableCustomCities, stream.OpInsert, cityKeys(city))
	}
	return nil
}

// GetCity returns a city viewerID may see: their own, or one named in the
// city list of a trip they belong to. Anything else is ErrNotFound.
func (s *Service) GetCity(ctx context.Context, viewerID, id string) (City, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+cityColumns+`
		FROM custom_cities c
		WHERE c.id=$1 AND (c.user_id=$2 OR `+sharedCity+`)
	`, id, viewerID, refs.ToCustomCityRef(id))
	city, err := scanCity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return City{}, ErrNotFound
	}
	return city, err
}

func (s *Service) cityByID(ctx context.Context, id string) (City, error) {
	row := s.db.QueryRow(ctx, `SELECT `+cityColumns+` FROM custom_cities WHERE id=$1`, id)
	city, err := scanCity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return City{}, ErrNotFound
	}
	return city, err
}

func (s *Service) ListCities(ctx context.Context, userID string) ([]City, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+cityColumns+`
		FROM custom_cities WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := []City{}
	for rows.Next() {
		city, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

func (s *Service) UpdateCity(ctx context.Context, userID, id string, patch CityPatch) (City, error) {
	city, err := s.ownedCity(ctx, userID, id)
	if err != nil {
		return City{}, err
	}
	if patch.Name != nil {
		city.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Region != nil {
		city.Region = *patch.Region
	}
	if patch.Description != nil {
		city.Description = *patch.Description
	}
	if patch.Thumbnail != nil {
		city.Thumbnail = *patch.Thumbnail
	}
	city.Lat, city.Lng = patchCoordinates(city.Lat, city.Lng, patch.Lat, patch.Lng, patch.ClearCoordinates)
	if err := validateCity(city); err != nil {
		return City{}, err
	}

	_, err = s.db.Exec(ctx, `
		UPDATE custom_cities
		SET name=$2, region=$3, city_description=$4, lat=$5, lng=$6, thumbnail=$7
		WHERE id=$1
	`, city.ID, city.Name, city.Region, city.Description, city.Lat, city.Lng, city.Thumbnail)
	if err != nil {
		return City{}, err
	}
	s.publish(ctx, stream.TableCustomCities, stream.OpUpdate, cityKeys(city))
	return city, nil
}

// DeleteCity removes the city; the database cascades to its places.
func (s *Service) DeleteCity(ctx context.Context, userID, id string) error {
	if _, err := s.ownedCity(ctx, userID, id); err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM custom_cities WHERE id=$1`, id); err != nil {
		return err
	}
	s.publish(ctx, stream.TableCustomCities, stream.OpDelete, map[string]string{"id": id, "user_id": userID})
	s.publish(ctx, stream.TableCustomPlaces, stream.OpDelete, map[string]string{"custom_city_id": id, "user_id": userID})
	return nil
}

func (s *Service) CreatePlace(ctx context.Context, userID string, in PlaceInput) (Place, error) {
	place := Place{
		ID:                uuid.NewString(),
		UserID:            userID,
		Name:              strings.TrimSpace(in.Name),
		Category:          in.Category,
		Description:       in.Description,
		Address:           in.Address,
		Lat:               in.Lat,
		Lng:               in.Lng,
		Thumbnail:         in.Thumbnail,
		RecommendedDishes: in.RecommendedDishes,
	}
	if err := s.attachCity(ctx, userID, &place, in.CityRef); err != nil {
		return Place{}, err
	}
	normalizePlace(&place)
	if err := validatePlace(place); err != nil {
		return Place{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO custom_places (id, user_id, custom_city_id, city_id, is_custom_city, name, category_raw_value,
			place_description, address, lat, lng, thumbnail, recommended_dishes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at
	`, placeArgs(place)...)
	if err := row.Scan(&place.CreatedAt); err != nil {
		return Place{}, err
	}
	s.publish(ctx, stream.TableCustomPlaces, stream.OpInsert, placeKeys(place))
	return place, nil
}

// ImportPlace inserts a place under a caller-chosen id. Re-importing the
// same id is a no-op.
func (s *Service) ImportPlace(ctx context.Context, place Place) error {
	normalizePlace(&place)
	if err := validatePlace(place); err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, `
		INSERT INTO custom_places (id, user_id, custom_city_id, city_id, is_custom_city, name, category_raw_value,
			place_description, address, lat, lng, thumbnail, recommended_dishes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO NOTHING
	`, placeArgs(place)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		s.publish(ctx, stream.TableCustomPlaces, stream.OpInsert, placeKeys(place))
	}
	return nil
}

// GetPlace returns a place viewerID may see: their own, one a visit in a
// shared trip points at, or one inside a custom city a shared trip names.
func (s *Service) GetPlace(ctx context.Context, viewerID, id string) (Place, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+placeColumns+`
		FROM custom_places p
		WHERE p.id=$1 AND (p.user_id=$2 OR `+sharedPlace+` OR `+sharedPlaceCity+`)
	`, id, viewerID, refs.ToCustomPlaceRef(id))
	place, err := scanPlace(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Place{}, ErrNotFound
	}
	return place, err
}

func (s *Service) placeByID(ctx context.Context, id string) (Place, error) {
	row := s.db.QueryRow(ctx, `SELECT `+placeColumns+` FROM custom_places WHERE id=$1`, id)
	place, err := scanPlace(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Place{}, ErrNotFound
	}
	return place, err
}

// ListPlaces returns custom places for a city reference. An empty ref lists
// all of the user's places. A custom city ref lists that city's places when
// the user owns the city or shares a trip naming it; a curated code lists the
// user's places attached to it.
func (s *Service) ListPlaces(ctx context.Context, userID, cityRef string) ([]Place, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case cityRef == "":
		rows, err = s.db.Query(ctx, `
			SELECT `+placeColumns+`
			FROM custom_places WHERE user_id=$1
			ORDER BY created_at DESC
		`, userID)
	case refs.IsCustomCityRef(cityRef):
		rows, err = s.db.Query(ctx, `
			SELECT `+placeColumns+`
			FROM custom_places p
			WHERE p.custom_city_id=$1 AND (p.user_id=$2 OR `+sharedPlaceCity+`)
			ORDER BY p.created_at DESC
		`, refs.ParseCustomCityRef(cityRef), userID)
	default:
		rows, err = s.db.Query(ctx, `
			SELECT `+placeColumns+`
			FROM custom_places WHERE user_id=$1 AND city_id=$2 AND NOT is_custom_city
			ORDER BY created_at DESC
		`, userID, cityRef)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	return places, rows.Err()
}

func (s *Service) UpdatePlace(ctx context.Context, userID, id string, patch PlacePatch) (Place, error) {
	place, err := s.placeByID(ctx, id)
	if err != nil {
		return Place{}, err
	}
	if place.UserID != userID {
		return Place{}, ErrForbidden
	}
	if patch.CityRef != nil {
		if err := s.attachCity(ctx, userID, &place, *patch.CityRef); err != nil {
			return Place{}, err
		}
	}
	if patch.Name != nil {
		place.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Category != nil {
		place.Category = *patch.Category
	}
	if patch.Description != nil {
		place.Description = *patch.Description
	}
	if patch.Address != nil {
		place.Address = *patch.Address
	}
	if patch.Thumbnail != nil {
		place.Thumbnail = *patch.Thumbnail
	}
	if patch.RecommendedDishes != nil {
		place.RecommendedDishes = *patch.RecommendedDishes
	}
	place.Lat, place.Lng = patchCoordinates(place.Lat, place.Lng, patch.Lat, patch.Lng, patch.ClearCoordinates)
	normalizePlace(&place)
	if err := validatePlace(place); err != nil {
		return Place{}, err
	}

	_, err = s.db.Exec(ctx, `
		UPDATE custom_places
		SET custom_city_id=$3, city_id=$4, is_custom_city=$5, name=$6, category_raw_value=$7,
			place_description=$8, address=$9, lat=$10, lng=$11, thumbnail=$12, recommended_dishes=$13
		WHERE id=$1 AND user_id=$2
	`, placeArgs(place)...)
	if err != nil {
		return Place{}, err
	}
	s.publish(ctx, stream.TableCustomPlaces, stream.OpUpdate, placeKeys(place))
	return place, nil
}

func (s *Service) DeletePlace(ctx context.Context, userID, id string) error {
	place, err := s.placeByID(ctx, id)
	if err != nil {
		return err
	}
	if place.UserID != userID {
		return ErrForbidden
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM custom_places WHERE id=$1`, id); err != nil {
		return err
	}
	s.publish(ctx, stream.TableCustomPlaces, stream.OpDelete, placeKeys(place))
	return nil
}

func (s *Service) ownedCity(ctx context.Context, userID, id string) (City, error) {
	city, err := s.cityByID(ctx, id)
	if err != nil {
		return City{}, err
	}
	if city.UserID != userID {
		return City{}, ErrForbidden
	}
	return city, nil
}

// attachCity points place at the city named by ref.
func (s *Service) attachCity(ctx context.Context, userID string, place *Place, ref string) error {
	if refs.IsCustomCityRef(ref) {
		token := refs.ParseCustomCityRef(ref)
		if token == "" {
			return fmt.Errorf("%w: empty custom city reference", ErrValidation)
		}
		city, err := s.cityByID(ctx, token)
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: unknown custom city %q", ErrValidation, ref)
		}
		if err != nil {
			return err
		}
		if city.UserID != userID {
			return ErrForbidden
		}
		place.CustomCityID = &city.ID
		place.CityID = city.ID
		place.IsCustomCity = true
		return nil
	}
	if _, ok := catalog.CityByID(ref); !ok {
		return fmt.Errorf("%w: unknown city %q", ErrValidation, ref)
	}
	place.CustomCityID = nil
	place.CityID = ref
	place.IsCustomCity = false
	return nil
}

func (s *Service) publish(ctx context.Context, table string, op stream.Op, keys map[string]string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, stream.Change{Table: table, Op: op, Keys: keys})
}

func normalizePlace(p *Place) {
	if p.Category == "" {
		p.Category = string(catalog.Landmark)
	}
	if p.RecommendedDishes == nil {
		p.RecommendedDishes = []string{}
	}
}

func validateCity(c City) error {
	if c.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	return validateCoordinates(c.Lat, c.Lng)
}

func validatePlace(p Place) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if !catalog.IsCategory(p.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, p.Category)
	}
	if p.IsCustomCity == (p.CustomCityID == nil) || (!p.IsCustomCity && p.CityID == "") {
		return fmt.Errorf("%w: place needs exactly one city", ErrValidation)
	}
	return validateCoordinates(p.Lat, p.Lng)
}

func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return fmt.Errorf("%w: latitude and longitude go together", ErrValidation)
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
		return fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}
	return nil
}

func patchCoordinates(lat, lng, newLat, newLng *float64, reset bool) (*float64, *float64) {
	if reset {
		return nil, nil
	}
	if newLat != nil {
		lat = newLat
	}
	if newLng != nil {
		lng = newLng
	}
	return lat, lng
}

func scanCity(row pgx.Row) (City, error) {
	var c City
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Region, &c.Description, &c.Lat, &c.Lng, &c.Thumbnail, &c.CreatedAt)
	return c, err
}

func scanPlace(row pgx.Row) (Place, error) {
	var p Place
	err := row.Scan(&p.ID, &p.UserID, &p.CustomCityID, &p.CityID, &p.IsCustomCity, &p.Name, &p.Category,
		&p.Description, &p.Address, &p.Lat, &p.Lng, &p.Thumbnail, &p.RecommendedDishes, &p.CreatedAt)
	return p, err
}

func placeArgs(p Place) []any {
	return []any{p.ID, p.UserID, p.CustomCityID, p.CityID, p.IsCustomCity, p.Name, p.Category,
		p.Description, p.Address, p.Lat, p.Lng, p.Thumbnail, p.RecommendedDishes}
}

func cityKeys(c City) map[string]string {
	return map[string]string{"id": c.ID, "user_id": c.UserID}
}

func placeKeys(p Place) map[string]string {
	keys := map[string]string{"id": p.ID, "user_id": p.UserID, "city_id": p.CityID}
	if p.CustomCityID != nil {
		keys["custom_city_id"] = *p.CustomCityID
	}
	return keys
}
