// Package resolver turns city and place references into one display shape,
// whether they point at curated content or at a user's custom rows.
package resolver

import (
	"context"
	"errors"
	"hash/fnv"

	"backend-vietrip/internal/catalog"
	"backend-vietrip/internal/custom"
	"backend-vietrip/internal/logger"
	"backend-vietrip/internal/refs"

	"github.com/rs/zerolog"
)

type ResolvedCity struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Region        string    `json:"region"`
	Description   string    `json:"description"`
	GradientIndex int       `json:"gradient_index"`
	ImageAsset    *string   `json:"image_asset"`
	Origin        refs.Kind `json:"origin"`
	IsCustom      bool      `json:"is_custom"`
	CustomID      string    `json:"custom_id,omitempty"`
	Lat           *float64  `json:"lat,omitempty"`
	Lng           *float64  `json:"lng,omitempty"`
}

type ResolvedPlace struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Description       string    `json:"description"`
	Address           string    `json:"address"`
	CityRef           string    `json:"city_ref"`
	Rating            *float64  `json:"rating"`
	PriceLevel        *int      `json:"price_level"`
	RecommendedDishes []string  `json:"recommended_dishes"`
	Origin            refs.Kind `json:"origin"`
	IsCustom          bool      `json:"is_custom"`
	CustomID          string    `json:"custom_id,omitempty"`
	Lat               *float64  `json:"lat,omitempty"`
	Lng               *float64  `json:"lng,omitempty"`
}

// HasCoordinates reports whether the place can be put on a map.
func (p ResolvedPlace) HasCoordinates() bool { return p.Lat != nil && p.Lng != nil }

// CustomStore is the slice of the custom content store the resolver reads.
// Lookups are made on behalf of a viewer and only return rows that viewer
// may see.
type CustomStore interface {
	GetCity(ctx context.Context, viewerID, id string) (custom.City, error)
	GetPlace(ctx context.Context, viewerID, id string) (custom.Place, error)
	ListPlaces(ctx context.Context, userID, cityRef string) ([]custom.Place, error)
}

type Resolver struct {
	store CustomStore
	log   zerolog.Logger
}

func New(store CustomStore, log zerolog.Logger) *Resolver {
	return &Resolver{store: store, log: logger.Component(log, "resolver")}
}

// ResolveCityRef looks ref up in the namespace its prefix names. A missing
// row, a row viewerID may not see, and a failing store all come back as
// absent; failures are logged.
func (r *Resolver) ResolveCityRef(ctx context.Context, viewerID, ref string) (ResolvedCity, bool) {
	switch refs.KindOf(ref) {
	case refs.CustomCity:
		cc, err := r.store.GetCity(ctx, viewerID, refs.ParseCustomCityRef(ref))
		if err != nil {
			r.logLookup(err, refs.CustomCity, ref)
			return ResolvedCity{}, false
		}
		return CustomCity(cc), true
	case refs.CustomPlace:
		return ResolvedCity{}, false
	}
	city, ok := catalog.CityByID(ref)
	if !ok {
		return ResolvedCity{}, false
	}
	return StaticCity(city), true
}

func (r *Resolver) ResolvePlaceRef(ctx context.Context, viewerID, ref string) (ResolvedPlace, bool) {
	switch refs.KindOf(ref) {
	case refs.CustomPlace:
		cp, err := r.store.GetPlace(ctx, viewerID, refs.ParseCustomPlaceRef(ref))
		if err != nil {
			r.logLookup(err, refs.CustomPlace, ref)
			return ResolvedPlace{}, false
		}
		return CustomPlace(cp), true
	case refs.CustomCity:
		return ResolvedPlace{}, false
	}
	place, ok := catalog.PlaceByID(ref)
	if !ok {
		return ResolvedPlace{}, false
	}
	return StaticPlace(place), true
}

// ResolveCities keeps the order of cityRefs and drops the ones that do not
// resolve for viewerID.
func (r *Resolver) ResolveCities(ctx context.Context, viewerID string, cityRefs []string) []ResolvedCity {
	out := make([]ResolvedCity, 0, len(cityRefs))
	for _, ref := range cityRefs {
		if city, ok := r.ResolveCityRef(ctx, viewerID, ref); ok {
			out = append(out, city)
		}
	}
	return out
}

// PlacesForCityRef lists what can be visited in a city. A custom city has
// only custom places; a curated city lists its curated places followed by
// the places userID attached to it.
func (r *Resolver) PlacesForCityRef(ctx context.Context, cityRef, userID string) []ResolvedPlace {
	out := []ResolvedPlace{}
	switch refs.KindOf(cityRef) {
	case refs.CustomPlace:
		return out
	case refs.Curated:
		for _, p := range catalog.PlacesByCity(cityRef) {
			out = append(out, StaticPlace(p))
		}
		if userID == "" {
			return out
		}
	}
	places, err := r.store.ListPlaces(ctx, userID, cityRef)
	if err != nil {
		r.log.Error().Err(err).Str("city_ref", cityRef).Msg("list custom places failed")
		return out
	}
	for _, p := range places {
		out = append(out, CustomPlace(p))
	}
	return out
}

func (r *Resolver) logLookup(err error, kind refs.Kind, ref string) {
	if errors.Is(err, custom.ErrNotFound) {
		r.log.Debug().Str("ref", ref).Stringer("kind", kind).Msg("custom row not found")
		return
	}
	r.log.Error().Err(err).Str("ref", ref).Stringer("kind", kind).Msg("resolve custom row failed")
}

func StaticCity(c catalog.City) ResolvedCity {
	rc := ResolvedCity{
		ID:            c.ID,
		Name:          c.Name,
		Region:        c.Region,
		Description:   c.Description,
		GradientIndex: c.GradientIndex,
		Origin:        refs.Curated,
	}
	if c.ImageAsset != "" {
		asset := c.ImageAsset
		rc.ImageAsset = &asset
	}
	if coords, ok := catalog.CityCoordinates(c.ID); ok {
		rc.Lat, rc.Lng = &coords.Lat, &coords.Lng
	}
	return rc
}

func CustomCity(c custom.City) ResolvedCity {
	return ResolvedCity{
		ID:            c.Ref(),
		Name:          c.Name,
		Region:        c.Region,
		Description:   c.Description,
		GradientIndex: GradientIndex(c.ID),
		Origin:        refs.CustomCity,
		IsCustom:      true,
		CustomID:      c.ID,
		Lat:           c.Lat,
		Lng:           c.Lng,
	}
}

func StaticPlace(p catalog.Place) ResolvedPlace {
	rating, price := p.Rating, p.PriceLevel
	rp := ResolvedPlace{
		ID:                p.ID,
		Name:              p.Name,
		Category:          string(p.Category),
		Description:       p.Description,
		Address:           p.Address,
		CityRef:           p.CityID,
		Rating:            &rating,
		PriceLevel:        &price,
		RecommendedDishes: p.RecommendedDishes,
		Origin:            refs.Curated,
	}
	if coords, ok := catalog.PlaceCoordinates(p.ID); ok {
		rp.Lat, rp.Lng = &coords.Lat, &coords.Lng
	}
	return rp
}

func CustomPlace(p custom.Place) ResolvedPlace {
	dishes := p.RecommendedDishes
	if dishes == nil {
		dishes = []string{}
	}
	return ResolvedPlace{
		ID:                p.Ref(),
		Name:              p.Name,
		Category:          string(catalog.CategoryFor(p.Category).ID),
		Description:       p.Description,
		Address:           p.Address,
		CityRef:           p.CityRef(),
		RecommendedDishes: dishes,
		Origin:            refs.CustomPlace,
		IsCustom:          true,
		CustomID:          p.ID,
		Lat:               p.Lat,
		Lng:               p.Lng,
	}
}

// GradientIndex picks a stable palette slot for a custom token.
func GradientIndex(token string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return int(h.Sum32() % catalog.PaletteSize)
}
