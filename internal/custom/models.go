package custom

import (
	"time"

	"backend-vietrip/internal/refs"
)

// City is a user-created city. Its reference form is "cc:<id>".
type City struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Region      string    `json:"region"`
	Description string    `json:"description"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
	Thumbnail   string    `json:"thumbnail"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c City) Ref() string { return refs.ToCustomCityRef(c.ID) }

// Place is a user-created place. It hangs off exactly one city: a custom
// city (CustomCityID set, IsCustomCity true) or a curated city code (CityID).
type Place struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	CustomCityID      *string   `json:"custom_city_id,omitempty"`
	CityID            string    `json:"city_id"`
	IsCustomCity      bool      `json:"is_custom_city"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Description       string    `json:"description"`
	Address           string    `json:"address"`
	Lat               *float64  `json:"lat,omitempty"`
	Lng               *float64  `json:"lng,omitempty"`
	Thumbnail         string    `json:"thumbnail"`
	RecommendedDishes []string  `json:"recommended_dishes"`
	CreatedAt         time.Time `json:"created_at"`
}

func (p Place) Ref() string { return refs.ToCustomPlaceRef(p.ID) }

// CityRef is the reference of the city the place belongs to.
func (p Place) CityRef() string {
	if p.IsCustomCity && p.CustomCityID != nil {
		return refs.ToCustomCityRef(*p.CustomCityID)
	}
	return p.CityID
}

type CityInput struct {
	Name        string   `json:"name"`
	Region      string   `json:"region"`
	Description string   `json:"description"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Thumbnail   string   `json:"thumbnail"`
}

// CityPatch updates the non-nil fields only.
type CityPatch struct {
	Name             *string  `json:"name"`
	Region           *string  `json:"region"`
	Description      *string  `json:"description"`
	Lat              *float64 `json:"lat"`
	Lng              *float64 `json:"lng"`
	ClearCoordinates bool     `json:"clear_coordinates"`
	Thumbnail        *string  `json:"thumbnail"`
}

// PlaceInput names its city by reference: a curated code or "cc:<id>".
type PlaceInput struct {
	CityRef           string   `json:"city_ref"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Description       string   `json:"description"`
	Address           string   `json:"address"`
	Lat               *float64 `json:"lat"`
	Lng               *float64 `json:"lng"`
	Thumbnail         string   `json:"thumbnail"`
	RecommendedDishes []string `json:"recommended_dishes"`
}

type PlacePatch struct {
	CityRef           *string   `json:"city_ref"`
	Name              *string   `json:"name"`
	Category          *string   `json:"category"`
	Description       *string   `json:"description"`
	Address           *string   `json:"address"`
	Lat               *float64  `json:"lat"`
	Lng               *float64  `json:"lng"`
	ClearCoordinates  bool      `json:"clear_coordinates"`
	Thumbnail         *string   `json:"thumbnail"`
	RecommendedDishes *[]string `json:"recommended_dishes"`
}
