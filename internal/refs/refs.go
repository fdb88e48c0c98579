// Package refs encodes and decodes the string references that point either
// at curated content (bare codes such as "hanoi" or "hn01") or at
// user-created content ("cc:<token>" for a custom city, "cp:<token>" for a
// custom place).
//
// The prefixes are part of the persisted format: trips store city refs and
// place visits store place refs verbatim.
package refs

import (
	"fmt"
	"strings"
)

const (
	CityPrefix  = "cc:"
	PlacePrefix = "cp:"
)

// Kind classifies a reference.
type Kind int

const (
	Curated Kind = iota
	CustomCity
	CustomPlace
)

func (k Kind) String() string {
	switch k {
	case CustomCity:
		return "custom_city"
	case CustomPlace:
		return "custom_place"
	default:
		return "curated"
	}
}

// MarshalText lets a Kind travel as its name in JSON.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "custom_city":
		*k = CustomCity
	case "custom_place":
		*k = CustomPlace
	case "curated":
		*k = Curated
	default:
		return fmt.Errorf("unknown reference kind %q", b)
	}
	return nil
}

// KindOf reports which namespace ref belongs to.
func KindOf(ref string) Kind {
	switch {
	case IsCustomCityRef(ref):
		return CustomCity
	case IsCustomPlaceRef(ref):
		return CustomPlace
	default:
		return Curated
	}
}

func IsCustomCityRef(ref string) bool  { return strings.HasPrefix(ref, CityPrefix) }
func IsCustomPlaceRef(ref string) bool { return strings.HasPrefix(ref, PlacePrefix) }

// ParseCustomCityRef returns the token of a custom city reference.
// Callers check IsCustomCityRef first; other input comes back unchanged.
func ParseCustomCityRef(ref string) string { return strings.TrimPrefix(ref, CityPrefix) }

// ParseCustomPlaceRef returns the token of a custom place reference.
// Callers check IsCustomPlaceRef first; other input comes back unchanged.
func ParseCustomPlaceRef(ref string) string { return strings.TrimPrefix(ref, PlacePrefix) }

func ToCustomCityRef(token string) string  { return CityPrefix + token }
func ToCustomPlaceRef(token string) string { return PlacePrefix + token }
