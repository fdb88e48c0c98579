// Package catalog is the read-only index of curated cities and places that
// ships with the service.
package catalog

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	citiesByID   = map[string]City{}
	placesByID   = map[string]Place{}
	placesByCity = map[string][]Place{}
)

func init() {
	for _, c := range cities {
		citiesByID[c.ID] = c
	}
	for _, p := range places {
		placesByID[p.ID] = p
		placesByCity[p.CityID] = append(placesByCity[p.CityID], p)
	}
}

// Cities returns every curated city in display order.
func Cities() []City {
	out := make([]City, len(cities))
	copy(out, cities)
	return out
}

func CityByID(id string) (City, bool) {
	c, ok := citiesByID[id]
	return c, ok
}

func PlaceByID(id string) (Place, bool) {
	p, ok := placesByID[id]
	return p, ok
}

// PlacesByCity returns the curated places of a city, nil for unknown codes.
func PlacesByCity(cityID string) []Place {
	src := placesByCity[cityID]
	if src == nil {
		return nil
	}
	out := make([]Place, len(src))
	copy(out, src)
	return out
}

func CityCoordinates(id string) (Coordinates, bool) {
	c, ok := cityCoordinates[id]
	return c, ok
}

func PlaceCoordinates(id string) (Coordinates, bool) {
	p, ok := placesByID[id]
	if !ok {
		return Coordinates{}, false
	}
	return p.coords, true
}

// Search matches curated places whose name contains query, ignoring case and
// Vietnamese diacritics. Prefix matches sort first.
func Search(query string) []Place {
	q := Fold(query)
	if q == "" {
		return nil
	}

	type hit struct {
		place  Place
		prefix bool
	}
	var hits []hit
	for _, p := range places {
		name := Fold(p.Name)
		if !strings.Contains(name, q) {
			continue
		}
		hits = append(hits, hit{place: p, prefix: strings.HasPrefix(name, q)})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].prefix && !hits[j].prefix
	})

	out := make([]Place, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.place)
	}
	return out
}

// Fold lowercases s and strips combining marks, mapping đ to d.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.NewReplacer("đ", "d", "Đ", "d").Replace(folded)
	return strings.ToLower(strings.TrimSpace(folded))
}
