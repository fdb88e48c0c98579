package migration

import (
	"strconv"
	"strings"

	"backend-vietrip/internal/refs"

	"github.com/google/uuid"
)

// namespace scopes the deterministic ids given to migrated records.
var namespace = uuid.MustParse("6f1c3b2e-8d4a-5e7f-9a0b-1c2d3e4f5a6b")

// newID derives the id a legacy record gets. The same user, table and old
// id always map to the same id, so a retried pass collides with the rows
// the failed one already wrote instead of duplicating them.
func newID(userID, table string, old int64) string {
	return uuid.NewSHA1(namespace, []byte(userID+"/"+table+"/"+strconv.FormatInt(old, 10))).String()
}

// translation maps old integer ids to the ids of records that made it into
// the new store.
type translation struct {
	cities   map[int64]string
	places   map[int64]string
	trips    map[int64]string
	dayPlans map[int64]string
}

func newTranslation() *translation {
	return &translation{
		cities:   map[int64]string{},
		places:   map[int64]string{},
		trips:    map[int64]string{},
		dayPlans: map[int64]string{},
	}
}

// cityRef rewrites a custom city reference. Curated codes pass through;
// a custom reference whose city did not migrate reports false.
func (t *translation) cityRef(ref string) (string, bool) {
	if !refs.IsCustomCityRef(ref) {
		return ref, ref != ""
	}
	old, err := strconv.ParseInt(strings.TrimSpace(refs.ParseCustomCityRef(ref)), 10, 64)
	if err != nil {
		return "", false
	}
	id, ok := t.cities[old]
	if !ok {
		return "", false
	}
	return refs.ToCustomCityRef(id), true
}

// placeRef is cityRef for place references.
func (t *translation) placeRef(ref string) (string, bool) {
	if !refs.IsCustomPlaceRef(ref) {
		return ref, ref != ""
	}
	old, err := strconv.ParseInt(strings.TrimSpace(refs.ParseCustomPlaceRef(ref)), 10, 64)
	if err != nil {
		return "", false
	}
	id, ok := t.places[old]
	if !ok {
		return "", false
	}
	return refs.ToCustomPlaceRef(id), true
}

// cityRefs rewrites a trip's city list, dropping references that no longer
// point anywhere.
func (t *translation) cityRefs(in []string) (out []string, dropped int) {
	out = make([]string, 0, len(in))
	for _, ref := range in {
		if next, ok := t.cityRef(ref); ok {
			out = append(out, next)
			continue
		}
		dropped++
	}
	return out, dropped
}
