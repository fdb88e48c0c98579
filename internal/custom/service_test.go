package custom

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"backend-vietrip/internal/stream"

	"github.com/pashagolub/pgxmock/v3"
)

type recorder struct {
	mu      sync.Mutex
	changes []stream.Change
}

func (r *recorder) Publish(_ context.Context, ch stream.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, ch)
}

func (r *recorder) tables() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.changes))
	for i, ch := range r.changes {
		out[i] = ch.Table + ":" + string(ch.Op)
	}
	return out
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func f(v float64) *float64 { return &v }
func str(v string) *string  { return &v }

var cityCols = []string{"id", "user_id", "name", "region", "city_description", "lat", "lng", "thumbnail", "created_at"}

var placeCols = []string{"id", "user_id", "custom_city_id", "city_id", "is_custom_city", "name", "category_raw_value",
	"place_description", "address", "lat", "lng", "thumbnail", "recommended_dishes", "created_at"}

func cityRow(id, userID string) *pgxmock.Rows {
	return pgxmock.NewRows(cityCols).
		AddRow(id, userID, "Mai Chau", "North", "valley", f(20.66), f(105.08), "", time.Now())
}

func TestCreateCity(t *testing.T) {
	mock := newMock(t)
	rec := &recorder{}
	svc := NewService(mock, rec)

	mock.ExpectQuery(`INSERT INTO custom_cities`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Mai Chau", "North", "", pgxmock.AnyArg(), pgxmock.AnyArg(), "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	city, err := svc.CreateCity(context.Background(), "user-1", CityInput{Name: "  Mai Chau ", Region: "North", Lat: f(20.66), Lng: f(105.08)})
	if err != nil {
		t.Fatalf("create city: %v", err)
	}
	if city.ID == "" || city.Ref() != "cc:"+city.ID {
		t.Fatalf("unexpected city %+v", city)
	}
	if got := rec.tables(); len(got) != 1 || got[0] != "custom_cities:INSERT" {
		t.Fatalf("unexpected changes %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateCityValidation(t *testing.T) {
	svc := NewService(nil, nil)
	cases := []CityInput{
		{Name: "   "},
		{Name: "X", Lat: f(10)},
		{Name: "X", Lat: f(91), Lng: f(0)},
		{Name: "X", Lat: f(0), Lng: f(-181)},
	}
	for _, in := range cases {
		if _, err := svc.CreateCity(context.Background(), "user-1", in); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error for %+v, got %v", in, err)
		}
	}
}

func TestGetCityVisibleToOwnerAndTripMembers(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, nil)

	mock.ExpectQuery(`(?s)FROM custom_cities c\s+WHERE c.id=\$1 AND \(c.user_id=\$2 OR EXISTS \(.*ANY\(t.city_ids\)`).
		WithArgs("c1", "user-2", "cc:c1").
		WillReturnRows(cityRow("c1", "user-1"))
	city, err := svc.GetCity(context.Background(), "user-2", "c1")
	if err != nil || city.UserID != "user-1" {
		t.Fatalf("expected shared city, got %+v %v", city, err)
	}

	mock.ExpectQuery(`FROM custom_cities c\s+WHERE c.id=\$1`).
		WithArgs("c1", "stranger", "cc:c1").
		WillReturnRows(pgxmock.NewRows(cityCols))
	if _, err := svc.GetCity(context.Background(), "stranger", "c1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for a stranger, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetPlaceHiddenFromStrangers(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, nil)

	mock.ExpectQuery(`(?s)FROM custom_places p\s+WHERE p.id=\$1 AND \(p.user_id=\$2 OR EXISTS \(.*v.place_id=\$3.*p.is_custom_city`).
		WithArgs("p1", "stranger", "cp:p1").
		WillReturnRows(pgxmock.NewRows(placeCols))
	if _, err := svc.GetPlace(context.Background(), "stranger", "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateCityPatchAndOwnership(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, nil)

	mock.ExpectQuery(`FROM custom_cities WHERE id=\$1`).WithArgs("c1").WillReturnRows(cityRow("c1", "user-1"))
	mock.ExpectExec(`UPDATE custom_cities`).
		WithArgs("c1", "Mai Châu", "North", "valley", pgxmock.AnyArg(), pgxmock.AnyArg(), "").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	city, err := svc.UpdateCity(context.Background(), "user-1", "c1", CityPatch{Name: str("Mai Châu"), ClearCoordinates: true})
	if err != nil {
		t.Fatalf("update city: %v", err)
	}
	if city.Lat != nil || city.Lng != nil || city.Name != "Mai Châu" {
		t.Fatalf("patch not applied: %+v", city)
	}

	mock.ExpectQuery(`FROM custom_cities WHERE id=\$1`).WithArgs("c1").WillReturnRows(cityRow("c1", "user-1"))
	if _, err := svc.UpdateCity(context.Background(), "user-2", "c1", CityPatch{Name: str("x")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteCityPublishesPlaces(t *testing.T) {
	mock := newMock(t)
	rec := &recorder{}
	svc := NewService(mock, rec)

	mock.ExpectQuery(`FROM custom_cities WHERE id=\$1`).WithArgs("c1").WillReturnRows(cityRow("c1", "user-1"))
	mock.ExpectExec(`DELETE FROM custom_cities`).WithArgs("c1").WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := svc.DeleteCity(context.Background(), "user-1", "c1"); err != nil {
		t.Fatalf("delete city: %v", err)
	}
	got := rec.tables()
	if len(got) != 2 || got[0] != "custom_cities:DELETE" || got[1] != "custom_places:DELETE" {
		t.Fatalf("unexpected changes %v", got)
	}
	if rec.changes[1].Keys["custom_city_id"] != "c1" {
		t.Fatalf("expected places change keyed by custom city")
	}
}

func TestCreatePlaceOnCuratedCity(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, nil)

	mock.ExpectQuery(`INSERT INTO custom_places`).
		WithArgs(pgxmock.AnyArg(), "user-1", (*string)(nil), "hanoi", false, "Bun Cha Stall", "landmark",
			"", "", (*float64)(nil), (*float64)(nil), "", []string{}).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	place, err := svc.CreatePlace(context.Background(), "user-1", PlaceInput{CityRef: "hanoi", Name: "Bun Cha Stall"})
	if err != nil {
		t.Fatalf("create place: %v", err)
	}
	if place.Category != "landmark" || place.CityRef() != "hanoi" {
		t.Fatalf("unexpected place %+v", place)
	}
}

func TestCreatePlaceOnCustomCity(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, nil)

	mock.ExpectQuery(`FROM custom_cities WHERE id=\$1`).WithArgs("c1").WillReturnRows(cityRow("c1", "user-1"))
	mock.ExpectQuery(`INSERT INTO custom_places`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), "c1", true, "Homestay", "cafe",
			"", "", pgxmock.AnyArg(), pgxmock.AnyArg(), "", []string{"tea"}).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	place, err := svc.CreatePlace(context.Background(), "user-1", PlaceInput{
		CityRef: "cc:c1", Name: "Homestay", Category: "cafe", RecommendedDishes: []string{"tea"},
	})
	if err != nil {
		t.Fatalf("create place: %v", err)
	}
	if place.CityRef() != "cc:c1" || !place.IsCustomCity {
		t.Fatalf("unexpected place %+v", place)
	}
}

func TestCreatePlaceValidation(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, nil)
	ctx := context.Background()

	if _, err := svc.CreatePlace(ctx, "user-1", PlaceInput{CityRef: "atlantis", Name: "x"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected unknown city validation error, got %v", err)
	}
	if _, err := svc.CreatePlace(ctx, "user-1", PlaceInput{CityRef: "hanoi", Name: "x", Category: "zoo"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected category validation error, got %v", err)
	}
	if _, err := svc.CreatePlace(ctx, "user-1", PlaceInput{CityRef: "hanoi", Name: "x", Lng: f(105)}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected coordinate validation error, got %v", err)
	}
	if _, err := svc.CreatePlace(ctx, "user-1", PlaceInput{CityRef: "cc:", Name: "x"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected empty ref validation error, got %v", err)
	}

	mock.ExpectQuery(`FROM custom_cities WHERE id=\$1`).WithArgs("gone").WillReturnRows(pgxmock.NewRows(cityCols))
	if _, err := svc.CreatePlace(ctx, "user-1", PlaceInput{CityRef: "cc:gone", Name: "x"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected dangling ref validation error, got %v", err)
	}

	mock.ExpectQuery(`FROM custom_cities WHERE id=\$1`).WithArgs("c1").WillReturnRows(cityRow("c1", "user-2"))
	if _, err := svc.CreatePlace(ctx, "user-1", PlaceInput{CityRef: "cc:c1", Name: "x"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestListPlacesByRef(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, nil)
	ctx := context.Background()
	cid := "c1"

	mock.ExpectQuery(`WHERE p.custom_city_id=\$1 AND \(p.user_id=\$2 OR \(p.is_custom_city`).
		WithArgs("c1", "user-1").
		WillReturnRows(pgxmock.NewRows(placeCols).
			AddRow("p1", "user-2", &cid, "c1", true, "Homestay", "cafe", "", "", (*float64)(nil), (*float64)(nil), "", []string{}, time.Now()))
	places, err := svc.ListPlaces(ctx, "user-1", "cc:c1")
	if err != nil || len(places) != 1 || places[0].Ref() != "cp:p1" {
		t.Fatalf("unexpected custom city places %v %v", places, err)
	}

	mock.ExpectQuery(`WHERE user_id=\$1 AND city_id=\$2 AND NOT is_custom_city`).
		WithArgs("user-1", "hanoi").
		WillReturnRows(pgxmock.NewRows(placeCols))
	places, err = svc.ListPlaces(ctx, "user-1", "hanoi")
	if err != nil || len(places) != 0 {
		t.Fatalf("unexpected curated city places %v %v", places, err)
	}

	mock.ExpectQuery(`FROM custom_places WHERE user_id=\$1\s+ORDER BY`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(placeCols))
	if _, err := svc.ListPlaces(ctx, "user-1", ""); err != nil {
		t.Fatalf("list all places: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateAndDeletePlace(t *testing.T) {
	mock := newMock(t)
	rec := &recorder{}
	svc := NewService(mock, rec)
	ctx := context.Background()

	row := func() *pgxmock.Rows {
		return pgxmock.NewRows(placeCols).
			AddRow("p1", "user-1", (*string)(nil), "hanoi", false, "Stall", "restaurant", "", "", f(21), f(105.8), "", []string{"bun cha"}, time.Now())
	}

	mock.ExpectQuery(`FROM custom_places WHERE id=\$1`).WithArgs("p1").WillReturnRows(row())
	mock.ExpectExec(`UPDATE custom_places`).
		WithArgs("p1", "user-1", (*string)(nil), "hanoi", false, "Stall", "restaurant", "", "", pgxmock.AnyArg(), pgxmock.AnyArg(), "", []string{"bun cha", "nem"}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	place, err := svc.UpdatePlace(ctx, "user-1", "p1", PlacePatch{RecommendedDishes: &[]string{"bun cha", "nem"}})
	if err != nil || len(place.RecommendedDishes) != 2 {
		t.Fatalf("update place: %v", err)
	}

	mock.ExpectQuery(`FROM custom_places WHERE id=\$1`).WithArgs("p1").WillReturnRows(row())
	if err := svc.DeletePlace(ctx, "user-2", "p1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	mock.ExpectQuery(`FROM custom_places WHERE id=\$1`).WithArgs("p1").WillReturnRows(row())
	mock.ExpectExec(`DELETE FROM custom_places`).WithArgs("p1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	if err := svc.DeletePlace(ctx, "user-1", "p1"); err != nil {
		t.Fatalf("delete place: %v", err)
	}

	got := rec.tables()
	if len(got) != 2 || got[0] != "custom_places:UPDATE" || got[1] != "custom_places:DELETE" {
		t.Fatalf("unexpected changes %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	mock := newMock(t)
	rec := &recorder{}
	svc := NewService(mock, rec)
	ctx := context.Background()
	cid := "c1"

	mock.ExpectExec(`(?s)INSERT INTO custom_cities.*ON CONFLICT \(id\) DO NOTHING`).
		WithArgs("c1", "user-1", "Mai Chau", "", "", (*float64)(nil), (*float64)(nil), "").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	if err := svc.ImportCity(ctx, City{ID: "c1", UserID: "user-1", Name: "Mai Chau"}); err != nil {
		t.Fatalf("import city: %v", err)
	}

	mock.ExpectExec(`(?s)INSERT INTO custom_places.*ON CONFLICT \(id\) DO NOTHING`).
		WithArgs("p1", "user-1", &cid, "c1", true, "Homestay", "landmark", "", "", (*float64)(nil), (*float64)(nil), "", []string{}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	if err := svc.ImportPlace(ctx, Place{ID: "p1", UserID: "user-1", CustomCityID: &cid, CityID: "c1", IsCustomCity: true, Name: "Homestay"}); err != nil {
		t.Fatalf("import place: %v", err)
	}

	if got := rec.tables(); len(got) != 1 || got[0] != "custom_places:INSERT" {
		t.Fatalf("expected only the fresh insert to publish, got %v", got)
	}
	if err := svc.ImportPlace(ctx, Place{ID: "p2", UserID: "user-1", Name: "Orphan"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected cityless place to fail validation, got %v", err)
	}
}
