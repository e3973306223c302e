package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"reelhouse/models"
)

type fakeCatalogGateway struct {
	shelves    map[string][]models.CatalogItem
	shelfErrs  map[string]error
	trailerKey string
	trailerErr error
}

func (f *fakeCatalogGateway) shelf(name string) ([]models.CatalogItem, error) {
	if err := f.shelfErrs[name]; err != nil {
		return nil, err
	}
	return f.shelves[name], nil
}

func (f *fakeCatalogGateway) TrendingMovies(context.Context) ([]models.CatalogItem, error) {
	return f.shelf("trending-movies")
}
func (f *fakeCatalogGateway) UpcomingMovies(context.Context) ([]models.CatalogItem, error) {
	return f.shelf("upcoming-movies")
}
func (f *fakeCatalogGateway) PopularMovies(context.Context) ([]models.CatalogItem, error) {
	return f.shelf("popular-movies")
}
func (f *fakeCatalogGateway) TopRatedMovies(context.Context) ([]models.CatalogItem, error) {
	return f.shelf("top-rated-movies")
}
func (f *fakeCatalogGateway) TrendingShows(context.Context) ([]models.CatalogItem, error) {
	return f.shelf("trending-shows")
}
func (f *fakeCatalogGateway) AiringTodayShows(context.Context) ([]models.CatalogItem, error) {
	return f.shelf("airing-today-shows")
}
func (f *fakeCatalogGateway) OnTheAirShows(context.Context) ([]models.CatalogItem, error) {
	return f.shelf("on-the-air-shows")
}
func (f *fakeCatalogGateway) PopularShows(context.Context) ([]models.CatalogItem, error) {
	return f.shelf("popular-shows")
}
func (f *fakeCatalogGateway) TopRatedShows(context.Context) ([]models.CatalogItem, error) {
	return f.shelf("top-rated-shows")
}
func (f *fakeCatalogGateway) Trailer(context.Context, int64) (string, error) {
	return f.trailerKey, f.trailerErr
}

func newCatalogRouter(gw catalogGateway) *mux.Router {
	r := mux.NewRouter()
	NewCatalogHandler(gw).Register(r)
	return r
}

func TestBrowseAggregatesShelves(t *testing.T) {
	gw := &fakeCatalogGateway{
		shelves: map[string][]models.CatalogItem{
			"trending-movies": {{ID: 1, Title: "A"}},
			"popular-shows":   {{ID: 2, Name: "B"}},
		},
		shelfErrs: map[string]error{},
	}
	router := newCatalogRouter(gw)

	req := httptest.NewRequest(http.MethodGet, "/api/browse", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body browseResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.TrendingMovies) != 1 || body.TrendingMovies[0].ID != 1 {
		t.Fatalf("unexpected trending movies: %+v", body.TrendingMovies)
	}
	if len(body.PopularShows) != 1 || body.PopularShows[0].ID != 2 {
		t.Fatalf("unexpected popular shows: %+v", body.PopularShows)
	}
	// Unconfigured shelves render as empty arrays, not null.
	if body.UpcomingMovies == nil {
		t.Fatal("expected empty slice for upcoming movies")
	}
}

func TestBrowseShelfFailureDegradesToEmpty(t *testing.T) {
	gw := &fakeCatalogGateway{
		shelves: map[string][]models.CatalogItem{
			"trending-movies": {{ID: 1, Title: "A"}},
		},
		shelfErrs: map[string]error{
			"popular-movies": errors.New("upstream 500"),
		},
	}
	router := newCatalogRouter(gw)

	req := httptest.NewRequest(http.MethodGet, "/api/browse", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite shelf failure, got %d", rec.Code)
	}

	var body browseResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.PopularMovies) != 0 {
		t.Fatalf("expected failed shelf to be empty, got %+v", body.PopularMovies)
	}
	if len(body.TrendingMovies) != 1 {
		t.Fatalf("expected healthy shelf untouched, got %+v", body.TrendingMovies)
	}
}

func TestTrailerFound(t *testing.T) {
	router := newCatalogRouter(&fakeCatalogGateway{trailerKey: "abc123"})

	req := httptest.NewRequest(http.MethodGet, "/api/movies/42/trailer", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]*string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["trailer"] == nil || *body["trailer"] != "abc123" {
		t.Fatalf("expected trailer key, got %v", body["trailer"])
	}
}

func TestTrailerMissingAndFailedBothNull(t *testing.T) {
	for name, gw := range map[string]*fakeCatalogGateway{
		"no trailer":      {trailerKey: ""},
		"upstream failed": {trailerErr: errors.New("timeout")},
	} {
		router := newCatalogRouter(gw)

		req := httptest.NewRequest(http.MethodGet, "/api/movies/42/trailer", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", name, rec.Code)
		}
		var body map[string]*string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode body: %v", name, err)
		}
		if body["trailer"] != nil {
			t.Fatalf("%s: expected null trailer, got %v", name, *body["trailer"])
		}
	}
}
