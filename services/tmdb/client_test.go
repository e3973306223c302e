package tmdb

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(t *testing.T, fn roundTripFunc) *Client {
	t.Helper()
	return NewClient("http://tmdb.test/3", "test-key", &http.Client{Transport: fn})
}

func TestShelfReturnsResultsInUpstreamOrder(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/3/trending/movie/week" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if req.URL.Query().Get("api_key") != "test-key" {
			t.Fatalf("expected api_key param, got %q", req.URL.Query().Get("api_key"))
		}
		return jsonResponse(http.StatusOK, `{"page":1,"results":[{"id":3,"title":"C"},{"id":1,"title":"A"},{"id":2,"title":"B"}],"total_pages":1,"total_results":3}`), nil
	})

	items, err := client.TrendingMovies(context.Background())
	if err != nil {
		t.Fatalf("TrendingMovies failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != 3 || items[1].ID != 1 || items[2].ID != 2 {
		t.Fatalf("expected upstream order preserved, got %d,%d,%d", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestShelfUpstreamErrorSurfaces(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `{"status_message":"boom"}`), nil
	})

	if _, err := client.PopularShows(context.Background()); err == nil {
		t.Fatal("expected error on upstream 500")
	}
}

func TestShelfMalformedBodySurfaces(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results": not-json`), nil
	})

	if _, err := client.UpcomingMovies(context.Background()); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestShelfNullResultsBecomesEmptySlice(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"page":1,"total_pages":0,"total_results":0}`), nil
	})

	items, err := client.TopRatedMovies(context.Background())
	if err != nil {
		t.Fatalf("TopRatedMovies failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestSearchMoviesPassesQueryParams(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Get("query") != "dune" {
			t.Fatalf("expected query=dune, got %q", q.Get("query"))
		}
		if q.Get("page") != "2" {
			t.Fatalf("expected page=2, got %q", q.Get("page"))
		}
		if q.Get("include_adult") != "false" {
			t.Fatalf("expected include_adult=false, got %q", q.Get("include_adult"))
		}
		return jsonResponse(http.StatusOK, `{"page":2,"results":[{"id":9,"title":"Dune"}],"total_pages":5,"total_results":99}`), nil
	})

	page, err := client.SearchMovies(context.Background(), "dune", 2)
	if err != nil {
		t.Fatalf("SearchMovies failed: %v", err)
	}
	if page.Page != 2 || page.TotalPages != 5 || page.TotalResults != 99 {
		t.Fatalf("expected pass-through pagination, got %+v", page)
	}
}

func TestTrailerSelectsFirstYouTubeTrailer(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/3/movie/42/videos" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"results":[
			{"key":"clip1","site":"YouTube","type":"Clip"},
			{"key":"vimeo1","site":"Vimeo","type":"Trailer"},
			{"key":"main","site":"YouTube","type":"Trailer"},
			{"key":"second","site":"YouTube","type":"Trailer"}
		]}`), nil
	})

	key, err := client.Trailer(context.Background(), 42)
	if err != nil {
		t.Fatalf("Trailer failed: %v", err)
	}
	if key != "main" {
		t.Fatalf("expected first matching trailer 'main', got %q", key)
	}
}

func TestTrailerNoneMatching(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results":[{"key":"clip1","site":"YouTube","type":"Teaser"}]}`), nil
	})

	key, err := client.Trailer(context.Background(), 42)
	if err != nil {
		t.Fatalf("Trailer failed: %v", err)
	}
	if key != "" {
		t.Fatalf("expected empty key when no trailer matches, got %q", key)
	}
}
