package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reelhouse/models"
)

// trailerSite is the only hosting site the trailer lookup accepts; the
// presentation layer embeds trailers through the YouTube player.
const trailerSite = "YouTube"

// Client is a minimal TMDB v3 client covering the browse shelves, search,
// and trailer lookup. Base URL and API key are injected at construction so
// tests can point it at a fake upstream.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient creates a TMDB client. A nil httpc gets a default client with a
// bounded timeout; TMDB calls are never retried.
func NewClient(baseURL, apiKey string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   httpc,
	}
}

type listResponse struct {
	Page         int                  `json:"page"`
	Results      []models.CatalogItem `json:"results"`
	TotalPages   int                  `json:"total_pages"`
	TotalResults int                  `json:"total_results"`
}

type videosResponse struct {
	Results []models.Video `json:"results"`
}

// get issues a GET to the given API path with the api_key credential and
// decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// shelf fetches a list endpoint and returns its results in upstream order.
func (c *Client) shelf(ctx context.Context, path string) ([]models.CatalogItem, error) {
	var body listResponse
	if err := c.get(ctx, path, nil, &body); err != nil {
		return nil, err
	}
	if body.Results == nil {
		return []models.CatalogItem{}, nil
	}
	return body.Results, nil
}

// TrendingMovies returns this week's trending movies.
func (c *Client) TrendingMovies(ctx context.Context) ([]models.CatalogItem, error) {
	return c.shelf(ctx, "/trending/movie/week")
}

// UpcomingMovies returns movies with upcoming releases.
func (c *Client) UpcomingMovies(ctx context.Context) ([]models.CatalogItem, error) {
	return c.shelf(ctx, "/movie/upcoming")
}

// PopularMovies returns currently popular movies.
func (c *Client) PopularMovies(ctx context.Context) ([]models.CatalogItem, error) {
	return c.shelf(ctx, "/movie/popular")
}

// TopRatedMovies returns top-rated movies.
func (c *Client) TopRatedMovies(ctx context.Context) ([]models.CatalogItem, error) {
	return c.shelf(ctx, "/movie/top_rated")
}

// TrendingShows returns this week's trending TV shows.
func (c *Client) TrendingShows(ctx context.Context) ([]models.CatalogItem, error) {
	return c.shelf(ctx, "/trending/tv/week")
}

// AiringTodayShows returns TV shows airing today.
func (c *Client) AiringTodayShows(ctx context.Context) ([]models.CatalogItem, error) {
	return c.shelf(ctx, "/tv/airing_today")
}

// OnTheAirShows returns TV shows currently on the air.
func (c *Client) OnTheAirShows(ctx context.Context) ([]models.CatalogItem, error) {
	return c.shelf(ctx, "/tv/on_the_air")
}

// PopularShows returns currently popular TV shows.
func (c *Client) PopularShows(ctx context.Context) ([]models.CatalogItem, error) {
	return c.shelf(ctx, "/tv/popular")
}

// TopRatedShows returns top-rated TV shows.
func (c *Client) TopRatedShows(ctx context.Context) ([]models.CatalogItem, error) {
	return c.shelf(ctx, "/tv/top_rated")
}

// searchPage fetches a paginated endpoint and returns the page verbatim.
func (c *Client) searchPage(ctx context.Context, path string, params url.Values) (models.SearchPage, error) {
	var body listResponse
	if err := c.get(ctx, path, params, &body); err != nil {
		return models.SearchPage{}, err
	}
	results := body.Results
	if results == nil {
		results = []models.CatalogItem{}
	}
	return models.SearchPage{
		Page:         body.Page,
		Results:      results,
		TotalPages:   body.TotalPages,
		TotalResults: body.TotalResults,
	}, nil
}

func searchParams(query string, page int) url.Values {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")
	return params
}

// SearchMovies searches movie titles.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (models.SearchPage, error) {
	return c.searchPage(ctx, "/search/movie", searchParams(query, page))
}

// SearchShows searches TV show titles.
func (c *Client) SearchShows(ctx context.Context, query string, page int) (models.SearchPage, error) {
	return c.searchPage(ctx, "/search/tv", searchParams(query, page))
}

// SearchMulti searches across movies, shows, and people. Results come back
// unfiltered; the search service discards person entries.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (models.SearchPage, error) {
	return c.searchPage(ctx, "/search/multi", searchParams(query, page))
}

// TrendingAll returns the day window of trending content across all media
// types, person entries included.
func (c *Client) TrendingAll(ctx context.Context) (models.SearchPage, error) {
	return c.searchPage(ctx, "/trending/all/day", nil)
}

// Trailer returns the video key of the first YouTube-hosted trailer for the
// movie, or "" when the movie has no matching video. Only a failed upstream
// call is an error; a missing trailer is a normal outcome.
func (c *Client) Trailer(ctx context.Context, movieID int64) (string, error) {
	var body videosResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", movieID), nil, &body); err != nil {
		return "", err
	}
	for _, video := range body.Results {
		if video.Type == "Trailer" && video.Site == trailerSite {
			return video.Key, nil
		}
	}
	return "", nil
}
