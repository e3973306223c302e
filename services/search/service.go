package search

import (
	"context"
	"log"
	"strings"

	"reelhouse/models"
	"reelhouse/services/tmdb"
)

// gateway is the slice of the TMDB client the aggregator needs.
type gateway interface {
	SearchMovies(ctx context.Context, query string, page int) (models.SearchPage, error)
	SearchShows(ctx context.Context, query string, page int) (models.SearchPage, error)
	SearchMulti(ctx context.Context, query string, page int) (models.SearchPage, error)
	TrendingAll(ctx context.Context) (models.SearchPage, error)
}

var _ gateway = (*tmdb.Client)(nil)

// Service aggregates catalog search over the TMDB gateway. Upstream failure
// is indistinguishable from "no results" to callers: every operation degrades
// to the zeroed empty page and the failure is only logged here.
type Service struct {
	gateway gateway
}

// NewService creates a search service over the given gateway.
func NewService(gw gateway) *Service {
	return &Service{gateway: gw}
}

// SearchMovies searches movie titles. The upstream page passes through
// verbatim on success.
func (s *Service) SearchMovies(ctx context.Context, query string, page int) models.SearchPage {
	if strings.TrimSpace(query) == "" {
		return models.EmptySearchPage()
	}

	result, err := s.gateway.SearchMovies(ctx, query, normalizePage(page))
	if err != nil {
		log.Printf("[search] movie search failed query=%q: %v", query, err)
		return models.EmptySearchPage()
	}
	return result
}

// SearchShows searches TV show titles.
func (s *Service) SearchShows(ctx context.Context, query string, page int) models.SearchPage {
	if strings.TrimSpace(query) == "" {
		return models.EmptySearchPage()
	}

	result, err := s.gateway.SearchShows(ctx, query, normalizePage(page))
	if err != nil {
		log.Printf("[search] tv search failed query=%q: %v", query, err)
		return models.EmptySearchPage()
	}
	return result
}

// SearchMulti searches across movies and shows, discarding person entries
// from the upstream results. total_results is recomputed from the filtered
// set while total_pages passes through from upstream, so the two can
// disagree on pages that contained person entries.
func (s *Service) SearchMulti(ctx context.Context, query string, page int) models.SearchPage {
	if strings.TrimSpace(query) == "" {
		return models.EmptySearchPage()
	}

	result, err := s.gateway.SearchMulti(ctx, query, normalizePage(page))
	if err != nil {
		log.Printf("[search] multi search failed query=%q: %v", query, err)
		return models.EmptySearchPage()
	}
	return filterPeople(result)
}

// TrendingContent returns the day window of trending movies and shows,
// person entries removed. It serves as the default view when no query is
// present.
func (s *Service) TrendingContent(ctx context.Context) models.SearchPage {
	result, err := s.gateway.TrendingAll(ctx)
	if err != nil {
		log.Printf("[search] trending content failed: %v", err)
		return models.EmptySearchPage()
	}
	return filterPeople(result)
}

// filterPeople keeps only movie and tv entries and recomputes total_results
// from the filtered set. Page and total_pages pass through untouched.
func filterPeople(page models.SearchPage) models.SearchPage {
	filtered := make([]models.CatalogItem, 0, len(page.Results))
	for _, item := range page.Results {
		if item.MediaType == "movie" || item.MediaType == "tv" {
			filtered = append(filtered, item)
		}
	}
	page.Results = filtered
	page.TotalResults = len(filtered)
	return page
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
