package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"reelhouse/models"
	"reelhouse/services/search"
)

type searchService interface {
	SearchMovies(ctx context.Context, query string, page int) models.SearchPage
	SearchShows(ctx context.Context, query string, page int) models.SearchPage
	SearchMulti(ctx context.Context, query string, page int) models.SearchPage
	TrendingContent(ctx context.Context) models.SearchPage
}

var _ searchService = (*search.Service)(nil)

// SearchHandler serves the search page data: typed search results when a
// query is present, day-window trending content otherwise.
type SearchHandler struct {
	Service searchService
}

func NewSearchHandler(service searchService) *SearchHandler {
	return &SearchHandler{Service: service}
}

// Register mounts the search route on the router.
func (h *SearchHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/search", h.Search).Methods(http.MethodGet)
}

type searchResponse struct {
	Query           string               `json:"query"`
	Type            string               `json:"type"`
	Results         []models.CatalogItem `json:"results"`
	TotalPages      int                  `json:"total_pages"`
	TotalResults    int                  `json:"total_results"`
	Page            int                  `json:"page"`
	TrendingContent []models.CatalogItem `json:"trending_content"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")
	searchType := r.URL.Query().Get("type")
	if searchType == "" {
		searchType = "all"
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	resp := searchResponse{
		Query:           query,
		Type:            searchType,
		Results:         []models.CatalogItem{},
		Page:            1,
		TrendingContent: []models.CatalogItem{},
	}

	// No query: serve trending content as the default view.
	if strings.TrimSpace(query) == "" {
		resp.TrendingContent = h.Service.TrendingContent(ctx).Results
		writeJSON(w, http.StatusOK, resp)
		return
	}

	var result models.SearchPage
	switch searchType {
	case "movie":
		result = h.Service.SearchMovies(ctx, query, page)
	case "tv":
		result = h.Service.SearchShows(ctx, query, page)
	default:
		result = h.Service.SearchMulti(ctx, query, page)
	}

	resp.Results = result.Results
	resp.TotalPages = result.TotalPages
	resp.TotalResults = result.TotalResults
	resp.Page = result.Page
	writeJSON(w, http.StatusOK, resp)
}
