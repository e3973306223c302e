package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sourcegraph/conc/pool"

	"reelhouse/models"
	"reelhouse/services/tmdb"
)

type catalogGateway interface {
	TrendingMovies(ctx context.Context) ([]models.CatalogItem, error)
	UpcomingMovies(ctx context.Context) ([]models.CatalogItem, error)
	PopularMovies(ctx context.Context) ([]models.CatalogItem, error)
	TopRatedMovies(ctx context.Context) ([]models.CatalogItem, error)
	TrendingShows(ctx context.Context) ([]models.CatalogItem, error)
	AiringTodayShows(ctx context.Context) ([]models.CatalogItem, error)
	OnTheAirShows(ctx context.Context) ([]models.CatalogItem, error)
	PopularShows(ctx context.Context) ([]models.CatalogItem, error)
	TopRatedShows(ctx context.Context) ([]models.CatalogItem, error)
	Trailer(ctx context.Context, movieID int64) (string, error)
}

var _ catalogGateway = (*tmdb.Client)(nil)

// CatalogHandler serves the browse shelves and trailer lookup. Upstream
// failure never reaches the caller: a failed shelf renders as empty and a
// failed trailer lookup as null, logged here at the boundary.
type CatalogHandler struct {
	Gateway catalogGateway
}

func NewCatalogHandler(gateway catalogGateway) *CatalogHandler {
	return &CatalogHandler{Gateway: gateway}
}

// Register mounts the catalog routes on the router.
func (h *CatalogHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/browse", h.Browse).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/{movieID}/trailer", h.Trailer).Methods(http.MethodGet)
}

type browseResponse struct {
	TrendingMovies   []models.CatalogItem `json:"trending_movies"`
	UpcomingMovies   []models.CatalogItem `json:"upcoming_movies"`
	PopularMovies    []models.CatalogItem `json:"popular_movies"`
	TopRatedMovies   []models.CatalogItem `json:"top_rated_movies"`
	TrendingShows    []models.CatalogItem `json:"trending_shows"`
	AiringTodayShows []models.CatalogItem `json:"airing_today_shows"`
	OnTheAirShows    []models.CatalogItem `json:"on_the_air_shows"`
	PopularShows     []models.CatalogItem `json:"popular_shows"`
	TopRatedShows    []models.CatalogItem `json:"top_rated_shows"`
}

// Browse fans out to every shelf concurrently and assembles the home page
// payload. Each shelf degrades independently: one upstream failure empties
// that shelf without touching the others.
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var resp browseResponse

	shelves := []struct {
		name  string
		fetch func(context.Context) ([]models.CatalogItem, error)
		dest  *[]models.CatalogItem
	}{
		{"trending-movies", h.Gateway.TrendingMovies, &resp.TrendingMovies},
		{"upcoming-movies", h.Gateway.UpcomingMovies, &resp.UpcomingMovies},
		{"popular-movies", h.Gateway.PopularMovies, &resp.PopularMovies},
		{"top-rated-movies", h.Gateway.TopRatedMovies, &resp.TopRatedMovies},
		{"trending-shows", h.Gateway.TrendingShows, &resp.TrendingShows},
		{"airing-today-shows", h.Gateway.AiringTodayShows, &resp.AiringTodayShows},
		{"on-the-air-shows", h.Gateway.OnTheAirShows, &resp.OnTheAirShows},
		{"popular-shows", h.Gateway.PopularShows, &resp.PopularShows},
		{"top-rated-shows", h.Gateway.TopRatedShows, &resp.TopRatedShows},
	}

	workers := pool.New().WithMaxGoroutines(4)
	for i := range shelves {
		shelf := shelves[i]
		workers.Go(func() {
			items, err := shelf.fetch(ctx)
			if err != nil {
				log.Printf("[catalog] shelf %s unavailable: %v", shelf.name, err)
				items = []models.CatalogItem{}
			}
			*shelf.dest = items
		})
	}
	workers.Wait()

	writeJSON(w, http.StatusOK, resp)
}

// Trailer responds with the movie's YouTube trailer key, or null when the
// movie has no trailer or the lookup failed.
func (h *CatalogHandler) Trailer(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(r, "movieID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid movie id"})
		return
	}

	key, err := h.Gateway.Trailer(r.Context(), movieID)
	if err != nil {
		log.Printf("[catalog] trailer lookup failed movie=%d: %v", movieID, err)
		key = ""
	}

	var trailer *string
	if key != "" {
		trailer = &key
	}
	writeJSON(w, http.StatusOK, map[string]*string{"trailer": trailer})
}
