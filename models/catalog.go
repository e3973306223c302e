package models

// CatalogItem is a single movie or TV show as returned by the upstream
// metadata API. Items are transient: they are reshaped and served but never
// persisted as-is. Identity is the upstream numeric ID plus the media type.
type CatalogItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	MediaType    string  `json:"media_type,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
}

// SearchPage is one page of catalog results. All search and trending
// operations return this shape, including the zeroed form served for empty
// queries and upstream failures.
type SearchPage struct {
	Page         int           `json:"page"`
	Results      []CatalogItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// EmptySearchPage returns the canonical empty result set: no items, zero
// totals, page pinned to 1.
func EmptySearchPage() SearchPage {
	return SearchPage{Page: 1, Results: []CatalogItem{}}
}

// Video is an entry from the upstream video list for a movie.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}
