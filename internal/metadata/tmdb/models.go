package tmdb

// PersonDetails is the TMDB person record, reduced to the fields the
// application consumes.
type PersonDetails struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Birthday     string  `json:"birthday"`
	Deathday     string  `json:"deathday"`
	PlaceOfBirth string  `json:"place_of_birth"`
	Biography    string  `json:"biography"`
	ProfilePath  *string `json:"profile_path"`
}

// MovieDetails is the TMDB movie record.
type MovieDetails struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
}

// MovieResult is a single movie search hit.
type MovieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
}

// SearchMoviesResponse is the paginated movie search envelope.
type SearchMoviesResponse struct {
	Page         int           `json:"page"`
	TotalResults int           `json:"total_results"`
	TotalPages   int           `json:"total_pages"`
	Results      []MovieResult `json:"results"`
}

// ErrorResponse is the TMDB API error envelope.
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
