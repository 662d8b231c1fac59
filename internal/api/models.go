package api

// User identifies an authenticated account. Absence means anonymous.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Genre is a movie genre tag.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Person is a director or cast member as embedded in a movie payload.
// Character is set only for cast members. ProfileURL is resolved
// client-side and never comes from the primary API.
type Person struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Character  string `json:"character,omitempty"`
	ProfileURL string `json:"-"`
}

// FullName returns "First Last".
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// MovieOscarWin is an Academy Award attached to a movie.
type MovieOscarWin struct {
	ID       int     `json:"id"`
	Category string  `json:"category"`
	Year     int     `json:"year"`
	Ceremony int     `json:"ceremony"`
	Person   *Person `json:"person,omitempty"`
}

// PersonOscarWin is an Academy Award attached to a person.
type PersonOscarWin struct {
	ID         int    `json:"id"`
	MovieID    int    `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	Category   string `json:"category"`
	Year       int    `json:"year"`
	Ceremony   int    `json:"ceremony"`
}

// Movie is the aggregate movie record. List/search payloads omit the
// detail-only fields (tagline, budget, revenue, oscar wins). PosterURL
// is a derived, client-resolved field.
type Movie struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	ReleaseYear int             `json:"release_year"`
	Runtime     int             `json:"runtime"`
	Genres      []Genre         `json:"genres"`
	Directors   []Person        `json:"directors"`
	Actors      []Person        `json:"actors"`
	Overview    string          `json:"overview"`
	Tagline     string          `json:"tagline,omitempty"`
	Budget      int64           `json:"budget,omitempty"`
	Revenue     int64           `json:"revenue,omitempty"`
	OscarWins   []MovieOscarWin `json:"movie_oscar_wins,omitempty"`
	PosterURL   string          `json:"-"`
}

// MoviePage is one page of movie results plus the total match count.
type MoviePage struct {
	Items []Movie `json:"items"`
	Count int     `json:"count"`
}

// FilmographyEntry is a movie a person acted in or directed.
type FilmographyEntry struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"release_year"`
	PosterURL   string `json:"-"`
}

// PersonDetails is the aggregate person record. Deathday is supplemented
// from the metadata service, not the primary API.
type PersonDetails struct {
	ID           int                `json:"id"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	Birthday     string             `json:"birthday"`
	Deathday     string             `json:"deathday,omitempty"`
	PlaceOfBirth string             `json:"place_of_birth"`
	Biography    string             `json:"biography"`
	OscarWins    []PersonOscarWin   `json:"oscar_wins"`
	Filmography  []FilmographyEntry `json:"filmography"`
	ProfileURL   string             `json:"-"`
}

// FullName returns "First Last".
func (p PersonDetails) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Comment is a user review on a movie. Timestamps are server-local
// "2006-01-02 15:04:05" strings.
type Comment struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Text      string `json:"comment"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Edited reports whether the comment was changed after posting.
func (c Comment) Edited() bool {
	return c.UpdatedAt != c.CreatedAt
}

// Rating is one user's score for one movie, an integer in [0,5].
type Rating struct {
	ID     int `json:"id"`
	UserID int `json:"user"`
	Value  int `json:"rating"`
}

// MovieListSummary is a list as returned by the per-profile index.
type MovieListSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Edited reports whether the list was changed after creation.
func (l MovieListSummary) Edited() bool {
	return l.UpdatedAt != l.CreatedAt
}

// ListMovie is a movie as embedded in a list payload.
type ListMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseYear int     `json:"release_year"`
	Runtime     int     `json:"runtime"`
	Genres      []Genre `json:"genres"`
	Overview    string  `json:"overview"`
	PosterURL   string  `json:"-"`
}

// MovieList is a full list aggregate including its owner and members.
// Only the owner may mutate membership or metadata.
type MovieList struct {
	ID          int         `json:"id"`
	Owner       User        `json:"user"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Movies      []ListMovie `json:"movies"`
}

// RecommendedMovie is a similar-movies recommendation entry.
type RecommendedMovie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"release_year"`
	PosterURL   string `json:"-"`
}

// PredictedMovie is a personal recommendation with an estimated score.
type PredictedMovie struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	ReleaseYear     int     `json:"release_year"`
	EstimatedRating float64 `json:"estimated_rating"`
	PosterURL       string  `json:"-"`
}

// Profile is the public profile record for a user.
type Profile struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfilePicture string `json:"profile_picture"`
	DateJoined     string `json:"date_joined"`
	Bio            string `json:"bio"`
}

// ProfileUpdate carries the editable profile fields. Password fields are
// submitted together; the server validates the triple.
type ProfileUpdate struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Bio               string `json:"bio"`
	CurrentPassword   string `json:"current_password"`
	NewPassword       string `json:"new_password"`
	NewPasswordRepeat string `json:"new_password_repeat"`
}
