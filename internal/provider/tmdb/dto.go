package tmdb

// pagedResponse is the envelope TMDB wraps every listing in.
type pagedResponse struct {
	Page       int     `json:"page"`
	Results    []Title `json:"results"`
	TotalPages int     `json:"total_pages"`
}

// Title is the raw shape shared by movie, TV and multi-search entries.
// Movies carry "title"/"release_date", shows carry "name"/"first_air_date".
type Title struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	MediaType    string  `json:"media_type"`
	Popularity   float64 `json:"popularity"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	GenreIDs     []int   `json:"genre_ids"`
}

// Credit is one crew entry of a person's movie credits.
type Credit struct {
	Title
	Job string `json:"job"`
}

type creditsResponse struct {
	Crew []Credit `json:"crew"`
}

type genreEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreListResponse struct {
	Genres []genreEntry `json:"genres"`
}
