package domain

import "errors"

// MinMovieYear is the year of the earliest surviving film.
const MinMovieYear = 1888

var ErrMovieNotFound = errors.New("movie not found")

// Movie is a catalog entry. ID is the store-native identifier; Seq is the
// secondary numeric identifier every store assigns as max+1.
type Movie struct {
	ID       string `json:"id"`
	Seq      int64  `json:"seq"`
	Title    string `json:"title"`
	Director string `json:"director"`
	Year     int    `json:"year"`
}

// MovieFields is a validated movie payload.
type MovieFields struct {
	Title    string
	Director string
	Year     int
}

// MoviePatch carries the fields of a partial update; nil means unchanged.
type MoviePatch struct {
	Title    *string
	Director *string
	Year     *int
}

// Fields returns the schema fields of m.
func (m *Movie) Fields() MovieFields {
	return MovieFields{Title: m.Title, Director: m.Director, Year: m.Year}
}

// Apply overlays p on f.
func (p MoviePatch) Apply(f MovieFields) MovieFields {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Director != nil {
		f.Director = *p.Director
	}
	if p.Year != nil {
		f.Year = *p.Year
	}
	return f
}

// MovieFilter narrows List. Zero values disable a criterion.
//   - Title, Director: case-insensitive substring
//   - Year: exact
type MovieFilter struct {
	Title    string
	Director string
	Year     int
}
