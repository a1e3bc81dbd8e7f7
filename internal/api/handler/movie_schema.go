package handler

import "github.com/weekly-exercises/catalog-api/internal/core/domain"

type movieRequest struct {
	Title    string `json:"title"    validate:"required,max=100"`
	Director string `json:"director" validate:"required,max=100"`
	// Year is a pointer so that a year sent as 0 fails the bound, not required.
	Year *int `json:"year" validate:"required,movieyear"`
}

// fields must only be called on a validated request.
func (r movieRequest) fields() domain.MovieFields {
	return domain.MovieFields{Title: r.Title, Director: r.Director, Year: *r.Year}
}

type moviePatchRequest struct {
	Title    *string `json:"title"    validate:"omitempty,min=1,max=100"`
	Director *string `json:"director" validate:"omitempty,min=1,max=100"`
	Year     *int    `json:"year"     validate:"omitempty,movieyear"`
}

func (moviePatchRequest) partial() {}

func (r moviePatchRequest) patch() domain.MoviePatch {
	return domain.MoviePatch{Title: r.Title, Director: r.Director, Year: r.Year}
}

type movieQuery struct {
	Title    string `json:"title"`
	Director string `json:"director"`
	Year     int    `json:"year"`
}
