package handler

import (
	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

type eventRequest struct {
	Title    string `json:"title"    validate:"required,max=200"`
	Date     string `json:"date"     validate:"required,isodate"`
	Location string `json:"location" validate:"required,max=200"`
	Type     string `json:"type"     validate:"required,oneof=meeting birthday exam other"`
}

// fields must only be called on a validated request.
func (r eventRequest) fields() domain.EventFields {
	date, _ := parseISODate(r.Date)
	return domain.EventFields{
		Title:    r.Title,
		Date:     date,
		Location: r.Location,
		Type:     domain.EventType(r.Type),
	}
}

type eventPatchRequest struct {
	Title    *string `json:"title"    validate:"omitempty,min=1,max=200"`
	Date     *string `json:"date"     validate:"omitempty,isodate"`
	Location *string `json:"location" validate:"omitempty,min=1,max=200"`
	Type     *string `json:"type"     validate:"omitempty,oneof=meeting birthday exam other"`
}

func (eventPatchRequest) partial() {}

func (r eventPatchRequest) patch() domain.EventPatch {
	p := domain.EventPatch{Title: r.Title, Location: r.Location}
	if r.Date != nil {
		date, _ := parseISODate(*r.Date)
		p.Date = &date
	}
	if r.Type != nil {
		t := domain.EventType(*r.Type)
		p.Type = &t
	}
	return p
}

type eventQuery struct {
	Type  string `json:"type"  query:"type"  validate:"omitempty,oneof=meeting birthday exam other"`
	Title string `json:"title" query:"title"`
	Date  string `json:"date"  query:"date"  validate:"omitempty,isodate"`
}
