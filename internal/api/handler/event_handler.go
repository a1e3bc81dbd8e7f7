package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weekly-exercises/catalog-api/internal/api/metrics"
	"github.com/weekly-exercises/catalog-api/internal/core/domain"
	"github.com/weekly-exercises/catalog-api/internal/core/ports"
)

const eventResource = "events"

// EventHandler handles the event calendar. All routes sit behind Auth.
type EventHandler struct {
	service ports.EventService
}

// NewEventHandler creates an EventHandler backed by the given service.
func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// List handles GET /events. Events come back ordered by date.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        type   query     string  false  "meeting, birthday, exam or other"
// @Param        title  query     string  false  "Case-insensitive title substring"
// @Param        date   query     string  false  "Day (YYYY-MM-DD) the event falls on"
// @Success      200    {array}   domain.Event
// @Failure      400    {object}  validationErrorResponse
// @Failure      401    {object}  errorResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	q := eventQuery{
		Type:  c.QueryParam("type"),
		Title: c.QueryParam("title"),
		Date:  c.QueryParam("date"),
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	filter := domain.EventFilter{Type: domain.EventType(q.Type), Title: q.Title}
	if q.Date != "" {
		filter.Day, _ = parseISODate(q.Date)
	}

	events, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ObjectID or numeric id"
// @Success      200  {object}  domain.Event
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	ev, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ev)
}

// Create handles POST /events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string        false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      eventRequest  true   "Event"
// @Success      201              {object}  domain.Event
// @Failure      400              {object}  validationErrorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req eventRequest
	if err := bindBody(c, eventResource, &req); err != nil {
		return err
	}

	ev, err := h.service.Create(c.Request().Context(), ports.CreateEventInput{
		Fields:         req.fields(),
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues(eventResource, "create").Inc()
	return c.JSON(http.StatusCreated, ev)
}

// Update handles PUT /events/:id.
//
// @Summary      Replace an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "ObjectID or numeric id"
// @Param        body  body      eventRequest  true  "Event"
// @Success      200   {object}  domain.Event
// @Failure      400   {object}  validationErrorResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req eventRequest
	if err := bindBody(c, eventResource, &req); err != nil {
		return err
	}

	ev, err := h.service.Update(c.Request().Context(), c.Param("id"), req.fields())
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues(eventResource, "update").Inc()
	return c.JSON(http.StatusOK, ev)
}

// Patch handles PATCH /events/:id.
//
// @Summary      Partially update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "ObjectID or numeric id"
// @Param        body  body      eventPatchRequest  true  "Fields to change"
// @Success      200   {object}  domain.Event
// @Failure      400   {object}  validationErrorResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{id} [patch]
func (h *EventHandler) Patch(c echo.Context) error {
	var req eventPatchRequest
	if err := bindBody(c, eventResource, &req); err != nil {
		return err
	}

	ev, err := h.service.Patch(c.Request().Context(), c.Param("id"), req.patch())
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues(eventResource, "patch").Inc()
	return c.JSON(http.StatusOK, ev)
}

// Delete handles DELETE /events/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Security     BearerAuth
// @Param        id   path  string  true  "ObjectID or numeric id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues(eventResource, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
