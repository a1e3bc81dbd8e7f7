package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/weekly-exercises/catalog-api/internal/api/metrics"
	"github.com/weekly-exercises/catalog-api/internal/core/domain"
	"github.com/weekly-exercises/catalog-api/internal/core/ports"
)

const movieResource = "movies"

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

// List handles GET /movies.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Param        title     query     string  false  "Case-insensitive title substring"
// @Param        director  query     string  false  "Case-insensitive director substring"
// @Param        year      query     int     false  "Exact release year"
// @Success      200       {array}   domain.Movie
// @Failure      400       {object}  validationErrorResponse
// @Router       /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	q := movieQuery{
		Title:    c.QueryParam("title"),
		Director: c.QueryParam("director"),
	}
	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return domain.NewValidationError("year", "year must be an integer")
		}
		q.Year = year
	}

	movies, err := h.service.List(c.Request().Context(), domain.MovieFilter{
		Title:    q.Title,
		Director: q.Director,
		Year:     q.Year,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movies)
}

// Get handles GET /movies/:id.
//
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "ObjectID or numeric id"
// @Success      200  {object}  domain.Movie
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	m, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /movies.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string        false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      movieRequest  true   "Movie"
// @Success      201              {object}  domain.Movie
// @Failure      400              {object}  validationErrorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Router       /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieRequest
	if err := bindBody(c, movieResource, &req); err != nil {
		return err
	}

	m, err := h.service.Create(c.Request().Context(), ports.CreateMovieInput{
		Fields:         req.fields(),
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues(movieResource, "create").Inc()
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /movies/:id.
//
// @Summary      Replace a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "ObjectID or numeric id"
// @Param        body  body      movieRequest  true  "Movie"
// @Success      200   {object}  domain.Movie
// @Failure      400   {object}  validationErrorResponse
// @Failure      404   {object}  errorResponse
// @Router       /movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	var req movieRequest
	if err := bindBody(c, movieResource, &req); err != nil {
		return err
	}

	m, err := h.service.Update(c.Request().Context(), c.Param("id"), req.fields())
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues(movieResource, "update").Inc()
	return c.JSON(http.StatusOK, m)
}

// Patch handles PATCH /movies/:id.
//
// @Summary      Partially update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "ObjectID or numeric id"
// @Param        body  body      moviePatchRequest  true  "Fields to change"
// @Success      200   {object}  domain.Movie
// @Failure      400   {object}  validationErrorResponse
// @Failure      404   {object}  errorResponse
// @Router       /movies/{id} [patch]
func (h *MovieHandler) Patch(c echo.Context) error {
	var req moviePatchRequest
	if err := bindBody(c, movieResource, &req); err != nil {
		return err
	}

	m, err := h.service.Patch(c.Request().Context(), c.Param("id"), req.patch())
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues(movieResource, "patch").Inc()
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /movies/:id.
//
// @Summary      Delete a movie
// @Tags         movies
// @Security     BearerAuth
// @Param        id   path  string  true  "ObjectID or numeric id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues(movieResource, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
