// Package consulta exposes the canned analytical queries.
package consulta

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/lecturia/bookgraph/pkg/graph"
)

// Handler serves the query routes
type Handler struct {
	service *graph.QueryService
}

// NewHandler creates a new consulta handler
func NewHandler(service *graph.QueryService) *Handler {
	return &Handler{service: service}
}

// Register registers the query routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("/libros-leidos", h.BooksRead)
	g.GET("/personas-club", h.ClubMembers)
	g.GET("/personas-mas-libros", h.AvidClubReaders)
	g.GET("/personas-mas-clubes", h.MultiClubMembers)
	g.GET("/libros-populares", h.PopularBooks)
}

func (h *Handler) queryService(ctx context.Context) (context.Context, *graph.QueryService, error) {
	if h.service != nil {
		return ctx, h.service, nil
	}
	return ectoinject.GetContext[*graph.QueryService](ctx)
}

// BooksRead returns the books read by a given person
func (h *Handler) BooksRead(c echo.Context) error {
	persona := c.QueryParam("persona")
	if persona == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "El parámetro 'persona' es requerido.")
	}

	ctx, service, err := h.queryService(c.Request().Context())
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "La base de datos no está disponible.")
	}

	result, err := service.BooksReadBy(ctx, persona)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "Error al procesar la consulta.")
	}
	return c.JSON(http.StatusOK, result)
}

// ClubMembers returns the members of a given club
func (h *Handler) ClubMembers(c echo.Context) error {
	club := c.QueryParam("club")
	if club == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "El parámetro 'club' es requerido.")
	}

	ctx, service, err := h.queryService(c.Request().Context())
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "La base de datos no está disponible.")
	}

	result, err := service.ClubMembers(ctx, club)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "Error al procesar la consulta.")
	}
	return c.JSON(http.StatusOK, result)
}

// AvidClubReaders returns people who read three or more books recommended by
// a club they belong to
func (h *Handler) AvidClubReaders(c echo.Context) error {
	ctx, service, err := h.queryService(c.Request().Context())
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "La base de datos no está disponible.")
	}

	result, err := service.AvidClubReaders(ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "Error al procesar la consulta.")
	}
	return c.JSON(http.StatusOK, result)
}

// MultiClubMembers returns people who belong to more than one club
func (h *Handler) MultiClubMembers(c echo.Context) error {
	ctx, service, err := h.queryService(c.Request().Context())
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "La base de datos no está disponible.")
	}

	result, err := service.MultiClubMembers(ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "Error al procesar la consulta.")
	}
	return c.JSON(http.StatusOK, result)
}

// PopularBooks returns the three most read books
func (h *Handler) PopularBooks(c echo.Context) error {
	ctx, service, err := h.queryService(c.Request().Context())
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "La base de datos no está disponible.")
	}

	result, err := service.PopularBooks(ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "Error al procesar la consulta.")
	}
	return c.JSON(http.StatusOK, result)
}
