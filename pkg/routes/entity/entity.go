package entity

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/lecturia/bookgraph/pkg/graph"
	"github.com/lecturia/bookgraph/pkg/models"
)

// entityMap maps the plural URL segment to its node label
var entityMap = map[string]models.EntityKind{
	"personas": models.KindPerson,
	"autores":  models.KindAuthor,
	"libros":   models.KindBook,
	"clubes":   models.KindClub,
}

// Handler serves the entity CRUD routes
type Handler struct {
	service *graph.EntityService
}

// NewHandler creates a new entity handler
func NewHandler(service *graph.EntityService) *Handler {
	return &Handler{service: service}
}

// Register registers entity CRUD routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("/:plural", h.List)
	g.POST("/:plural", h.Add)
	g.PUT("/:plural/:identifier", h.Update)
}

func (h *Handler) entityService(ctx context.Context) (context.Context, *graph.EntityService, error) {
	if h.service != nil {
		return ctx, h.service, nil
	}
	return ectoinject.GetContext[*graph.EntityService](ctx)
}

func kindFromParam(c echo.Context) (models.EntityKind, error) {
	plural := c.Param("plural")
	kind, ok := entityMap[strings.ToLower(plural)]
	if !ok {
		return "", httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("La entidad '%s' no es válida.", plural))
	}
	return kind, nil
}

// List returns all nodes of the requested entity
func (h *Handler) List(c echo.Context) error {
	kind, err := kindFromParam(c)
	if err != nil {
		return err
	}

	ctx, service, err := h.entityService(c.Request().Context())
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "La base de datos no está disponible.")
	}

	nodes, err := service.List(ctx, kind)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Error interno al obtener %ss", strings.ToLower(string(kind))))
	}

	return c.JSON(http.StatusOK, nodes)
}

// Add creates a new node, assigning the next numeric id when absent
func (h *Handler) Add(c echo.Context) error {
	kind, err := kindFromParam(c)
	if err != nil {
		return err
	}

	var data map[string]any
	if err := (&echo.DefaultBinder{}).BindBody(c, &data); err != nil || len(data) == 0 {
		return httperror.NewHTTPError(http.StatusBadRequest, "No se proporcionaron datos.")
	}

	ctx, service, err := h.entityService(c.Request().Context())
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "La base de datos no está disponible.")
	}

	if err := service.Add(ctx, kind, data); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Error interno al agregar %s", strings.ToLower(string(kind))))
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("%s agregado correctamente.", kind),
	})
}

// Update modifies an existing node matched by identifier
func (h *Handler) Update(c echo.Context) error {
	kind, err := kindFromParam(c)
	if err != nil {
		return err
	}

	identifier := c.Param("identifier")

	var data map[string]any
	if err := (&echo.DefaultBinder{}).BindBody(c, &data); err != nil || len(data) == 0 {
		return httperror.NewHTTPError(http.StatusBadRequest, "No se proporcionaron datos para actualizar.")
	}

	ctx, service, err := h.entityService(c.Request().Context())
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "La base de datos no está disponible.")
	}

	if err := service.Update(ctx, kind, identifier, data); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Error interno al actualizar %s", strings.ToLower(string(kind))))
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s actualizado correctamente.", kind),
	})
}
