package relation

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/lecturia/bookgraph/pkg/graph"
	"github.com/lecturia/bookgraph/pkg/models"
)

var validate = validator.New()

// relationMap maps the API relation name to its edge type
var relationMap = map[string]models.RelationshipKind{
	"autoria":       models.RelWrote,
	"membresia":     models.RelBelongsTo,
	"lectura":       models.RelReads,
	"recomendacion": models.RelRecommends,
}

// CreateRequest is the body of POST /relaciones/:tipo. Endpoints may be
// numeric ids or natural-key strings.
type CreateRequest struct {
	From any   `json:"from" validate:"required"`
	To   []any `json:"to" validate:"required,min=1"`
}

// Handler serves the relationship routes
type Handler struct {
	service *graph.RelationshipService
}

// NewHandler creates a new relation handler
func NewHandler(service *graph.RelationshipService) *Handler {
	return &Handler{service: service}
}

// Register registers relationship routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("/:tipo", h.Create)
}

func (h *Handler) relationshipService(ctx context.Context) (context.Context, *graph.RelationshipService, error) {
	if h.service != nil {
		return ctx, h.service, nil
	}
	return ectoinject.GetContext[*graph.RelationshipService](ctx)
}

// Create creates one or more relationships from a single source node
func (h *Handler) Create(c echo.Context) error {
	tipo := c.Param("tipo")
	kind, ok := relationMap[tipo]
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "Tipo de relación no válido.")
	}

	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "Datos incompletos para crear la relación.")
	}
	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "Datos incompletos para crear la relación.")
	}

	ctx, service, err := h.relationshipService(c.Request().Context())
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "La base de datos no está disponible.")
	}

	if err := service.Relate(ctx, kind, req.From, req.To); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "Error interno al crear las relaciones.")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Relaciones creadas exitosamente.",
	})
}
