package admin

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/lecturia/bookgraph/internal/repositories/ingestlog"
)

// WithAuditLog enables the batch history endpoints backed by the audit store
func (h *Handler) WithAuditLog(repo *ingestlog.Repository) *Handler {
	h.audit = repo
	return h
}

func (h *Handler) registerAuditRoutes(g *echo.Group) {
	g.GET("/lotes", h.ListBatches)
	g.GET("/lotes/:id", h.GetBatch)
}

// ListBatches returns stored ingestion batch reports, newest first
func (h *Handler) ListBatches(c echo.Context) error {
	if h.audit == nil {
		return httperror.NewHTTPError(http.StatusNotFound, "El historial de cargas no está habilitado.")
	}

	page := intQueryParam(c, "page", 1)
	pageSize := intQueryParam(c, "page_size", 20)

	records, err := h.audit.List(c.Request().Context(), page, pageSize)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "Error al consultar el historial de cargas.")
	}

	return c.JSON(http.StatusOK, records)
}

// GetBatch returns one stored batch report by batch ID
func (h *Handler) GetBatch(c echo.Context) error {
	if h.audit == nil {
		return httperror.NewHTTPError(http.StatusNotFound, "El historial de cargas no está habilitado.")
	}

	record, err := h.audit.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "Error al consultar el historial de cargas.")
	}
	if record == nil {
		return httperror.NewHTTPError(http.StatusNotFound, "Lote no encontrado.")
	}

	return c.JSON(http.StatusOK, record)
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
