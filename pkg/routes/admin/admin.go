// Package admin exposes the bulk data loading endpoints.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/lecturia/bookgraph/internal/repositories/ingestlog"
	"github.com/lecturia/bookgraph/pkg/graph"
	"github.com/lecturia/bookgraph/pkg/ingest"
)

// Handler serves the admin routes
type Handler struct {
	seed     *graph.SeedService
	pipeline *ingest.Pipeline
	audit    *ingestlog.Repository
}

// NewHandler creates a new admin handler
func NewHandler(seed *graph.SeedService, pipeline *ingest.Pipeline) *Handler {
	return &Handler{
		seed:     seed,
		pipeline: pipeline,
	}
}

// Register registers the admin routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("/cargar-datos", h.LoadInitialData)
	g.POST("/cargar-datos-manual", h.LoadManualData)
	h.registerAuditRoutes(g)
}

func (h *Handler) seedService(ctx context.Context) (context.Context, *graph.SeedService, error) {
	if h.seed != nil {
		return ctx, h.seed, nil
	}
	return ectoinject.GetContext[*graph.SeedService](ctx)
}

func (h *Handler) ingestPipeline(ctx context.Context) (context.Context, *ingest.Pipeline, error) {
	if h.pipeline != nil {
		return ctx, h.pipeline, nil
	}
	return ectoinject.GetContext[*ingest.Pipeline](ctx)
}

// LoadInitialData wipes the graph and reloads the fixed seed files
func (h *Handler) LoadInitialData(c echo.Context) error {
	ctx, service, err := h.seedService(c.Request().Context())
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "La base de datos no está disponible.")
	}

	message, err := service.LoadInitialData(ctx)
	if err != nil {
		if errors.Is(err, ingest.ErrStorageUnavailable) {
			return httperror.NewHTTPError(http.StatusServiceUnavailable, "La base de datos no está disponible.")
		}
		return httperror.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Error masivo al cargar datos: %v", err))
	}

	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

// LoadManualData ingests uploaded CSV files through the heuristic pipeline
func (h *Handler) LoadManualData(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "No se encontraron archivos en la petición.")
	}

	uploads := form.File["csv_files"]
	if len(uploads) == 0 {
		return httperror.NewHTTPError(http.StatusBadRequest, "No se seleccionó ningún archivo.")
	}

	files := make(map[string]string, len(uploads))
	for _, upload := range uploads {
		if upload.Filename == "" {
			continue
		}
		src, err := upload.Open()
		if err != nil {
			return httperror.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("No se pudo leer el archivo %s", upload.Filename))
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return httperror.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("No se pudo leer el archivo %s", upload.Filename))
		}
		// Uploads from spreadsheet exports often carry a UTF-8 BOM
		files[upload.Filename] = strings.TrimPrefix(string(content), "\ufeff")
	}

	ctx, pipeline, err := h.ingestPipeline(c.Request().Context())
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "La base de datos no está disponible.")
	}

	report, err := pipeline.Process(ctx, files)
	if err != nil {
		if errors.Is(err, ingest.ErrStorageUnavailable) {
			return httperror.NewHTTPError(http.StatusServiceUnavailable, "La base de datos no está disponible.")
		}
		return httperror.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Error masivo al procesar archivos: %v", err))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": report.Summary(),
		"report":  report,
	})
}
