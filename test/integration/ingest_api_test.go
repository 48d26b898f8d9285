package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecturia/bookgraph/pkg/ingest"
	"github.com/lecturia/bookgraph/pkg/models"
	"github.com/lecturia/bookgraph/pkg/routes/admin"
)

// memoryStore mirrors the graph store's merge semantics in memory so the
// HTTP upload path can run end to end without a database.
type memoryStore struct {
	nodes map[string]*models.Node
	edges map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		nodes: make(map[string]*models.Node),
		edges: make(map[string]bool),
	}
}

func (s *memoryStore) EnsureSchema(ctx context.Context) error { return nil }

func (s *memoryStore) key(kind models.EntityKind, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

func (s *memoryStore) UpsertNode(ctx context.Context, node *models.Node) error {
	if node.NumericID != nil {
		s.nodes[s.key(node.Kind, *node.NumericID)] = node
		return nil
	}
	if prop, value, ok := node.NaturalKey(); ok {
		s.nodes[fmt.Sprintf("%s:%s=%s", node.Kind, prop, value)] = node
		return nil
	}
	s.nodes[fmt.Sprintf("%s:ext=%s", node.Kind, node.ExternalID)] = node
	return nil
}

func (s *memoryStore) MergeRelationship(ctx context.Context, rel *models.Relationship) (bool, error) {
	fromKind, toKind := rel.Kind.Endpoints()
	if _, ok := s.nodes[s.key(fromKind, rel.FromID)]; !ok {
		return false, nil
	}
	if _, ok := s.nodes[s.key(toKind, rel.ToID)]; !ok {
		return false, nil
	}
	s.edges[fmt.Sprintf("%s:%d->%d", rel.Kind, rel.FromID, rel.ToID)] = true
	return true, nil
}

func newUploadServer(store *memoryStore) *echo.Echo {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	pipeline := ingest.NewPipeline(ingest.NewIngestor(store, logger), nil, nil, logger)

	e := echo.New()
	admin.NewHandler(nil, pipeline).Register(e.Group("/admin"))
	return e
}

func uploadFiles(t *testing.T, e *echo.Echo, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := writer.CreateFormFile("csv_files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/cargar-datos-manual", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestManualUpload_FullBatch(t *testing.T) {
	store := newMemoryStore()
	e := newUploadServer(store)

	rec := uploadFiles(t, e, map[string]string{
		"Persona.csv":       "id;Nombre;TipoLector\n1;Ana Solis;avido\n2;Beto Mora;casual",
		"Autor.csv":         "idAutor,Nombre,Nacionalidad\n1,Borges,Argentina",
		"Libro.csv":         "idLibro\tTitulo\tGenero\tAnno\n10\tFicciones\tCuento\t1944",
		"Autor-libro.csv":   "idAutor,idLibro\n1,10",
		"Persona-libro.csv": "id;idLibro\n1;10\n2;10",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string              `json:"message"`
		Report  models.IngestReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "OK. Persona=2, Autor=1, Libro=1, Club=0, Relaciones=3", resp.Message)
	assert.Equal(t, 2, resp.Report.Persons)
	assert.Equal(t, 3, resp.Report.Relationships)
	assert.True(t, store.edges["ESCRIBIO:1->10"])
	assert.True(t, store.edges["LEE:1->10"])
	assert.True(t, store.edges["LEE:2->10"])
}

func TestManualUpload_MixedQualityBatch(t *testing.T) {
	store := newMemoryStore()
	e := newUploadServer(store)

	rec := uploadFiles(t, e, map[string]string{
		"Club.csv":         "IdClub;Nombre;Ubicacion;Tematica\n5;Lectores del Sur;Temuco;ficcion",
		"Persona.csv":      "id;Nombre;TipoLector\n1;Ana;avido\n2;;casual",
		"Persona-club.csv": "idPersona;idClub\n1;5\n1;99",
		"notas.txt":        "esto no es,un archivo conocido\n1,2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string              `json:"message"`
		Report  models.IngestReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Report.Clubs)
	assert.Equal(t, 1, resp.Report.Persons)
	assert.Equal(t, 1, resp.Report.Relationships)
	assert.Equal(t, 1, resp.Report.Unresolved)
	assert.Equal(t, 1, resp.Report.SkippedRows)
	assert.Equal(t, 1, resp.Report.SkippedFiles)
	assert.True(t, store.edges["PERTENECE_A:1->5"])
}

func TestManualUpload_ReplayIsIdempotent(t *testing.T) {
	store := newMemoryStore()
	e := newUploadServer(store)

	files := map[string]string{
		"Autor.csv":       "idAutor,Nombre,Nacionalidad\n1,Borges,Argentina",
		"Libro.csv":       "idLibro,Titulo,Genero,Anno\n10,Ficciones,Cuento,1944",
		"Autor-libro.csv": "idAutor,idLibro\n1,10",
	}

	require.Equal(t, http.StatusOK, uploadFiles(t, e, files).Code)
	require.Equal(t, http.StatusOK, uploadFiles(t, e, files).Code)

	assert.Len(t, store.nodes, 2)
	assert.Len(t, store.edges, 1)
}

func TestManualUpload_BOMHandling(t *testing.T) {
	store := newMemoryStore()
	e := newUploadServer(store)

	rec := uploadFiles(t, e, map[string]string{
		"Persona.csv": "\ufeffid;Nombre;TipoLector\n1;Ana;avido",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Report models.IngestReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Report.Persons)
}
