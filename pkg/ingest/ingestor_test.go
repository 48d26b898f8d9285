package ingest

import (
	"context"
	"fmt"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecturia/bookgraph/pkg/models"
)

// fakeStore records writes in memory with the same merge semantics the graph
// store guarantees: nodes dedupe on their merge key, edges dedupe entirely.
type fakeStore struct {
	nodes map[string]*models.Node
	edges map[string]bool

	schemaCalls int
	schemaErr   error
	upsertErr   error
	mergeErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nodes: make(map[string]*models.Node),
		edges: make(map[string]bool),
	}
}

func (s *fakeStore) EnsureSchema(ctx context.Context) error {
	s.schemaCalls++
	return s.schemaErr
}

func nodeKey(node *models.Node) string {
	if node.NumericID != nil {
		return fmt.Sprintf("%s:%d", node.Kind, *node.NumericID)
	}
	if prop, value, ok := node.NaturalKey(); ok {
		return fmt.Sprintf("%s:%s=%s", node.Kind, prop, value)
	}
	return fmt.Sprintf("%s:ext=%s", node.Kind, node.ExternalID)
}

func (s *fakeStore) UpsertNode(ctx context.Context, node *models.Node) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.nodes[nodeKey(node)] = node
	return nil
}

func (s *fakeStore) MergeRelationship(ctx context.Context, rel *models.Relationship) (bool, error) {
	if s.mergeErr != nil {
		return false, s.mergeErr
	}
	fromKind, toKind := rel.Kind.Endpoints()
	if _, ok := s.nodes[fmt.Sprintf("%s:%d", fromKind, rel.FromID)]; !ok {
		return false, nil
	}
	if _, ok := s.nodes[fmt.Sprintf("%s:%d", toKind, rel.ToID)]; !ok {
		return false, nil
	}
	s.edges[fmt.Sprintf("%s:%d->%d", rel.Kind, rel.FromID, rel.ToID)] = true
	return true, nil
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestIngestor_PersonaFile(t *testing.T) {
	store := newFakeStore()
	ingestor := NewIngestor(store, testLogger())

	report, err := ingestor.Run(context.Background(), map[string]string{
		"Persona.csv": "id;Nombre;TipoLector\n1;Ana Solis;avido",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Persons)
	assert.Equal(t, "OK. Persona=1, Autor=0, Libro=0, Club=0, Relaciones=0", report.Summary())
	assert.Equal(t, 1, store.schemaCalls)
	assert.Len(t, store.nodes, 1)
	assert.NotEmpty(t, report.BatchID)
}

func TestIngestor_NodesBeforeRelationships(t *testing.T) {
	store := newFakeStore()
	ingestor := NewIngestor(store, testLogger())

	// "Autor-libro.csv" sorts before both node files; the two-pass split must
	// still upsert the nodes first so the edge resolves.
	report, err := ingestor.Run(context.Background(), map[string]string{
		"Autor-libro.csv": "idAutor,idLibro\n1,10",
		"Autor.csv":       "idAutor,Nombre,Nacionalidad\n1,Borges,Argentina",
		"Libro.csv":       "idLibro,Titulo,Genero,Anno\n10,Ficciones,Cuento,1944",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Authors)
	assert.Equal(t, 1, report.Books)
	assert.Equal(t, 1, report.Relationships)
	assert.Equal(t, 0, report.Unresolved)
	assert.True(t, store.edges["ESCRIBIO:1->10"])
}

func TestIngestor_Idempotence(t *testing.T) {
	store := newFakeStore()
	ingestor := NewIngestor(store, testLogger())
	files := map[string]string{
		"Autor.csv":       "idAutor,Nombre,Nacionalidad\n1,Borges,Argentina",
		"Libro.csv":       "idLibro,Titulo,Genero,Anno\n10,Ficciones,Cuento,1944",
		"Autor-libro.csv": "idAutor,idLibro\n1,10",
	}

	_, err := ingestor.Run(context.Background(), files)
	require.NoError(t, err)
	_, err = ingestor.Run(context.Background(), files)
	require.NoError(t, err)

	assert.Len(t, store.nodes, 2)
	assert.Len(t, store.edges, 1)
}

func TestIngestor_UnresolvedEndpoint(t *testing.T) {
	store := newFakeStore()
	ingestor := NewIngestor(store, testLogger())

	report, err := ingestor.Run(context.Background(), map[string]string{
		"Persona.csv":      "id;Nombre;TipoLector\n1;Ana Solis;avido",
		"Persona-club.csv": "idPersona;idClub\n1;99",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Persons)
	assert.Equal(t, 0, report.Relationships)
	assert.Equal(t, 1, report.Unresolved)
	assert.Empty(t, store.edges)
}

func TestIngestor_SkipsAndErrors(t *testing.T) {
	t.Run("unrecognized file is skipped, batch continues", func(t *testing.T) {
		store := newFakeStore()
		ingestor := NewIngestor(store, testLogger())

		report, err := ingestor.Run(context.Background(), map[string]string{
			"notas.csv":   "foo,bar\n1,2",
			"Persona.csv": "id;Nombre;TipoLector\n1;Ana;avido",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, report.SkippedFiles)
		assert.Equal(t, 1, report.Persons)
	})

	t.Run("empty file is ignored entirely", func(t *testing.T) {
		store := newFakeStore()
		ingestor := NewIngestor(store, testLogger())

		report, err := ingestor.Run(context.Background(), map[string]string{"vacio.csv": ""})
		require.NoError(t, err)
		assert.Equal(t, 0, report.SkippedFiles)
	})

	t.Run("invalid rows are skipped, valid rows ingested", func(t *testing.T) {
		store := newFakeStore()
		ingestor := NewIngestor(store, testLogger())

		report, err := ingestor.Run(context.Background(), map[string]string{
			"Persona.csv": "id;Nombre;TipoLector\n1;Ana;avido\n2;;casual",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Persons)
		assert.Equal(t, 1, report.SkippedRows)
	})

	t.Run("storage unavailable aborts the batch", func(t *testing.T) {
		store := newFakeStore()
		store.schemaErr = fmt.Errorf("bolt handshake: %w", ErrStorageUnavailable)
		ingestor := NewIngestor(store, testLogger())

		report, err := ingestor.Run(context.Background(), map[string]string{
			"Persona.csv": "id;Nombre;TipoLector\n1;Ana;avido",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStorageUnavailable)
		assert.NotNil(t, report)
		assert.Equal(t, 0, report.Persons)
	})

	t.Run("constraint violation aborts the file, not the batch", func(t *testing.T) {
		store := newFakeStore()
		store.upsertErr = fmt.Errorf("nombreCompleto already exists: %w", ErrConstraintViolation)
		ingestor := NewIngestor(store, testLogger())

		report, err := ingestor.Run(context.Background(), map[string]string{
			"Persona.csv": "id;Nombre;TipoLector\n1;Ana;avido",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, report.Persons)
		require.Len(t, report.FileErrors, 1)
		assert.Equal(t, "Persona.csv", report.FileErrors[0].Filename)
	})
}
