package graph

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/lecturia/bookgraph/internal/platform/tracing"
)

// schemaStatements are idempotent: IF NOT EXISTS makes re-running them a
// no-op, so ensuring the schema once per batch is safe across batches too.
var schemaStatements = []string{
	`CREATE CONSTRAINT persona_nombre IF NOT EXISTS FOR (p:Persona) REQUIRE p.nombreCompleto IS UNIQUE`,
	`CREATE CONSTRAINT libro_titulo IF NOT EXISTS FOR (l:Libro) REQUIRE l.titulo IS UNIQUE`,
	`CREATE CONSTRAINT autor_nombre IF NOT EXISTS FOR (a:Autor) REQUIRE a.nombreCompleto IS UNIQUE`,
	`CREATE INDEX persona_id IF NOT EXISTS FOR (p:Persona) ON (p.id)`,
	`CREATE INDEX libro_id IF NOT EXISTS FOR (l:Libro) ON (l.id)`,
	`CREATE INDEX autor_id IF NOT EXISTS FOR (a:Autor) ON (a.id)`,
	`CREATE INDEX club_id IF NOT EXISTS FOR (c:Club) ON (c.id)`,
}

// SchemaService ensures constraints and indexes exist.
type SchemaService struct {
	client *Client
	logger ectologger.Logger
}

// NewSchemaService creates a new schema service
func NewSchemaService(client *Client, logger ectologger.Logger) *SchemaService {
	return &SchemaService{
		client: client,
		logger: logger,
	}
}

// Ensure creates the uniqueness constraints and indexes if absent.
func (s *SchemaService) Ensure(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "graph.SchemaService.Ensure")
	defer span.End()

	session := s.client.Session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	for _, stmt := range schemaStatements {
		result, err := session.Run(ctx, stmt, nil)
		if err != nil {
			return classifyWriteError(fmt.Errorf("failed to ensure schema: %w", err))
		}
		if _, err := result.Consume(ctx); err != nil {
			return classifyWriteError(fmt.Errorf("failed to ensure schema: %w", err))
		}
	}

	s.logger.WithContext(ctx).Debug("Graph constraints and indexes ensured")
	return nil
}
