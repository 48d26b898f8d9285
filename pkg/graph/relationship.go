package graph

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/lecturia/bookgraph/internal/platform/tracing"
	"github.com/lecturia/bookgraph/pkg/models"
)

// relateStatements back the interactive relationship endpoint: one source
// node fanned out to many targets, each side matched by id-as-string or by
// natural key. MERGE keeps repeat submissions idempotent.
var relateStatements = map[models.RelationshipKind]string{
	models.RelWrote: `MATCH (a:Autor)
		WHERE toString(a.id) = toString($from_id) OR a.nombreCompleto = $from_id
		UNWIND $to_ids AS to_id
		MATCH (b:Libro)
		WHERE toString(b.id) = toString(to_id) OR b.titulo = to_id
		MERGE (a)-[:ESCRIBIO]->(b)`,
	models.RelBelongsTo: `MATCH (a:Persona)
		WHERE toString(a.id) = toString($from_id) OR a.nombreCompleto = $from_id
		UNWIND $to_ids AS to_id
		MATCH (b:Club)
		WHERE toString(b.id) = toString(to_id) OR b.nombre = to_id
		MERGE (a)-[:PERTENECE_A]->(b)`,
	models.RelReads: `MATCH (a:Persona)
		WHERE toString(a.id) = toString($from_id) OR a.nombreCompleto = $from_id
		UNWIND $to_ids AS to_id
		MATCH (b:Libro)
		WHERE toString(b.id) = toString(to_id) OR b.titulo = to_id
		MERGE (a)-[:LEE]->(b)`,
	models.RelRecommends: `MATCH (a:Club)
		WHERE toString(a.id) = toString($from_id) OR a.nombre = $from_id
		UNWIND $to_ids AS to_id
		MATCH (b:Libro)
		WHERE toString(b.id) = toString(to_id) OR b.titulo = to_id
		MERGE (a)-[:RECOMIENDA]->(b)`,
}

// RelationshipService creates relationships requested through the API.
type RelationshipService struct {
	client *Client
	logger ectologger.Logger
}

// NewRelationshipService creates a new relationship service
func NewRelationshipService(client *Client, logger ectologger.Logger) *RelationshipService {
	return &RelationshipService{
		client: client,
		logger: logger,
	}
}

// Relate connects one source node to each listed target with the typed edge.
// Source and targets may be addressed by numeric id or natural key.
func (s *RelationshipService) Relate(ctx context.Context, kind models.RelationshipKind, from any, to []any) error {
	ctx, span := tracing.StartSpan(ctx, "graph.RelationshipService.Relate")
	defer span.End()

	cypher, ok := relateStatements[kind]
	if !ok {
		return fmt.Errorf("unknown relationship kind %q", kind)
	}

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, map[string]any{
			"from_id": from,
			"to_ids":  to,
		})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return classifyWriteError(fmt.Errorf("failed to create %s relationships: %w", kind, err))
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"kind":    string(kind),
		"targets": len(to),
	}).Info("Created relationships")
	return nil
}
