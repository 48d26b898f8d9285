package graph

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Gobusters/ectologger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/lecturia/bookgraph/internal/platform/tracing"
	"github.com/lecturia/bookgraph/pkg/models"
)

// UpsertService merges entities and relationships into the graph. It is the
// graph-side implementation of the ingestion store contract.
type UpsertService struct {
	client *Client
	schema *SchemaService
	logger ectologger.Logger
}

// NewUpsertService creates a new upsert service
func NewUpsertService(client *Client, logger ectologger.Logger) *UpsertService {
	return &UpsertService{
		client: client,
		schema: NewSchemaService(client, logger),
		logger: logger,
	}
}

// EnsureSchema creates constraints and indexes if absent.
func (s *UpsertService) EnsureSchema(ctx context.Context) error {
	return s.schema.Ensure(ctx)
}

// UpsertNode creates or merges one entity. The merge key is the numeric
// surrogate when the row yielded one, else the natural key; a kind without
// either (Club) falls through to unconditional creation. Matched properties
// are overwritten, new ones added, unlisted ones never removed.
func (s *UpsertService) UpsertNode(ctx context.Context, node *models.Node) error {
	ctx, span := tracing.StartSpan(ctx, "graph.UpsertService.UpsertNode")
	defer span.End()

	props := node.Properties()

	var cypher string
	params := map[string]any{"props": props}

	switch {
	case node.NumericID != nil:
		cypher = mergeByID[node.Kind]
		params["id"] = *node.NumericID
	default:
		if _, keyValue, ok := node.NaturalKey(); ok {
			cypher = mergeByNaturalKey[node.Kind]
			params["key"] = keyValue
		} else {
			cypher = createNode[node.Kind]
		}
	}

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return classifyWriteError(fmt.Errorf("failed to upsert %s node: %w", node.Kind, err))
	}

	return nil
}

// MergeRelationship resolves both endpoints and MERGEs the typed edge.
// resolved=false means at least one endpoint matched no node by any
// candidate identifier; the edge is not created.
func (s *UpsertService) MergeRelationship(ctx context.Context, rel *models.Relationship) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.UpsertService.MergeRelationship")
	defer span.End()

	fromKind, toKind := rel.Kind.Endpoints()

	fromEID, ok, err := s.resolveEndpoint(ctx, fromKind, rel.FromID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	toEID, ok, err := s.resolveEndpoint(ctx, toKind, rel.ToID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	_, err = s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, mergeEdge[rel.Kind], map[string]any{
			"from": fromEID,
			"to":   toEID,
		})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return false, classifyWriteError(fmt.Errorf("failed to merge %s relationship: %w", rel.Kind, err))
	}

	return true, nil
}

// resolveEndpoint maps an integer endpoint value to an existing node by
// trying each candidate identifier property in priority order. First match
// wins.
func (s *UpsertService) resolveEndpoint(ctx context.Context, kind models.EntityKind, id int64) (string, bool, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.UpsertService.resolveEndpoint")
	defer span.End()

	value := strconv.FormatInt(id, 10)

	for _, stmt := range resolveStatements[kind] {
		rows, err := s.client.ReadRecords(ctx, stmt, map[string]any{"value": value})
		if err != nil {
			return "", false, classifyWriteError(fmt.Errorf("failed to resolve %s endpoint: %w", kind, err))
		}
		if len(rows) == 0 {
			continue
		}
		if eid, ok := rows[0]["eid"].(string); ok {
			return eid, true, nil
		}
	}

	return "", false, nil
}
