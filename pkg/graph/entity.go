package graph

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/lecturia/bookgraph/internal/platform/tracing"
	"github.com/lecturia/bookgraph/pkg/models"
)

// entityDescriptor describes the listable properties of one entity kind.
// Property names live only in these closed tables; user input never reaches
// cypher text.
type entityDescriptor struct {
	label string
	props []string
	order string
}

var entityDescriptors = map[models.EntityKind]entityDescriptor{
	models.KindPerson: {"Persona", []string{"id", "nombreCompleto", "tipoLector"}, "id"},
	models.KindBook:   {"Libro", []string{"id", "titulo", "generoLiterario", "añoPublicacion"}, "id"},
	models.KindAuthor: {"Autor", []string{"id", "nombreCompleto", "nacionalidad"}, "id"},
	models.KindClub:   {"Club", []string{"id", "nombre", "ubicacion", "tematica"}, "id"},
}

// listStatements and nextIDStatements are precomputed per kind from the
// descriptors at init.
var (
	listStatements   = map[models.EntityKind]string{}
	nextIDStatements = map[models.EntityKind]string{}
)

func init() {
	for kind, d := range entityDescriptors {
		projection := ""
		for i, prop := range d.props {
			if i > 0 {
				projection += ", "
			}
			projection += fmt.Sprintf("n.%s AS %s", prop, prop)
		}
		listStatements[kind] = fmt.Sprintf(
			"MATCH (n:%s) RETURN %s ORDER BY n.%s", d.label, projection, d.order,
		)
		nextIDStatements[kind] = fmt.Sprintf(
			"MATCH (n:%s) RETURN coalesce(max(n.id), 0) + 1 AS nextId", d.label,
		)
	}
}

// EntityService handles the CRUD surface over graph entities.
type EntityService struct {
	client *Client
	logger ectologger.Logger
}

// NewEntityService creates a new entity service
func NewEntityService(client *Client, logger ectologger.Logger) *EntityService {
	return &EntityService{
		client: client,
		logger: logger,
	}
}

// List returns every node of the kind with its declared properties, ordered
// by numeric id.
func (s *EntityService) List(ctx context.Context, kind models.EntityKind) ([]map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.EntityService.List")
	defer span.End()

	rows, err := s.client.ReadRecords(ctx, listStatements[kind], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s nodes: %w", kind, err)
	}
	return rows, nil
}

// Add creates a node. When the payload carries no id, the next numeric
// surrogate is assigned from the current maximum.
func (s *EntityService) Add(ctx context.Context, kind models.EntityKind, properties map[string]any) error {
	ctx, span := tracing.StartSpan(ctx, "graph.EntityService.Add")
	defer span.End()

	props := filterProperties(kind, properties)

	if id, ok := props["id"]; !ok || id == nil || id == "" {
		rows, err := s.client.ReadRecords(ctx, nextIDStatements[kind], nil)
		nextID := int64(1)
		if err == nil && len(rows) > 0 {
			if n, ok := rows[0]["nextId"].(int64); ok {
				nextID = n
			}
		}
		props["id"] = nextID
	}

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, createNode[kind], map[string]any{"props": props})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return classifyWriteError(fmt.Errorf("failed to add %s node: %w", kind, err))
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"kind": string(kind),
		"id":   props["id"],
	}).Info("Added entity")
	return nil
}

// Update overwrites the declared properties present in the payload on the
// node whose id matches the identifier (compared as strings). The id
// property itself is never overwritten.
func (s *EntityService) Update(ctx context.Context, kind models.EntityKind, identifier string, properties map[string]any) error {
	ctx, span := tracing.StartSpan(ctx, "graph.EntityService.Update")
	defer span.End()

	d := entityDescriptors[kind]

	props := filterProperties(kind, properties)
	delete(props, "id")
	if len(props) == 0 {
		return nil
	}

	// SET clauses are assembled from the closed descriptor list only.
	setClause := ""
	params := map[string]any{"identifier": identifier}
	for _, prop := range d.props {
		value, ok := props[prop]
		if !ok {
			continue
		}
		if setClause != "" {
			setClause += ", "
		}
		setClause += fmt.Sprintf("n.%s = $%s", prop, prop)
		params[prop] = value
	}
	if setClause == "" {
		return nil
	}

	cypher := fmt.Sprintf(
		"MATCH (n:%s) WHERE toString(n.id) = toString($identifier) SET %s",
		d.label, setClause,
	)

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return classifyWriteError(fmt.Errorf("failed to update %s node: %w", kind, err))
	}

	return nil
}

// filterProperties keeps only the properties declared for the kind.
func filterProperties(kind models.EntityKind, properties map[string]any) map[string]any {
	d := entityDescriptors[kind]
	filtered := make(map[string]any, len(properties))
	for _, prop := range d.props {
		if value, ok := properties[prop]; ok {
			filtered[prop] = value
		}
	}
	return filtered
}
