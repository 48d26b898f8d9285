package graph

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/lecturia/bookgraph/internal/platform/tracing"
)

// QueryService runs the analytical read queries exposed under /consultas.
type QueryService struct {
	client *Client
	logger ectologger.Logger
}

// NewQueryService creates a new query service
func NewQueryService(client *Client, logger ectologger.Logger) *QueryService {
	return &QueryService{
		client: client,
		logger: logger,
	}
}

// BooksReadBy lists title and genre of every book a person reads.
func (s *QueryService) BooksReadBy(ctx context.Context, personName string) ([]map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.QueryService.BooksReadBy")
	defer span.End()

	cypher := `MATCH (p:Persona {nombreCompleto: $nombre})-[:LEE]->(l:Libro)
		RETURN l.titulo AS titulo, l.generoLiterario AS genero`
	rows, err := s.client.ReadRecords(ctx, cypher, map[string]any{"nombre": personName})
	if err != nil {
		return nil, fmt.Errorf("failed to query books read: %w", err)
	}
	return rows, nil
}

// ClubMembers lists the members of a club by name.
func (s *QueryService) ClubMembers(ctx context.Context, clubName string) ([]map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.QueryService.ClubMembers")
	defer span.End()

	cypher := `MATCH (p:Persona)-[:PERTENECE_A]->(c:Club {nombre: $nombre})
		RETURN p.nombreCompleto AS nombre`
	rows, err := s.client.ReadRecords(ctx, cypher, map[string]any{"nombre": clubName})
	if err != nil {
		return nil, fmt.Errorf("failed to query club members: %w", err)
	}
	return rows, nil
}

// AvidClubReaders finds persons who read at least three books recommended by
// the same club.
func (s *QueryService) AvidClubReaders(ctx context.Context) ([]map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.QueryService.AvidClubReaders")
	defer span.End()

	cypher := `MATCH (p:Persona)-[:LEE]->(l:Libro)<-[:RECOMIENDA]-(c:Club)
		WITH p, c, count(l) AS librosRecomendadosLeidos
		WHERE librosRecomendadosLeidos >= 3
		RETURN p.nombreCompleto AS persona, c.nombre AS club`
	rows, err := s.client.ReadRecords(ctx, cypher, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query avid club readers: %w", err)
	}
	return rows, nil
}

// MultiClubMembers finds persons belonging to more than one club, with the
// collected club names.
func (s *QueryService) MultiClubMembers(ctx context.Context) ([]map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.QueryService.MultiClubMembers")
	defer span.End()

	cypher := `MATCH (p:Persona)-[:PERTENECE_A]->(c:Club)
		WITH p, count(c) AS numeroClubes
		WHERE numeroClubes > 1
		MATCH (p)-[:PERTENECE_A]->(club:Club)
		RETURN p.nombreCompleto AS persona, collect(club.nombre) AS clubes`
	rows, err := s.client.ReadRecords(ctx, cypher, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query multi-club members: %w", err)
	}
	return rows, nil
}

// PopularBooks returns the three most read books with their reader counts.
func (s *QueryService) PopularBooks(ctx context.Context) ([]map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.QueryService.PopularBooks")
	defer span.End()

	cypher := `MATCH (p:Persona)-[:LEE]->(l:Libro)
		RETURN l.titulo AS titulo, count(p) AS lectores
		ORDER BY lectores DESC
		LIMIT 3`
	rows, err := s.client.ReadRecords(ctx, cypher, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular books: %w", err)
	}
	return rows, nil
}
