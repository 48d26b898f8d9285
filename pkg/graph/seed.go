package graph

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/lecturia/bookgraph/internal/platform/tracing"
)

// SeedSuccessMessage is the fixed outcome of a successful full reload.
const SeedSuccessMessage = "Carga Automática: Todos los datos han sido cargados exitosamente en Neo4j."

// seedStatements replay the fixed-schema CSV files in the storage engine's
// import directory. The single placeholder is the field terminator, which
// comes from configuration, never from a request.
var seedStatements = []string{
	`LOAD CSV WITH HEADERS FROM 'file:///Persona.csv' AS row FIELDTERMINATOR '%s' CREATE (p:Persona {id: toInteger(row.id), nombreCompleto: row.Nombre, tipoLector: row.TipoLector})`,
	`LOAD CSV WITH HEADERS FROM 'file:///Autor.csv' AS row FIELDTERMINATOR '%s' CREATE (a:Autor {id: toInteger(row.idAutor), nombreCompleto: row.Nombre, nacionalidad: row.Nacionalidad})`,
	`LOAD CSV WITH HEADERS FROM 'file:///Libro.csv' AS row FIELDTERMINATOR '%s' CREATE (l:Libro {id: toInteger(row.IdLibro), titulo: row.Titulo, generoLiterario: row.Genero, añoPublicacion: toInteger(row.Anno)})`,
	`LOAD CSV WITH HEADERS FROM 'file:///Club.csv' AS row FIELDTERMINATOR '%s' CREATE (c:Club {id: toInteger(row.IdClub), nombre: row.Nombre, ubicacion: row.Ubicacion, tematica: row.Tematica})`,
	`LOAD CSV WITH HEADERS FROM 'file:///Autor-libro.csv' AS row FIELDTERMINATOR '%s' MATCH (a:Autor {id: toInteger(row.idAutor)}) MATCH (l:Libro {id: toInteger(row.idLibro)}) MERGE (a)-[:ESCRIBIO]->(l)`,
	`LOAD CSV WITH HEADERS FROM 'file:///Persona-libro.csv' AS row FIELDTERMINATOR '%s' MATCH (p:Persona {id: toInteger(row.id)}) MATCH (l:Libro {id: toInteger(row.idLibro)}) MERGE (p)-[:LEE]->(l)`,
	`LOAD CSV WITH HEADERS FROM 'file:///Club-libro.csv' AS row FIELDTERMINATOR '%s' MATCH (c:Club {id: toInteger(row.idClub)}) MATCH (l:Libro {id: toInteger(row.idLibro)}) MERGE (c)-[:RECOMIENDA]->(l)`,
	`LOAD CSV WITH HEADERS FROM 'file:///Persona-club2.csv' AS row FIELDTERMINATOR '%s' MATCH (p:Persona {id: toInteger(row.idPersona)}) MATCH (c:Club {id: toInteger(row.idClub)}) MERGE (p)-[:PERTENECE_A]->(c)`,
}

// SeedService performs the all-or-nothing full reload from the predetermined
// CSV files in the storage engine's import directory.
type SeedService struct {
	client          *Client
	schema          *SchemaService
	fieldTerminator string
	logger          ectologger.Logger
}

// NewSeedService creates a new seed service
func NewSeedService(client *Client, fieldTerminator string, logger ectologger.Logger) *SeedService {
	return &SeedService{
		client:          client,
		schema:          NewSchemaService(client, logger),
		fieldTerminator: fieldTerminator,
		logger:          logger,
	}
}

// LoadInitialData wipes the graph and replays the fixed file set. Any failure
// surfaces as an error; unlike the heuristic path there is no best-effort
// per-row handling here.
func (s *SeedService) LoadInitialData(ctx context.Context) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.SeedService.LoadInitialData")
	defer span.End()

	log := s.logger.WithContext(ctx)

	session := s.client.Session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	if err := s.run(ctx, session, `MATCH (n) DETACH DELETE n`); err != nil {
		return "", fmt.Errorf("failed to wipe existing data: %w", err)
	}
	log.Info("Carga Automática: previous database wiped")

	if err := s.schema.Ensure(ctx); err != nil {
		return "", err
	}

	for _, stmt := range seedStatements {
		cypher := fmt.Sprintf(stmt, s.fieldTerminator)
		if err := s.run(ctx, session, cypher); err != nil {
			return "", fmt.Errorf("failed to load seed file: %w", err)
		}
	}

	log.Info("Carga Automática: all seed files loaded")
	return SeedSuccessMessage, nil
}

func (s *SeedService) run(ctx context.Context, session neo4j.SessionWithContext, cypher string) error {
	result, err := session.Run(ctx, cypher, nil)
	if err != nil {
		return classifyWriteError(err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return classifyWriteError(err)
	}
	return nil
}
