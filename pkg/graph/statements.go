package graph

import (
	"fmt"

	"github.com/lecturia/bookgraph/pkg/models"
)

// All cypher text in this file is derived from closed, compile-time-known
// enumerations. User input only ever travels through query parameters.

// mergeByID merges a node on its numeric surrogate.
var mergeByID = map[models.EntityKind]string{
	models.KindPerson: `MERGE (n:Persona {id: $id}) SET n += $props`,
	models.KindAuthor: `MERGE (n:Autor {id: $id}) SET n += $props`,
	models.KindBook:   `MERGE (n:Libro {id: $id}) SET n += $props`,
	models.KindClub:   `MERGE (n:Club {id: $id}) SET n += $props`,
}

// mergeByNaturalKey merges a node on its unique natural key. Club is absent:
// it has no unique natural key.
var mergeByNaturalKey = map[models.EntityKind]string{
	models.KindPerson: `MERGE (n:Persona {nombreCompleto: $key}) SET n += $props`,
	models.KindAuthor: `MERGE (n:Autor {nombreCompleto: $key}) SET n += $props`,
	models.KindBook:   `MERGE (n:Libro {titulo: $key}) SET n += $props`,
}

// createNode inserts unconditionally. Only reachable for kinds without a
// unique natural key, which is the one legitimate path to
// duplicate-by-design records.
var createNode = map[models.EntityKind]string{
	models.KindPerson: `CREATE (n:Persona) SET n += $props`,
	models.KindAuthor: `CREATE (n:Autor) SET n += $props`,
	models.KindBook:   `CREATE (n:Libro) SET n += $props`,
	models.KindClub:   `CREATE (n:Club) SET n += $props`,
}

// mergeEdge creates the typed edge between two already-resolved nodes.
// MERGE makes re-creating the same endpoint pair a no-op.
var mergeEdge = map[models.RelationshipKind]string{
	models.RelWrote: `MATCH (a:Autor), (b:Libro)
		WHERE elementId(a) = $from AND elementId(b) = $to
		MERGE (a)-[:ESCRIBIO]->(b)`,
	models.RelReads: `MATCH (a:Persona), (b:Libro)
		WHERE elementId(a) = $from AND elementId(b) = $to
		MERGE (a)-[:LEE]->(b)`,
	models.RelRecommends: `MATCH (a:Club), (b:Libro)
		WHERE elementId(a) = $from AND elementId(b) = $to
		MERGE (a)-[:RECOMIENDA]->(b)`,
	models.RelBelongsTo: `MATCH (a:Persona), (b:Club)
		WHERE elementId(a) = $from AND elementId(b) = $to
		MERGE (a)-[:PERTENECE_A]->(b)`,
}

// endpointCandidates lists, per entity kind, the identifier properties an
// endpoint lookup tries in order: the stable numeric surrogate first, then
// legacy columns in the capitalizations historic loads left behind, then the
// preserved raw source identifier.
var endpointCandidates = map[models.EntityKind][]string{
	models.KindPerson: {"id", "idPersona", "IdPersona", "externalId"},
	models.KindAuthor: {"id", "idAutor", "IdAutor", "externalId"},
	models.KindBook:   {"id", "idLibro", "IdLibro", "externalId"},
	models.KindClub:   {"id", "idClub", "IdClub", "externalId"},
}

// resolveStatements holds one lookup query per (kind, candidate property),
// precomputed from the closed tables above. Comparison is on string form to
// bridge the numeric/string drift accumulated by heterogeneous loads.
var resolveStatements = map[models.EntityKind][]string{}

func init() {
	labels := map[models.EntityKind]string{
		models.KindPerson: "Persona",
		models.KindAuthor: "Autor",
		models.KindBook:   "Libro",
		models.KindClub:   "Club",
	}
	for kind, props := range endpointCandidates {
		for _, prop := range props {
			stmt := fmt.Sprintf(
				`MATCH (n:%s) WHERE toString(n.%s) = $value RETURN elementId(n) AS eid LIMIT 1`,
				labels[kind], prop,
			)
			resolveStatements[kind] = append(resolveStatements[kind], stmt)
		}
	}
}
