package models

// RelationshipKind is the closed enum of directed edge types.
type RelationshipKind string

const (
	RelWrote      RelationshipKind = "ESCRIBIO"    // Autor -> Libro
	RelReads      RelationshipKind = "LEE"         // Persona -> Libro
	RelRecommends RelationshipKind = "RECOMIENDA"  // Club -> Libro
	RelBelongsTo  RelationshipKind = "PERTENECE_A" // Persona -> Club
)

// Endpoints returns the entity kinds at each end of the relationship.
func (k RelationshipKind) Endpoints() (from EntityKind, to EntityKind) {
	switch k {
	case RelWrote:
		return KindAuthor, KindBook
	case RelReads:
		return KindPerson, KindBook
	case RelRecommends:
		return KindClub, KindBook
	case RelBelongsTo:
		return KindPerson, KindClub
	}
	return "", ""
}

// Valid reports whether the kind is a member of the closed enum.
func (k RelationshipKind) Valid() bool {
	switch k {
	case RelWrote, RelReads, RelRecommends, RelBelongsTo:
		return true
	}
	return false
}

// Relationship is a validated relationship row: both endpoint identifiers
// already coerced to integers. Identity resolution against the graph happens
// later; an unresolvable endpoint means the edge is skipped, never half made.
type Relationship struct {
	Kind   RelationshipKind
	FromID int64
	ToID   int64
}
