// Package models defines the closed set of graph entities and relationships
// the service is allowed to materialize, plus the batch ingestion report.
package models

// EntityKind is the closed enum of node labels. Labels are only ever taken
// from this set, never from user input.
type EntityKind string

const (
	KindPerson EntityKind = "Persona"
	KindAuthor EntityKind = "Autor"
	KindBook   EntityKind = "Libro"
	KindClub   EntityKind = "Club"
)

// AllEntityKinds returns the entity kinds in their canonical order.
func AllEntityKinds() []EntityKind {
	return []EntityKind{KindPerson, KindAuthor, KindBook, KindClub}
}

// Person is a reader. FullName is unique across all persons.
type Person struct {
	FullName   string `json:"nombreCompleto"`
	ReaderType string `json:"tipoLector"`
}

// Author of books. FullName is unique across all authors.
type Author struct {
	FullName    string `json:"nombreCompleto"`
	Nationality string `json:"nacionalidad"`
}

// Book in the catalog. Title is unique. PublicationYear is omitted when the
// source value does not parse as an integer.
type Book struct {
	Title           string `json:"titulo"`
	Genre           string `json:"generoLiterario"`
	PublicationYear *int64 `json:"añoPublicacion,omitempty"`
}

// Club is a reading club. Clubs carry no uniqueness constraint on their name;
// two clubs may legitimately share one.
type Club struct {
	Name     string `json:"nombre"`
	Location string `json:"ubicacion"`
	Theme    string `json:"tematica"`
}

// Node is the tagged record produced by row validation and consumed by the
// upsert engine. Exactly one of the per-kind payloads is set, matching Kind.
type Node struct {
	Kind EntityKind

	// NumericID is the stable integer surrogate carried alongside the natural
	// key. Nil when the source identifier did not coerce to an integer.
	NumericID *int64

	// ExternalID preserves the raw source identifier when it failed integer
	// coercion, so later relationship resolution can still fall back on it.
	ExternalID string

	Person *Person
	Author *Author
	Book   *Book
	Club   *Club
}

// NaturalKey returns the property name and value of the node's unique natural
// key. Club has none and returns ok=false.
func (n *Node) NaturalKey() (prop string, value string, ok bool) {
	switch n.Kind {
	case KindPerson:
		return "nombreCompleto", n.Person.FullName, true
	case KindAuthor:
		return "nombreCompleto", n.Author.FullName, true
	case KindBook:
		return "titulo", n.Book.Title, true
	default:
		return "", "", false
	}
}

// Properties builds the property bag persisted on the graph node. Optional
// fields that are absent never appear as keys.
func (n *Node) Properties() map[string]any {
	props := map[string]any{}
	if n.NumericID != nil {
		props["id"] = *n.NumericID
	}
	if n.ExternalID != "" {
		props["externalId"] = n.ExternalID
	}

	switch n.Kind {
	case KindPerson:
		props["nombreCompleto"] = n.Person.FullName
		props["tipoLector"] = n.Person.ReaderType
	case KindAuthor:
		props["nombreCompleto"] = n.Author.FullName
		props["nacionalidad"] = n.Author.Nationality
	case KindBook:
		props["titulo"] = n.Book.Title
		props["generoLiterario"] = n.Book.Genre
		if n.Book.PublicationYear != nil {
			props["añoPublicacion"] = *n.Book.PublicationYear
		}
	case KindClub:
		props["nombre"] = n.Club.Name
		props["ubicacion"] = n.Club.Location
		props["tematica"] = n.Club.Theme
	}

	return props
}
