package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lecturia/bookgraph/pkg/models"
)

// ParseID coerces an identifier or year field to a non-negative integer.
// Surrounding whitespace is tolerated; anything else fails coercion.
func ParseID(value string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// RowSkip is the "skip this row" outcome of row validation.
type RowSkip struct {
	Reason string
}

func skipf(format string, args ...any) *RowSkip {
	return &RowSkip{Reason: fmt.Sprintf(format, args...)}
}

// BuildNode validates and coerces one record of a node-classified file into a
// tagged entity. An identifier that fails integer coercion does not reject
// the row; the raw value is preserved as ExternalID and the entity merges by
// natural key instead.
func BuildNode(class FileClass, table *Table, record []string) (*models.Node, *RowSkip) {
	switch class {
	case ClassPerson:
		fullName := strings.TrimSpace(table.Value(record, "nombre"))
		if fullName == "" {
			return nil, skipf("persona row has empty nombre")
		}
		node := &models.Node{
			Kind:   models.KindPerson,
			Person: &models.Person{FullName: fullName, ReaderType: table.Value(record, "tipolector")},
		}
		applyIdentifier(node, table.Value(record, "id"))
		return node, nil

	case ClassAuthor:
		fullName := strings.TrimSpace(table.Value(record, "nombre"))
		if fullName == "" {
			return nil, skipf("autor row has empty nombre")
		}
		node := &models.Node{
			Kind:   models.KindAuthor,
			Author: &models.Author{FullName: fullName, Nationality: table.Value(record, "nacionalidad")},
		}
		applyIdentifier(node, table.Value(record, "idautor"))
		return node, nil

	case ClassBook:
		title := strings.TrimSpace(table.Value(record, "titulo"))
		if title == "" {
			return nil, skipf("libro row has empty titulo")
		}
		book := &models.Book{Title: title, Genre: table.Value(record, "genero")}
		// A non-numeric year is not an identifier: the property is omitted
		// and the row still proceeds.
		if year, ok := ParseID(table.Value(record, "anno")); ok {
			book.PublicationYear = &year
		}
		node := &models.Node{Kind: models.KindBook, Book: book}
		applyIdentifier(node, table.Value(record, "idlibro"))
		return node, nil

	case ClassClub:
		name := strings.TrimSpace(table.Value(record, "nombre"))
		if name == "" {
			return nil, skipf("club row has empty nombre")
		}
		node := &models.Node{
			Kind: models.KindClub,
			Club: &models.Club{
				Name:     name,
				Location: table.Value(record, "ubicacion"),
				Theme:    table.Value(record, "tematica"),
			},
		}
		applyIdentifier(node, table.Value(record, "idclub"))
		return node, nil
	}

	return nil, skipf("file class %s does not describe entity rows", class)
}

// applyIdentifier coerces the raw identifier into the numeric surrogate, or
// preserves it verbatim for relationship-resolution fallback when it does not
// parse.
func applyIdentifier(node *models.Node, raw string) {
	if id, ok := ParseID(raw); ok {
		node.NumericID = &id
		return
	}
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		node.ExternalID = trimmed
	}
}

// BuildRelationship validates one record of a relationship-classified file.
// Both endpoint identifiers must parse as integers; relationships have no
// natural-key fallback at this stage.
func BuildRelationship(c Classification, table *Table, record []string) (*models.Relationship, *RowSkip) {
	fromRaw := table.Value(record, c.FromColumn)
	fromID, ok := ParseID(fromRaw)
	if !ok {
		return nil, skipf("%s row has non-numeric %s value %q", c.Class, c.FromColumn, fromRaw)
	}

	toRaw := table.Value(record, c.ToColumn)
	toID, ok := ParseID(toRaw)
	if !ok {
		return nil, skipf("%s row has non-numeric %s value %q", c.Class, c.ToColumn, toRaw)
	}

	return &models.Relationship{
		Kind:   c.Class.RelationshipKind(),
		FromID: fromID,
		ToID:   toID,
	}, nil
}
