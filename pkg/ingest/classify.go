package ingest

import "github.com/lecturia/bookgraph/pkg/models"

// FileClass is the classification of one uploaded file, inferred purely from
// its normalized header set.
type FileClass int

const (
	ClassUnrecognized FileClass = iota
	ClassPerson
	ClassAuthor
	ClassBook
	ClassClub
	ClassWrote
	ClassReads
	ClassRecommends
	ClassBelongsTo
)

func (c FileClass) String() string {
	switch c {
	case ClassPerson:
		return "Persona"
	case ClassAuthor:
		return "Autor"
	case ClassBook:
		return "Libro"
	case ClassClub:
		return "Club"
	case ClassWrote:
		return "Autor->Libro"
	case ClassReads:
		return "Persona->Libro"
	case ClassRecommends:
		return "Club->Libro"
	case ClassBelongsTo:
		return "Persona->Club"
	}
	return "Unrecognized"
}

// IsNode reports whether the class describes entity rows.
func (c FileClass) IsNode() bool {
	switch c {
	case ClassPerson, ClassAuthor, ClassBook, ClassClub:
		return true
	}
	return false
}

// IsRelationship reports whether the class describes relationship rows.
func (c FileClass) IsRelationship() bool {
	switch c {
	case ClassWrote, ClassReads, ClassRecommends, ClassBelongsTo:
		return true
	}
	return false
}

// EntityKind maps a node class to its graph label.
func (c FileClass) EntityKind() models.EntityKind {
	switch c {
	case ClassPerson:
		return models.KindPerson
	case ClassAuthor:
		return models.KindAuthor
	case ClassBook:
		return models.KindBook
	case ClassClub:
		return models.KindClub
	}
	return ""
}

// RelationshipKind maps a relationship class to its edge type.
func (c FileClass) RelationshipKind() models.RelationshipKind {
	switch c {
	case ClassWrote:
		return models.RelWrote
	case ClassReads:
		return models.RelReads
	case ClassRecommends:
		return models.RelRecommends
	case ClassBelongsTo:
		return models.RelBelongsTo
	}
	return ""
}

// nodeSignature is one entry of the ordered node signature table. A file
// matches when its header set contains every required column; extra columns
// are ignored.
type nodeSignature struct {
	class    FileClass
	required []string
}

// Node signatures are tested first, top to bottom.
var nodeSignatures = []nodeSignature{
	{ClassPerson, []string{"id", "nombre", "tipolector"}},
	{ClassAuthor, []string{"idautor", "nombre", "nacionalidad"}},
	{ClassBook, []string{"idlibro", "titulo", "genero", "anno"}},
	{ClassClub, []string{"idclub", "nombre", "ubicacion", "tematica"}},
}

// Endpoint-role alias sets. These overlap (a column literally named "id"
// plausibly identifies a Persona and also works as a generic fallback), so
// relationship signatures are evaluated in a fixed order, first match wins.
var (
	authorIDAliases = []string{"idautor", "autor_id", "autorid"}
	bookIDAliases   = []string{"idlibro", "libro_id", "libroid"}
	clubIDAliases   = []string{"idclub", "club_id", "clubid"}

	// Persona aliases differ by relationship: a reads file usually carries the
	// bare "id" column, a membership file an explicit "idpersona".
	personReadsAliases      = []string{"id", "persona_id", "personaid", "idpersona"}
	personMembershipAliases = []string{"idpersona", "persona_id", "personaid", "id"}
)

// relSignature is one entry of the ordered relationship signature table.
type relSignature struct {
	class       FileClass
	fromAliases []string
	toAliases   []string
}

var relSignatures = []relSignature{
	{ClassWrote, authorIDAliases, bookIDAliases},
	{ClassReads, personReadsAliases, bookIDAliases},
	{ClassRecommends, clubIDAliases, bookIDAliases},
	{ClassBelongsTo, personMembershipAliases, clubIDAliases},
}

// Classification is the outcome of header inspection. For relationship files
// it records which normalized columns carry each endpoint.
type Classification struct {
	Class      FileClass
	FromColumn string
	ToColumn   string
}

// Classify decides what a file describes from its normalized header set.
// Node signatures take priority over relationship signatures.
func Classify(headers HeaderIndex) Classification {
	for _, sig := range nodeSignatures {
		if headers.ContainsAll(sig.required) {
			return Classification{Class: sig.class}
		}
	}

	for _, sig := range relSignatures {
		from, fromOK := headers.FindAny(sig.fromAliases)
		to, toOK := headers.FindAny(sig.toAliases)
		if fromOK && toOK {
			return Classification{Class: sig.class, FromColumn: from, ToColumn: to}
		}
	}

	return Classification{Class: ClassUnrecognized}
}
