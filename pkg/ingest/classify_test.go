package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func classify(headers ...string) Classification {
	return Classify(IndexHeaders(headers))
}

func TestClassify_Nodes(t *testing.T) {
	t.Run("persona signature", func(t *testing.T) {
		c := classify("id", "Nombre", "TipoLector")
		assert.Equal(t, ClassPerson, c.Class)
	})

	t.Run("autor signature", func(t *testing.T) {
		c := classify("idAutor", "Nombre", "Nacionalidad")
		assert.Equal(t, ClassAuthor, c.Class)
	})

	t.Run("libro signature", func(t *testing.T) {
		c := classify("IdLibro", "Titulo", "Genero", "Anno")
		assert.Equal(t, ClassBook, c.Class)
	})

	t.Run("club signature", func(t *testing.T) {
		c := classify("IdClub", "Nombre", "Ubicacion", "Tematica")
		assert.Equal(t, ClassClub, c.Class)
	})

	t.Run("extra columns are ignored", func(t *testing.T) {
		c := classify("id", "Nombre", "TipoLector", "Correo")
		assert.Equal(t, ClassPerson, c.Class)
	})

	t.Run("casing and whitespace do not matter", func(t *testing.T) {
		c := classify(" ID ", "nombre", "tipo lector")
		assert.Equal(t, ClassPerson, c.Class)
	})

	t.Run("node signature wins over relationship aliases", func(t *testing.T) {
		// id + idlibro alone would classify as a reads file, but the full
		// persona signature takes priority.
		c := classify("id", "Nombre", "TipoLector", "idLibro")
		assert.Equal(t, ClassPerson, c.Class)
	})
}

func TestClassify_Relationships(t *testing.T) {
	t.Run("autoria", func(t *testing.T) {
		c := classify("idAutor", "idLibro")
		assert.Equal(t, ClassWrote, c.Class)
		assert.Equal(t, "idautor", c.FromColumn)
		assert.Equal(t, "idlibro", c.ToColumn)
	})

	t.Run("lectura with bare id column", func(t *testing.T) {
		c := classify("id", "idLibro")
		assert.Equal(t, ClassReads, c.Class)
		assert.Equal(t, "id", c.FromColumn)
	})

	t.Run("recomendacion", func(t *testing.T) {
		c := classify("idClub", "idLibro")
		assert.Equal(t, ClassRecommends, c.Class)
	})

	t.Run("membresia", func(t *testing.T) {
		c := classify("idPersona", "idClub")
		assert.Equal(t, ClassBelongsTo, c.Class)
		assert.Equal(t, "idpersona", c.FromColumn)
		assert.Equal(t, "idclub", c.ToColumn)
	})

	t.Run("alias variants resolve", func(t *testing.T) {
		c := classify("autor_id", "libroid")
		assert.Equal(t, ClassWrote, c.Class)
		assert.Equal(t, "autor_id", c.FromColumn)
		assert.Equal(t, "libroid", c.ToColumn)
	})

	t.Run("autoria wins over lectura when both could match", func(t *testing.T) {
		// idautor and id both present with a book column: first signature
		// in the table decides.
		c := classify("idAutor", "id", "idLibro")
		assert.Equal(t, ClassWrote, c.Class)
	})
}

func TestClassify_Unrecognized(t *testing.T) {
	t.Run("unknown headers", func(t *testing.T) {
		c := classify("foo", "bar")
		assert.Equal(t, ClassUnrecognized, c.Class)
	})

	t.Run("incomplete node signature", func(t *testing.T) {
		c := classify("id", "Nombre")
		assert.Equal(t, ClassUnrecognized, c.Class)
	})

	t.Run("relationship with only one endpoint", func(t *testing.T) {
		c := classify("idAutor", "Nombre")
		assert.Equal(t, ClassUnrecognized, c.Class)
	})

	t.Run("empty header set", func(t *testing.T) {
		c := Classify(HeaderIndex{})
		assert.Equal(t, ClassUnrecognized, c.Class)
	})
}
