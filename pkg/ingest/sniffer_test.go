package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDelimiter(t *testing.T) {
	t.Run("tab wins over semicolon and comma", func(t *testing.T) {
		delim := DetectDelimiter("id\tNombre;TipoLector,extra\n1\tAna;avido,x")
		assert.Equal(t, DelimiterTab, delim)
	})

	t.Run("semicolon wins over comma", func(t *testing.T) {
		delim := DetectDelimiter("id;Nombre,TipoLector\n1;Ana,avido")
		assert.Equal(t, DelimiterSemicolon, delim)
	})

	t.Run("comma when nothing else present", func(t *testing.T) {
		delim := DetectDelimiter("id,Nombre,TipoLector\n1,Ana,avido")
		assert.Equal(t, DelimiterComma, delim)
	})

	t.Run("only the first line is inspected", func(t *testing.T) {
		delim := DetectDelimiter("id,Nombre\n1;Ana")
		assert.Equal(t, DelimiterComma, delim)
	})

	t.Run("single column falls back to tab", func(t *testing.T) {
		delim := DetectDelimiter("id\n1\n2")
		assert.Equal(t, DelimiterTab, delim)
	})

	t.Run("empty content falls back to tab", func(t *testing.T) {
		assert.Equal(t, DelimiterTab, DetectDelimiter(""))
	})
}
