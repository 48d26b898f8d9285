package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltins(t *testing.T) {
	t.Run("lowercase", func(t *testing.T) {
		assert.Equal(t, "tipolector", Apply("TipoLector", "lowercase"))
	})

	t.Run("trim", func(t *testing.T) {
		assert.Equal(t, "id", Apply("  id \t", "trim"))
	})

	t.Run("strip_bom", func(t *testing.T) {
		assert.Equal(t, "id", Apply("\ufeffid", "strip_bom"))
		assert.Equal(t, "id", Apply("id", "strip_bom"))
	})

	t.Run("remove_whitespace", func(t *testing.T) {
		assert.Equal(t, "idautor", Apply("id autor", "remove_whitespace"))
	})

	t.Run("collapse_whitespace", func(t *testing.T) {
		assert.Equal(t, "Ana Solis", Apply("  Ana   Solis ", "collapse_whitespace"))
	})

	t.Run("digits_only", func(t *testing.T) {
		assert.Equal(t, "123", Apply("id-123", "digits_only"))
	})
}

func TestApply_UnknownNormalizer(t *testing.T) {
	assert.Equal(t, "value", Apply("value", "does_not_exist"))
}

func TestApplyChain(t *testing.T) {
	result := ApplyChain("\ufeff  Tipo Lector ", "strip_bom", "trim", "lowercase", "remove_whitespace")
	assert.Equal(t, "tipolector", result)
}

func TestRegister(t *testing.T) {
	Register("reverse_test", func(s string) string {
		runes := []rune(s)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes)
	})

	fn, ok := Get("reverse_test")
	assert.True(t, ok)
	assert.Equal(t, "cba", fn("abc"))
}
