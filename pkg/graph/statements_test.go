package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecturia/bookgraph/pkg/models"
)

func TestStatementTables_Complete(t *testing.T) {
	for _, kind := range models.AllEntityKinds() {
		assert.Contains(t, mergeByID, kind)
		assert.Contains(t, createNode, kind)
		assert.Contains(t, endpointCandidates, kind)
	}

	t.Run("club has no natural key merge", func(t *testing.T) {
		assert.NotContains(t, mergeByNaturalKey, models.KindClub)
		assert.Contains(t, mergeByNaturalKey, models.KindPerson)
		assert.Contains(t, mergeByNaturalKey, models.KindAuthor)
		assert.Contains(t, mergeByNaturalKey, models.KindBook)
	})

	t.Run("every relationship kind has a merge statement", func(t *testing.T) {
		for _, kind := range []models.RelationshipKind{
			models.RelWrote, models.RelReads, models.RelRecommends, models.RelBelongsTo,
		} {
			require.Contains(t, mergeEdge, kind)
			assert.Contains(t, mergeEdge[kind], string(kind))
		}
	})
}

func TestStatementTables_Parameterized(t *testing.T) {
	// User data must only ever travel through parameters; the statement text
	// itself is fixed.
	all := []string{}
	for _, stmt := range mergeByID {
		all = append(all, stmt)
	}
	for _, stmt := range mergeByNaturalKey {
		all = append(all, stmt)
	}
	for _, stmt := range mergeEdge {
		all = append(all, stmt)
	}
	for _, stmts := range resolveStatements {
		all = append(all, stmts...)
	}

	for _, stmt := range all {
		assert.Contains(t, stmt, "$", stmt)
		assert.NotContains(t, stmt, "%s", stmt)
		assert.NotContains(t, stmt, "%v", stmt)
	}
}

func TestResolveStatements(t *testing.T) {
	t.Run("one statement per candidate property", func(t *testing.T) {
		for kind, props := range endpointCandidates {
			assert.Len(t, resolveStatements[kind], len(props), string(kind))
		}
	})

	t.Run("numeric surrogate is tried first", func(t *testing.T) {
		first := resolveStatements[models.KindClub][0]
		assert.Contains(t, first, "toString(n.id)")
		assert.True(t, strings.Contains(first, "(n:Club)"))
	})

	t.Run("comparison is on string form", func(t *testing.T) {
		for _, stmts := range resolveStatements {
			for _, stmt := range stmts {
				assert.Contains(t, stmt, "toString(n.")
			}
		}
	})
}
