package ingest

import (
	"context"
	"errors"

	"github.com/lecturia/bookgraph/pkg/models"
)

// Store is the graph-side contract the batch orchestrator writes through.
// Each call is an independent atomic operation; the batch never wraps them in
// one transaction, which is safe because every operation is idempotent under
// its merge key.
type Store interface {
	// EnsureSchema creates uniqueness constraints and indexes if absent.
	EnsureSchema(ctx context.Context) error

	// UpsertNode creates or merges one entity, keyed by its numeric surrogate
	// when present, else its natural key, else unconditional creation.
	UpsertNode(ctx context.Context, node *models.Node) error

	// MergeRelationship resolves both endpoints and MERGEs the typed edge.
	// resolved=false means at least one endpoint matched no node by any
	// strategy; no partial relationship is ever created.
	MergeRelationship(ctx context.Context, rel *models.Relationship) (resolved bool, err error)
}

// ErrStorageUnavailable marks connectivity failures against the graph store.
// Store implementations wrap such errors with it; the orchestrator aborts the
// whole batch when it sees one.
var ErrStorageUnavailable = errors.New("graph storage unavailable")

// ErrConstraintViolation marks a uniqueness-constraint violation during a
// node merge. It signals a defect in identity resolution rather than bad
// input, so it is fatal for the enclosing file, never silently swallowed.
var ErrConstraintViolation = errors.New("uniqueness constraint violated")
