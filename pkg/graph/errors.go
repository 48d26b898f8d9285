package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"github.com/lecturia/bookgraph/pkg/ingest"
)

// classifyWriteError translates driver failures into the ingestion error
// taxonomy: connectivity failures abort the batch, constraint violations are
// fatal for the enclosing file only.
func classifyWriteError(err error) error {
	if err == nil {
		return nil
	}

	if neo4j.IsConnectivityError(err) {
		return fmt.Errorf("%w: %v", ingest.ErrStorageUnavailable, err)
	}

	var neoErr *db.Neo4jError
	if errors.As(err, &neoErr) && strings.Contains(neoErr.Code, "ConstraintValidationFailed") {
		return fmt.Errorf("%w: %v", ingest.ErrConstraintViolation, err)
	}

	return err
}
