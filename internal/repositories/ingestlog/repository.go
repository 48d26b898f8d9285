// Package ingestlog persists an audit trail of heuristic ingestion batches.
package ingestlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/lecturia/bookgraph/internal/platform/tracing"
	"github.com/lecturia/bookgraph/pkg/models"
)

const tableName = "ingest_batches"

// Record is one stored batch outcome
type Record struct {
	BatchID       string          `db:"batch_id" json:"batch_id"`
	Summary       string          `db:"summary" json:"summary"`
	Persons       int             `db:"persons" json:"persons"`
	Authors       int             `db:"authors" json:"authors"`
	Books         int             `db:"books" json:"books"`
	Clubs         int             `db:"clubs" json:"clubs"`
	Relationships int             `db:"relationships" json:"relationships"`
	Unresolved    int             `db:"unresolved" json:"unresolved"`
	SkippedFiles  int             `db:"skipped_files" json:"skipped_files"`
	SkippedRows   int             `db:"skipped_rows" json:"skipped_rows"`
	FileErrors    json.RawMessage `db:"file_errors" json:"file_errors,omitempty"`
	StartedAt     time.Time       `db:"started_at" json:"started_at"`
	FinishedAt    time.Time       `db:"finished_at" json:"finished_at"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Repository stores and lists batch records
type Repository struct {
	db     *sqlx.DB
	logger ectologger.Logger
}

// NewRepository creates a new ingest log repository
func NewRepository(db *sqlx.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Save stores the outcome of a finished batch
func (r *Repository) Save(ctx context.Context, report *models.IngestReport) error {
	ctx, span := tracing.StartSpan(ctx, "IngestLogRepository.Save")
	defer span.End()

	fileErrors, err := json.Marshal(report.FileErrors)
	if err != nil {
		return fmt.Errorf("failed to encode file errors: %w", err)
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto(tableName)
	sb.Cols("batch_id", "summary", "persons", "authors", "books", "clubs",
		"relationships", "unresolved", "skipped_files", "skipped_rows",
		"file_errors", "started_at", "finished_at", "created_at")
	sb.Values(report.BatchID, report.Summary(), report.Persons, report.Authors,
		report.Books, report.Clubs, report.Relationships, report.Unresolved,
		report.SkippedFiles, report.SkippedRows, fileErrors,
		report.StartedAt, report.FinishedAt, time.Now().UTC())

	query, args := sb.Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to save ingest batch record")
		return fmt.Errorf("failed to save ingest batch record: %w", err)
	}

	r.logger.WithContext(ctx).WithField("batch_id", report.BatchID).Info("saved ingest batch record")
	return nil
}

// GetByID gets a batch record by batch ID
func (r *Repository) GetByID(ctx context.Context, batchID string) (*Record, error) {
	ctx, span := tracing.StartSpan(ctx, "IngestLogRepository.GetByID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("batch_id", "summary", "persons", "authors", "books", "clubs",
		"relationships", "unresolved", "skipped_files", "skipped_rows",
		"file_errors", "started_at", "finished_at", "created_at")
	sb.From(tableName)
	sb.Where(sb.Equal("batch_id", batchID))

	query, args := sb.Build()

	var rec Record
	if err := r.db.GetContext(ctx, &rec, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get ingest batch record")
		return nil, fmt.Errorf("failed to get ingest batch record: %w", err)
	}

	return &rec, nil
}

// List returns batch records newest first
func (r *Repository) List(ctx context.Context, page, pageSize int) ([]Record, error) {
	ctx, span := tracing.StartSpan(ctx, "IngestLogRepository.List")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("batch_id", "summary", "persons", "authors", "books", "clubs",
		"relationships", "unresolved", "skipped_files", "skipped_rows",
		"file_errors", "started_at", "finished_at", "created_at")
	sb.From(tableName)
	sb.OrderBy("created_at").Desc()
	sb.Limit(pageSize)
	sb.Offset((page - 1) * pageSize)

	query, args := sb.Build()

	records := []Record{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list ingest batch records")
		return nil, fmt.Errorf("failed to list ingest batch records: %w", err)
	}

	return records, nil
}
