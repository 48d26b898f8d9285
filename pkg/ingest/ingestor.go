// Package ingest implements the heuristic CSV ingestion engine: delimiter
// sniffing, header-signature classification, row validation, and idempotent
// reconciliation of entities and relationships into the graph.
package ingest

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/lecturia/bookgraph/internal/platform/rqctx"
	"github.com/lecturia/bookgraph/internal/platform/tracing"
	"github.com/lecturia/bookgraph/pkg/models"
)

// Ingestor drives a batch of uploaded files through classification,
// validation and upserting, producing an explicit report.
type Ingestor struct {
	store  Store
	logger ectologger.Logger
}

// NewIngestor creates a new batch ingestor.
func NewIngestor(store Store, logger ectologger.Logger) *Ingestor {
	return &Ingestor{
		store:  store,
		logger: logger,
	}
}

// Run processes a batch of decoded files. Files are processed independently:
// a malformed or unrecognized file is skipped with a warning and the batch
// continues. Node-classified files run to completion before any
// relationship-classified file so that later edges can resolve endpoints
// created earlier in the same batch.
//
// The returned report is always non-nil; a non-nil error means the batch
// aborted early (storage connectivity) and the report covers the progress
// made up to that point. Re-running the same batch is safe because every
// upsert is idempotent under its merge key.
func (i *Ingestor) Run(ctx context.Context, files map[string]string) (*models.IngestReport, error) {
	report := &models.IngestReport{
		BatchID:   uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	ctx = rqctx.SetBatchID(ctx, report.BatchID)

	ctx, span := tracing.StartSpan(ctx, "ingest.Ingestor.Run")
	defer span.End()

	log := i.logger.WithContext(ctx).WithField("batch_id", report.BatchID)

	// Schema objects are ensured exactly once per batch, before any file.
	if err := i.store.EnsureSchema(ctx); err != nil {
		report.FinishedAt = time.Now().UTC()
		return report, err
	}

	nodeFiles, relFiles := i.classifyBatch(ctx, files, report)

	for _, f := range nodeFiles {
		if err := i.processNodeFile(ctx, f, report); err != nil {
			report.FinishedAt = time.Now().UTC()
			return report, err
		}
	}
	for _, f := range relFiles {
		if err := i.processRelationshipFile(ctx, f, report); err != nil {
			report.FinishedAt = time.Now().UTC()
			return report, err
		}
	}

	report.FinishedAt = time.Now().UTC()
	log.WithFields(map[string]any{
		"summary":       report.Summary(),
		"skipped_files": report.SkippedFiles,
		"skipped_rows":  report.SkippedRows,
		"unresolved":    report.Unresolved,
	}).Info("Batch ingestion finished")

	return report, nil
}

// classifiedFile is one file that survived parsing and classification.
type classifiedFile struct {
	name           string
	table          *Table
	classification Classification
}

// classifyBatch parses and classifies every file, splitting the batch into a
// node pass and a relationship pass. File names are sorted so re-running a
// batch is deterministic.
func (i *Ingestor) classifyBatch(ctx context.Context, files map[string]string, report *models.IngestReport) (nodeFiles, relFiles []classifiedFile) {
	log := i.logger.WithContext(ctx)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		content := files[name]
		if content == "" {
			continue
		}

		table, err := ParseTable(content)
		if err != nil {
			log.WithError(err).WithField("filename", name).Warn("File could not be parsed, skipping")
			report.SkippedFiles++
			report.FileErrors = append(report.FileErrors, models.FileError{Filename: name, Reason: err.Error()})
			continue
		}

		c := Classify(table.Headers)
		if c.Class == ClassUnrecognized {
			log.WithField("filename", name).Warn("Unrecognized header signature, skipping file")
			report.SkippedFiles++
			continue
		}

		log.WithFields(map[string]any{
			"filename": name,
			"class":    c.Class.String(),
			"rows":     len(table.Records),
		}).Info("Classified file")

		f := classifiedFile{name: name, table: table, classification: c}
		if c.Class.IsNode() {
			nodeFiles = append(nodeFiles, f)
		} else {
			relFiles = append(relFiles, f)
		}
	}

	return nodeFiles, relFiles
}

// processNodeFile upserts every valid entity row of one file. Row failures
// skip the row; a constraint violation aborts the file; a storage
// connectivity failure aborts the batch by returning an error.
func (i *Ingestor) processNodeFile(ctx context.Context, f classifiedFile, report *models.IngestReport) error {
	ctx, span := tracing.StartSpan(ctx, "ingest.Ingestor.processNodeFile")
	defer span.End()

	log := i.logger.WithContext(ctx).WithFields(map[string]any{
		"filename": f.name,
		"class":    f.classification.Class.String(),
	})

	kind := f.classification.Class.EntityKind()
	before := report.NodeCount(kind)

	for _, record := range f.table.Records {
		node, skip := BuildNode(f.classification.Class, f.table, record)
		if skip != nil {
			log.WithField("reason", skip.Reason).Warn("Skipping row")
			report.SkippedRows++
			continue
		}
		if node.NumericID == nil {
			log.WithFields(map[string]any{
				"external_id": node.ExternalID,
			}).Warn("Row identifier is not numeric, merging by natural key")
		}
		if node.Kind == models.KindBook && node.Book.PublicationYear == nil {
			log.WithField("titulo", node.Book.Title).Warn("Libro row has non-numeric anno, created without añoPublicacion")
		}

		if err := i.store.UpsertNode(ctx, node); err != nil {
			if errors.Is(err, ErrStorageUnavailable) {
				return err
			}
			// Constraint violations (and any other write failure) are fatal
			// for the enclosing file but not for the batch.
			log.WithError(err).Error("Upsert failed, aborting file")
			report.FileErrors = append(report.FileErrors, models.FileError{Filename: f.name, Reason: err.Error()})
			return nil
		}
		report.CountNode(kind)
	}

	log.WithField("count", report.NodeCount(kind)-before).Info("Processed entity file")
	return nil
}

// processRelationshipFile merges every valid relationship row of one file.
// Unresolvable endpoints count separately and never create partial edges.
func (i *Ingestor) processRelationshipFile(ctx context.Context, f classifiedFile, report *models.IngestReport) error {
	ctx, span := tracing.StartSpan(ctx, "ingest.Ingestor.processRelationshipFile")
	defer span.End()

	log := i.logger.WithContext(ctx).WithFields(map[string]any{
		"filename": f.name,
		"class":    f.classification.Class.String(),
	})

	created := 0
	for _, record := range f.table.Records {
		rel, skip := BuildRelationship(f.classification, f.table, record)
		if skip != nil {
			log.WithField("reason", skip.Reason).Warn("Skipping row")
			report.SkippedRows++
			continue
		}

		resolved, err := i.store.MergeRelationship(ctx, rel)
		if err != nil {
			if errors.Is(err, ErrStorageUnavailable) {
				return err
			}
			log.WithError(err).Error("Relationship merge failed, aborting file")
			report.FileErrors = append(report.FileErrors, models.FileError{Filename: f.name, Reason: err.Error()})
			return nil
		}
		if !resolved {
			log.WithFields(map[string]any{
				"from_id": rel.FromID,
				"to_id":   rel.ToID,
				"kind":    string(rel.Kind),
			}).Warn("No endpoint match for relationship, skipping")
			report.Unresolved++
			continue
		}

		report.Relationships++
		created++
	}

	log.WithField("count", created).Info("Processed relationship file")
	return nil
}
