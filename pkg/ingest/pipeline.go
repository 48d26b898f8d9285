package ingest

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/lecturia/bookgraph/pkg/models"
)

// AuditSink persists finished batch reports
type AuditSink interface {
	Save(ctx context.Context, report *models.IngestReport) error
}

// Reporter publishes finished batch reports to downstream consumers
type Reporter interface {
	EmitBatchReport(ctx context.Context, report *models.IngestReport)
}

// Pipeline runs a batch through the ingestor and fans the report out to the
// audit sink and reporter. Both are optional; failures there never fail the
// batch.
type Pipeline struct {
	ingestor *Ingestor
	audit    AuditSink
	reporter Reporter
	logger   ectologger.Logger
}

// NewPipeline creates a new ingestion pipeline
func NewPipeline(ingestor *Ingestor, audit AuditSink, reporter Reporter, logger ectologger.Logger) *Pipeline {
	return &Pipeline{
		ingestor: ingestor,
		audit:    audit,
		reporter: reporter,
		logger:   logger,
	}
}

// Process ingests one batch of named CSV payloads
func (p *Pipeline) Process(ctx context.Context, files map[string]string) (*models.IngestReport, error) {
	report, err := p.ingestor.Run(ctx, files)
	if err != nil {
		return report, err
	}

	if p.audit != nil {
		if err := p.audit.Save(ctx, report); err != nil {
			p.logger.WithContext(ctx).WithError(err).WithField("batch_id", report.BatchID).Error("Failed to persist batch report")
		}
	}

	if p.reporter != nil {
		p.reporter.EmitBatchReport(ctx, report)
	}

	return report, nil
}
