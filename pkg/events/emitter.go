// Package events handles event emission for ingestion lifecycle changes
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/lecturia/bookgraph/internal/platform/tracing"
	"github.com/lecturia/bookgraph/pkg/kafka"
	"github.com/lecturia/bookgraph/pkg/models"
)

// Emitter publishes ingestion outcomes for downstream consumers
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitBatchReport emits the report of a finished ingestion batch. Emission is
// best effort; a publish failure never fails the batch itself.
func (e *Emitter) EmitBatchReport(ctx context.Context, report *models.IngestReport) {
	if e == nil || e.producer == nil {
		return
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitBatchReport")
	defer span.End()

	if err := e.producer.PublishBatchReport(ctx, report); err != nil {
		e.logger.WithContext(ctx).WithError(err).WithField("batch_id", report.BatchID).Error("Failed to emit batch report")
	}
}
