package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/lecturia/bookgraph/internal/platform/tracing"
	"github.com/lecturia/bookgraph/pkg/models"
)

// Producer handles Kafka event emission
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	topic  string
}

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	requiredAcks := kafka.RequiredAcks(cfg.RequiredAcks)

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           requiredAcks,
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// BatchCompletedEvent reports the outcome of one heuristic ingestion batch
type BatchCompletedEvent struct {
	EventType     string             `json:"event_type"` // batch.completed, batch.failed
	BatchID       string             `json:"batch_id"`
	Summary       string             `json:"summary"`
	Nodes         map[string]int     `json:"nodes"`
	Relationships int                `json:"relationships"`
	Unresolved    int                `json:"unresolved"`
	SkippedFiles  int                `json:"skipped_files"`
	SkippedRows   int                `json:"skipped_rows"`
	FileErrors    []models.FileError `json:"file_errors,omitempty"`
	DurationMs    int64              `json:"duration_ms"`
	Timestamp     time.Time          `json:"timestamp"`
}

// PublishBatchReport publishes the outcome of an ingestion batch
func (p *Producer) PublishBatchReport(ctx context.Context, report *models.IngestReport) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishBatchReport")
	defer span.End()

	eventType := "batch.completed"
	if len(report.FileErrors) > 0 {
		eventType = "batch.failed"
	}

	event := &BatchCompletedEvent{
		EventType: eventType,
		BatchID:   report.BatchID,
		Summary:   report.Summary(),
		Nodes: map[string]int{
			string(models.KindPerson): report.Persons,
			string(models.KindAuthor): report.Authors,
			string(models.KindBook):   report.Books,
			string(models.KindClub):   report.Clubs,
		},
		Relationships: report.Relationships,
		Unresolved:    report.Unresolved,
		SkippedFiles:  report.SkippedFiles,
		SkippedRows:   report.SkippedRows,
		FileErrors:    report.FileErrors,
		DurationMs:    report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
		Timestamp:     time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.BatchID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "batch_id", Value: []byte(event.BatchID)},
		},
	}
	if traceParent := tracing.GetTraceParent(ctx); traceParent != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "traceparent", Value: []byte(traceParent)})
		if traceState := tracing.GetTraceState(ctx); traceState != "" {
			msg.Headers = append(msg.Headers, kafka.Header{Key: "tracestate", Value: []byte(traceState)})
		}
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).Error("Failed to publish batch report")
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"event_type": event.EventType,
		"batch_id":   event.BatchID,
	}).Debug("Published batch report")

	return nil
}
