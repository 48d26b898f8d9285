package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecturia/bookgraph/pkg/models"
)

type recordingSink struct {
	saved []*models.IngestReport
	err   error
}

func (r *recordingSink) Save(ctx context.Context, report *models.IngestReport) error {
	r.saved = append(r.saved, report)
	return r.err
}

type recordingReporter struct {
	emitted []*models.IngestReport
}

func (r *recordingReporter) EmitBatchReport(ctx context.Context, report *models.IngestReport) {
	r.emitted = append(r.emitted, report)
}

func TestPipeline_FansOutReport(t *testing.T) {
	sink := &recordingSink{}
	reporter := &recordingReporter{}
	pipeline := NewPipeline(NewIngestor(newFakeStore(), testLogger()), sink, reporter, testLogger())

	report, err := pipeline.Process(context.Background(), map[string]string{
		"Persona.csv": "id;Nombre;TipoLector\n1;Ana;avido",
	})
	require.NoError(t, err)

	require.Len(t, sink.saved, 1)
	require.Len(t, reporter.emitted, 1)
	assert.Equal(t, report.BatchID, sink.saved[0].BatchID)
}

func TestPipeline_AuditFailureDoesNotFailBatch(t *testing.T) {
	sink := &recordingSink{err: errors.New("pg down")}
	pipeline := NewPipeline(NewIngestor(newFakeStore(), testLogger()), sink, nil, testLogger())

	report, err := pipeline.Process(context.Background(), map[string]string{
		"Persona.csv": "id;Nombre;TipoLector\n1;Ana;avido",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Persons)
}

func TestPipeline_BatchErrorSkipsFanOut(t *testing.T) {
	store := newFakeStore()
	store.schemaErr = ErrStorageUnavailable
	sink := &recordingSink{}
	pipeline := NewPipeline(NewIngestor(store, testLogger()), sink, nil, testLogger())

	_, err := pipeline.Process(context.Background(), map[string]string{
		"Persona.csv": "id;Nombre;TipoLector\n1;Ana;avido",
	})
	require.Error(t, err)
	assert.Empty(t, sink.saved)
}
