package kafka

import (
	"encoding/json"
	"time"
)

// IncomingMessage wraps a raw Kafka message with parsed headers
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string

	// Trace context (extracted from Kafka headers)
	TraceParent string
	TraceState  string

	// Parsed content
	FileDrop *FileDropMessage
}

// FileDropMessage is a batch of CSV files dropped for ingestion. File content
// travels inline as UTF-8 text.
type FileDropMessage struct {
	BatchID string    `json:"batch_id,omitempty"`
	Files   []CSVFile `json:"files"`
}

// CSVFile is a single named CSV payload within a file drop
type CSVFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ParseFileDrop parses the message value as a file-drop message
func (m *IncomingMessage) ParseFileDrop() error {
	var msg FileDropMessage
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		return err
	}
	m.FileDrop = &msg
	return nil
}

// GetBatchID returns the batch ID from the payload, falling back to headers
func (m *IncomingMessage) GetBatchID() string {
	if m.FileDrop != nil && m.FileDrop.BatchID != "" {
		return m.FileDrop.BatchID
	}
	return m.Headers["batch_id"]
}

// FileMap returns the dropped files keyed by filename, the shape the
// ingestion pipeline consumes
func (m *IncomingMessage) FileMap() map[string]string {
	if m.FileDrop == nil {
		return nil
	}
	files := make(map[string]string, len(m.FileDrop.Files))
	for _, f := range m.FileDrop.Files {
		files[f.Name] = f.Content
	}
	return files
}
