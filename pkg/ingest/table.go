package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is one parsed CSV file: its header index, the column position of each
// normalized header, and the data records.
type Table struct {
	Headers HeaderIndex
	Records [][]string

	// columns maps normalized header -> field position. Duplicate normalized
	// headers resolve last-write-wins, consistent with HeaderIndex.
	columns map[string]int
}

// ParseTable sniffs the delimiter and decodes the whole file. Records with a
// field count different from the header are kept as-is; missing trailing
// fields simply read as empty values.
func ParseTable(content string) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = DetectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file has no header row")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[NormalizeHeader(h)] = i
	}

	table := &Table{
		Headers: IndexHeaders(header),
		columns: columns,
	}

	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		table.Records = append(table.Records, record)
	}

	return table, nil
}

// Value returns the record's field under the given normalized header, or an
// empty string when the column is absent or the record is short.
func (t *Table) Value(record []string, normHeader string) string {
	pos, ok := t.columns[normHeader]
	if !ok || pos >= len(record) {
		return ""
	}
	return record[pos]
}
