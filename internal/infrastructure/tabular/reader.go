package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one record keyed by trimmed header column name. Missing columns
// simply read as the empty string.
type Row map[string]string

func (r Row) Get(column string) string {
	return r[column]
}

// RowReader yields rows of named fields from a file path. The ingestion
// pipeline depends on this narrow contract so sources can be swapped in
// tests; a missing file surfaces as fs.ErrNotExist via errors.Is.
type RowReader interface {
	Read(ctx context.Context, path string, fn func(Row) error) error
}

// CSVReader reads comma-separated files with a header row.
type CSVReader struct{}

func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

func (r *CSVReader) Read(ctx context.Context, path string, fn func(Row) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read header of %s: %w", path, err)
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row of %s: %w", path, err)
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			if column == "" || i >= len(record) {
				continue
			}
			row[column] = strings.TrimSpace(record[i])
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}
