// Package sink contains the output adapters the pipeline can write the final
// table to: CSV (always), Excel and Postgres (optional).
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"acsward/domain/table"
	"acsward/internal/errors"

	"github.com/google/uuid"
)

// CSVSink writes the final table as comma-separated UTF-8 text with a header
// row and no index column. The target directory must already exist; a missing
// directory surfaces as a write error rather than being created silently.
type CSVSink struct {
	baseDir  string
	filename string
}

// NewCSVSink creates a CSV sink targeting baseDir/filename.
func NewCSVSink(baseDir, filename string) *CSVSink {
	return &CSVSink{baseDir: baseDir, filename: filename}
}

// Path returns the target file path.
func (s *CSVSink) Path() string {
	return filepath.Join(s.baseDir, s.filename)
}

// Write creates or overwrites the target file. Output is deterministic for a
// given table, so reruns over identical input produce byte-identical files.
func (s *CSVSink) Write(runID uuid.UUID, t *table.Table) error {
	path := s.Path()

	f, err := os.Create(path)
	if err != nil {
		return errors.WriteError(fmt.Sprintf("failed to create %s", path), err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns()); err != nil {
		f.Close()
		return errors.WriteError("failed to write header row", err)
	}
	for _, row := range t.Rows() {
		if err := w.Write(row); err != nil {
			f.Close()
			return errors.WriteError("failed to write data row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return errors.WriteError(fmt.Sprintf("failed to flush %s", path), err)
	}
	if err := f.Close(); err != nil {
		return errors.WriteError(fmt.Sprintf("failed to close %s", path), err)
	}
	return nil
}
