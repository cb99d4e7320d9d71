package app

import (
	"context"
	"log"

	"acsward/domain/census"
	"acsward/domain/table"
	"acsward/internal/errors"
	"acsward/internal/summary"

	"github.com/google/uuid"
)

// Fetcher retrieves the raw response grid for an ACS query.
type Fetcher interface {
	Fetch(ctx context.Context, query census.Query) ([][]string, error)
}

// Sink persists the final table somewhere: a CSV file, a workbook, a database.
type Sink interface {
	Write(runID uuid.UUID, t *table.Table) error
}

// PipelineService runs the five pipeline stages in strict sequence: build the
// query URL, fetch, shape, aggregate, write. Fully synchronous; each stage
// consumes the immutable output of the previous one.
type PipelineService struct {
	fetcher Fetcher
	sinks   []Sink
}

// NewPipelineService creates a pipeline over a fetcher and one or more sinks.
func NewPipelineService(fetcher Fetcher, sinks ...Sink) *PipelineService {
	return &PipelineService{fetcher: fetcher, sinks: sinks}
}

// RunReport describes a completed pipeline run.
type RunReport struct {
	RunID   uuid.UUID
	Columns []string
	Summary summary.Summary
}

// Run executes the pipeline for the given query and writes the final table to
// every configured sink. Any stage failure aborts the run before anything is
// written.
func (s *PipelineService) Run(ctx context.Context, query census.Query) (*RunReport, error) {
	if len(query.Variables) != 2 {
		return nil, errors.ConfigInvalid("under-5 aggregation requires exactly two variables (male, female)")
	}
	maleCol := query.Variables[0].Name
	femaleCol := query.Variables[1].Name

	runID := uuid.New()
	log.Printf("[pipeline] run %s: fetching %s/%s for state %s",
		runID, query.Year, query.Dataset, query.Geography.StateFIPS)

	raw, err := s.fetcher.Fetch(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "fetch stage failed")
	}

	t, err := table.FromRows(raw, table.Schema{Leading: query.Codes()})
	if err != nil {
		return nil, errors.Wrap(err, "shape stage failed")
	}
	t.Rename(query.Renames())

	male, err := t.NumericColumn(maleCol)
	if err != nil {
		return nil, errors.Wrap(err, "shape stage failed")
	}
	female, err := t.NumericColumn(femaleCol)
	if err != nil {
		return nil, errors.Wrap(err, "shape stage failed")
	}

	total := make([]int64, len(male))
	for i := range male {
		total[i] = male[i] + female[i]
	}
	runSummary := summary.Compute(male, female, total)

	if err := t.AppendIntColumn("pop_under5", total); err != nil {
		return nil, errors.Wrap(err, "aggregate stage failed")
	}
	if err := t.DropColumns("state", maleCol, femaleCol); err != nil {
		return nil, errors.Wrap(err, "aggregate stage failed")
	}

	for _, sink := range s.sinks {
		if err := sink.Write(runID, t); err != nil {
			return nil, errors.Wrap(err, "write stage failed")
		}
	}

	log.Printf("[pipeline] run %s: %s", runID, runSummary)
	return &RunReport{
		RunID:   runID,
		Columns: t.Columns(),
		Summary: runSummary,
	}, nil
}
