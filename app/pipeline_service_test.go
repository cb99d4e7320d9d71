package app

import (
	"context"
	"testing"

	"acsward/domain/census"
	"acsward/domain/table"
	"acsward/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	grid [][]string
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context, query census.Query) ([][]string, error) {
	return f.grid, f.err
}

type recordingSink struct {
	runID   uuid.UUID
	columns []string
	rows    [][]string
	writes  int
}

func (s *recordingSink) Write(runID uuid.UUID, t *table.Table) error {
	s.runID = runID
	s.columns = t.Columns()
	s.rows = t.Rows()
	s.writes++
	return nil
}

func underFiveQuery() census.Query {
	return census.Query{
		Year:      "2019",
		Dataset:   "acs/acs5",
		Variables: census.UnderFiveVariables(),
		Geography: census.Geography{
			ForClause: census.UpperChamberDistricts,
			StateFIPS: "11",
		},
	}
}

func fixtureGrid() [][]string {
	return [][]string{
		{"B01001_003E", "B01001_027E", "state_leg_district", "state"},
		{"10", "20", "001", "11"},
		{"5", "7", "002", "11"},
	}
}

func TestRunProducesAggregatedDistrictTable(t *testing.T) {
	out := &recordingSink{}
	svc := NewPipelineService(&stubFetcher{grid: fixtureGrid()}, out)

	report, err := svc.Run(context.Background(), underFiveQuery())
	require.NoError(t, err)

	assert.Equal(t, 1, out.writes)
	assert.Equal(t, []string{"state_leg_district", "pop_under5"}, out.columns)
	assert.Equal(t, [][]string{{"001", "30"}, {"002", "12"}}, out.rows)
	assert.Equal(t, report.RunID, out.runID)
}

func TestRunRowCountMatchesDataRows(t *testing.T) {
	out := &recordingSink{}
	svc := NewPipelineService(&stubFetcher{grid: fixtureGrid()}, out)

	report, err := svc.Run(context.Background(), underFiveQuery())
	require.NoError(t, err)

	// One header row in, two data rows out.
	assert.Equal(t, len(fixtureGrid())-1, len(out.rows))
	assert.Equal(t, 2, report.Summary.Districts)
}

func TestRunDropsSexAndStateColumns(t *testing.T) {
	out := &recordingSink{}
	svc := NewPipelineService(&stubFetcher{grid: fixtureGrid()}, out)

	_, err := svc.Run(context.Background(), underFiveQuery())
	require.NoError(t, err)

	assert.NotContains(t, out.columns, "state")
	assert.NotContains(t, out.columns, "pop_under5_male")
	assert.NotContains(t, out.columns, "pop_under5_female")
}

func TestRunSummaryCapturesPreDropTotals(t *testing.T) {
	out := &recordingSink{}
	svc := NewPipelineService(&stubFetcher{grid: fixtureGrid()}, out)

	report, err := svc.Run(context.Background(), underFiveQuery())
	require.NoError(t, err)

	// 30 + 12 across both districts, i.e. male+female captured before the drop.
	assert.InDelta(t, 42.0, report.Summary.Total, 1e-9)
	assert.InDelta(t, 30.0, report.Summary.Max, 1e-9)
}

func TestRunAbortsOnFetchErrorBeforeWriting(t *testing.T) {
	out := &recordingSink{}
	fetchErr := errors.CensusAPIError("API returned status 404: error", nil)
	svc := NewPipelineService(&stubFetcher{err: fetchErr}, out)

	_, err := svc.Run(context.Background(), underFiveQuery())

	require.Error(t, err)
	assert.Equal(t, errors.CodeCensusAPI, errors.GetCode(err))
	assert.Zero(t, out.writes)
}

func TestRunAbortsOnSchemaMismatchBeforeWriting(t *testing.T) {
	grid := fixtureGrid()
	grid[0] = []string{"B01001_004E", "B01001_027E", "state_leg_district", "state"}
	out := &recordingSink{}
	svc := NewPipelineService(&stubFetcher{grid: grid}, out)

	_, err := svc.Run(context.Background(), underFiveQuery())

	require.Error(t, err)
	assert.Equal(t, errors.CodeSchemaMismatch, errors.GetCode(err))
	assert.Zero(t, out.writes)
}

func TestRunAbortsOnNonNumericValues(t *testing.T) {
	grid := fixtureGrid()
	grid[1][1] = "twenty"
	out := &recordingSink{}
	svc := NewPipelineService(&stubFetcher{grid: grid}, out)

	_, err := svc.Run(context.Background(), underFiveQuery())

	require.Error(t, err)
	assert.Equal(t, errors.CodeParseError, errors.GetCode(err))
	assert.Zero(t, out.writes)
}

func TestRunRequiresExactlyTwoVariables(t *testing.T) {
	query := underFiveQuery()
	query.Variables = query.Variables[:1]
	svc := NewPipelineService(&stubFetcher{grid: fixtureGrid()})

	_, err := svc.Run(context.Background(), query)

	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
