package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.census.gov/data", cfg.Census.BaseURL)
	assert.Equal(t, "2019", cfg.Census.Year)
	assert.Equal(t, "acs/acs5", cfg.Census.Dataset)
	assert.Equal(t, "11", cfg.Census.StateFIPS)
	assert.Equal(t, 30*time.Second, cfg.Census.Timeout)
	assert.Equal(t, "data", cfg.Output.BaseDir)
	assert.Equal(t, "acs_ward_under5_pop.csv", cfg.Output.Filename)
	assert.Empty(t, cfg.Output.ExcelFile)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("ACS_YEAR", "2022")
	t.Setenv("STATE_FIPS", "24")
	t.Setenv("HTTP_TIMEOUT", "10s")
	t.Setenv("OUTPUT_DIR", "out")
	t.Setenv("DATABASE_URL", "postgres://localhost/acs")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2022", cfg.Census.Year)
	assert.Equal(t, "24", cfg.Census.StateFIPS)
	assert.Equal(t, 10*time.Second, cfg.Census.Timeout)
	assert.Equal(t, "out", cfg.Output.BaseDir)
	assert.Equal(t, "postgres://localhost/acs", cfg.Database.URL)
}

func TestLoadRejectsNonNumericYear(t *testing.T) {
	t.Setenv("ACS_YEAR", "twenty-nineteen")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoadIgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Census.Timeout)
}
