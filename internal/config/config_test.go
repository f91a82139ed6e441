package config_test

import (
	"testing"

	"github.com/signalnine/schedplot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMinimal(t *testing.T) {
	cfg, err := config.Load("../../testdata/minimal.yaml")
	require.NoError(t, err)
	require.Len(t, cfg.Setups, 1)
	assert.Equal(t, "setup", cfg.Setups[0].Pretty, "pretty name defaults to the setup name")
	assert.Equal(t, []string{"FCP", "DS"}, cfg.Schedulers)
	require.Len(t, cfg.Passes, 1)
	assert.Equal(t, "Job metrics", cfg.Passes[0].Title)
	assert.Equal(t, "./results", cfg.Results.Dir)
	assert.Equal(t, ".", cfg.Output.Dir)
}

func TestLoadFull(t *testing.T) {
	cfg, err := config.Load("../../testdata/full.yaml")
	require.NoError(t, err)
	assert.Len(t, cfg.Setups, 3)
	assert.Len(t, cfg.Traces, 3)
	assert.Equal(t, "./figures", cfg.Output.Dir)

	task, ok := cfg.Pass("task")
	require.True(t, ok)
	assert.Equal(t, []string{"EX", "WT", "TA"}, task.Labels())
	assert.Equal(t, []string{"execution", "waiting", "turnaround"}, task.Columns())
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestDefaultMatchesFullFixture(t *testing.T) {
	cfg, err := config.Load("../../testdata/full.yaml")
	require.NoError(t, err)
	def := config.Default()
	assert.Equal(t, def.Setups, cfg.Setups)
	assert.Equal(t, def.Traces, cfg.Traces)
	assert.Equal(t, def.Schedulers, cfg.Schedulers)
	assert.Equal(t, def.Passes, cfg.Passes)
}

func TestPassLookup(t *testing.T) {
	cfg := config.Default()
	job, ok := cfg.Pass("job")
	require.True(t, ok)
	assert.Equal(t, "job_metrics.csv", job.File)
	assert.Equal(t, []string{"critical_path", "waiting_time", "makespan"}, job.Columns())

	_, ok = cfg.Pass("nope")
	assert.False(t, ok)
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load("nonexistent.yaml")
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	_, err := config.Load("../../testdata/invalid.yaml")
	assert.Error(t, err)
}

func TestLoadDuplicateTrace(t *testing.T) {
	_, err := config.Load("../../testdata/duplicate.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadDuplicateMetric(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"../../testdata/duplicate-label.yaml", `metric label "WT": duplicate name`},
		{"../../testdata/duplicate-column.yaml", `metric column "execution": duplicate name`},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := config.Load(tt.file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
