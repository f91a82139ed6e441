package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/schedplot/internal/config"
	"github.com/signalnine/schedplot/internal/result"
	"github.com/signalnine/schedplot/internal/sentinel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectPasses(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{"empty selects all", nil, []string{"job", "task"}},
		{"single", []string{"task"}, []string{"task"}},
		{"keeps requested order", []string{"task", "job"}, []string{"task", "job"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectPasses(cfg, tt.names)
			require.NoError(t, err)
			var names []string
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	_, err := selectPasses(cfg, []string{"memory"})
	assert.True(t, errors.Is(err, sentinel.ErrUnknownPass))
}

func TestFilterSetups(t *testing.T) {
	setups := config.Default().Setups

	tests := []struct {
		name    string
		filter  []string
		want    int
		wantErr bool
	}{
		{"empty filter returns all", nil, 3, false},
		{"exact match", []string{"setup-distributed"}, 1, false},
		{"two matches", []string{"setup", "setup-distributed"}, 2, false},
		{"no match", []string{"setup-cloud"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filterSetups(setups, tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func writeResults(t *testing.T, cfg *config.Config, dir string) {
	t.Helper()
	for _, p := range cfg.Passes {
		header := strings.Join(p.Columns(), ",") + "\n"
		for _, s := range cfg.Setups {
			for _, tr := range cfg.Traces {
				for i, sched := range cfg.Schedulers {
					body := header
					for row := 1; row <= 4; row++ {
						body += fmt.Sprintf("%d,%d,%d\n", row*(i+1), row+i, row*10)
					}
					path := result.MetricsPath(dir, tr, s.Name, sched, p.File)
					require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
					require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
				}
			}
		}
	}
}

func TestRootRendersEveryPass(t *testing.T) {
	base := t.TempDir()
	resultsDir := filepath.Join(base, "results")
	outDir := filepath.Join(base, "out")
	writeResults(t, config.Default(), resultsDir)

	root := NewRootCmd()
	root.SetArgs([]string{"--results-dir", resultsDir, "--out-dir", outDir, "--parallel", "2"})
	require.NoError(t, root.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
	for _, setup := range []string{"setup", "setup-heterogeneous", "setup-distributed"} {
		for _, pass := range []string{"job", "task"} {
			assert.FileExists(t, filepath.Join(outDir, setup+"_"+pass+".pdf"))
		}
	}
}

func TestRenderSinglePass(t *testing.T) {
	base := t.TempDir()
	resultsDir := filepath.Join(base, "results")
	outDir := filepath.Join(base, "out")
	writeResults(t, config.Default(), resultsDir)

	root := NewRootCmd()
	root.SetArgs([]string{"render", "--pass", "task", "--setup", "setup", "--results-dir", resultsDir, "--out-dir", outDir})
	require.NoError(t, root.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "setup_task.pdf", entries[0].Name())
}

func TestRenderMissingResults(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"--results-dir", filepath.Join(t.TempDir(), "missing"), "--out-dir", t.TempDir()})
	root.SetErr(&strings.Builder{})
	assert.Error(t, root.Execute())
}

func TestListOutputsMatchRender(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	var buf strings.Builder
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"list", "--results-dir", "results", "--out-dir", outDir + "/"})
	require.NoError(t, root.Execute())

	got := buf.String()
	assert.Contains(t, got, "  "+filepath.Join(outDir, "setup_job.pdf")+"\n")
	assert.Contains(t, got, "  "+filepath.Join("results", "shell_setup_FCP", "job_metrics.csv")+"\n")
	assert.NotContains(t, got, "//")
}
