package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/merge"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheetatlas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 100, cfg.Analysis.SampleSize)
	assert.InDelta(t, 0.8, cfg.Analysis.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 3, cfg.Analysis.WindowRadius)
	assert.True(t, cfg.Merge.Enabled)
	assert.Equal(t, "expand_value", cfg.Merge.Strategy)
	assert.Equal(t, 1, cfg.Merge.HeaderRows)
	assert.InDelta(t, 0.20, cfg.Merge.ChaosFraction, 1e-9)
	assert.Equal(t, 5, cfg.Merge.ChaosMinRanges)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Output.Pretty)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
analysis:
  sample_size: 50
merge:
  enabled: false
  strategy: Keep_Top_Left
  header_rows: 0
log:
  level: debug
output:
  pretty: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Analysis.SampleSize)
	assert.InDelta(t, 0.8, cfg.Analysis.ConfidenceThreshold, 1e-9)
	assert.False(t, cfg.Merge.Enabled)
	assert.Equal(t, "keep_top_left", cfg.Merge.Strategy)
	assert.Equal(t, 0, cfg.Merge.HeaderRows)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel())
	assert.True(t, cfg.Output.Pretty)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SHEETATLAS_SAMPLE_SIZE", "25")
	t.Setenv("SHEETATLAS_MERGE_STRATEGY", "flatten_to_string")

	path := writeConfig(t, "analysis:\n  sample_size: 50\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Analysis.SampleSize)
	assert.Equal(t, "flatten_to_string", cfg.Merge.Strategy)

	envOnly, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 25, envOnly.Analysis.SampleSize)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero sample", "analysis:\n  sample_size: 0\n"},
		{"threshold above one", "analysis:\n  confidence_threshold: 1.5\n"},
		{"unknown strategy", "merge:\n  strategy: spread\n"},
		{"unknown level", "log:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Merge.Strategy = "treat_as_header"
	cfg.Merge.HeaderRows = 2

	opts, err := cfg.Options(nil)
	require.NoError(t, err)
	assert.Equal(t, merge.TreatAsHeader, opts.Merge.Strategy)
	assert.Equal(t, 2, opts.Merge.HeaderRows)
	assert.True(t, opts.MergeEnabled)
	assert.Equal(t, 100, opts.Column.SampleSize)
	assert.Equal(t, merge.DefaultParams(), opts.Merge.Params)
}
