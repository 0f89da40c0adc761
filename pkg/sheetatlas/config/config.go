// Package config loads CLI configuration from YAML with environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/column"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/merge"
)

// Config holds all configuration for the sheetatlas CLI.
// Environment variables override YAML values.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Merge    MergeConfig    `yaml:"merge"`
	Log      LogConfig      `yaml:"log"`
	Output   OutputConfig   `yaml:"output"`
}

// AnalysisConfig tunes column analysis.
type AnalysisConfig struct {
	SampleSize          int     `yaml:"sample_size" env:"SHEETATLAS_SAMPLE_SIZE" validate:"min=1"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold" env:"SHEETATLAS_CONFIDENCE_THRESHOLD" validate:"gte=0,lte=1"`
	WindowRadius        int     `yaml:"window_radius" env:"SHEETATLAS_WINDOW_RADIUS" validate:"min=0"`
}

// MergeConfig configures merged cell resolution.
type MergeConfig struct {
	Enabled    bool   `yaml:"enabled" env:"SHEETATLAS_MERGE_ENABLED"`
	Strategy   string `yaml:"strategy" env:"SHEETATLAS_MERGE_STRATEGY" validate:"oneof=expand_value keep_top_left flatten_to_string treat_as_header"`
	HeaderRows int    `yaml:"header_rows" env:"SHEETATLAS_HEADER_ROWS" validate:"min=0"`
	Separator  string `yaml:"separator" env:"SHEETATLAS_MERGE_SEPARATOR"`
	// ChaosFraction is the merged-cell share above which a sheet may be chaos.
	ChaosFraction  float64 `yaml:"chaos_fraction" env:"SHEETATLAS_CHAOS_FRACTION" validate:"gt=0,lte=1"`
	ChaosMinRanges int     `yaml:"chaos_min_ranges" env:"SHEETATLAS_CHAOS_MIN_RANGES" validate:"min=1"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level string `yaml:"level" env:"SHEETATLAS_LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// OutputConfig configures JSON output.
type OutputConfig struct {
	Pretty bool `yaml:"pretty" env:"SHEETATLAS_PRETTY"`
}

// Default returns the built-in configuration.
func Default() *Config {
	col := column.DefaultParams()
	mo := merge.DefaultOptions()
	return &Config{
		Analysis: AnalysisConfig{
			SampleSize:          col.SampleSize,
			ConfidenceThreshold: col.ConfidenceThreshold,
			WindowRadius:        col.WindowRadius,
		},
		Merge: MergeConfig{
			Enabled:        true,
			Strategy:       string(mo.Strategy),
			HeaderRows:     mo.HeaderRows,
			Separator:      mo.Separator,
			ChaosFraction:  mo.Params.ChaosFraction,
			ChaosMinRanges: mo.Params.ChaosMinRanges,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	// Defaults are filled in up front so that explicit zero values in the
	// file (enabled: false, header_rows: 0) survive.
	cfg := Default()

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.Merge.Strategy = strings.ToLower(strings.TrimSpace(cfg.Merge.Strategy))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var msgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LogLevel returns the configured zap level.
func (c *Config) LogLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Options converts the configuration into analysis options.
func (c *Config) Options(logger *zap.Logger) (sheetatlas.Options, error) {
	strategy, err := merge.ParseStrategy(c.Merge.Strategy)
	if err != nil {
		return sheetatlas.Options{}, err
	}
	return sheetatlas.Options{
		Column: column.Params{
			SampleSize:          c.Analysis.SampleSize,
			ConfidenceThreshold: c.Analysis.ConfidenceThreshold,
			WindowRadius:        c.Analysis.WindowRadius,
		},
		Merge: merge.Options{
			Strategy:   strategy,
			HeaderRows: c.Merge.HeaderRows,
			Separator:  c.Merge.Separator,
			Params: merge.Params{
				ChaosFraction:  c.Merge.ChaosFraction,
				ChaosMinRanges: c.Merge.ChaosMinRanges,
			},
		},
		MergeEnabled: c.Merge.Enabled,
		Logger:       logger,
	}, nil
}
