// Package sheetatlas derives typed, quality-annotated data from spreadsheet
// sheets: it normalizes cells, analyzes columns and resolves merged ranges.
package sheetatlas

import (
	"go.uber.org/zap"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/column"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/merge"
)

// Options configures sheet analysis.
type Options struct {
	// Column tunes column type inference.
	Column column.Params
	// Merge configures merged cell resolution. Merge.HeaderRows is also the
	// number of rows used for column names.
	Merge merge.Options
	// MergeEnabled turns merged cell resolution on.
	MergeEnabled bool
	// IncludeRows specifies whether reports carry the normalized grid.
	// If nil, defaults to true.
	IncludeRows *bool
	// Workers caps the number of sheets analyzed at once; 0 means one per CPU.
	Workers int
	// Logger receives progress and warnings. If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultOptions returns default analysis options.
func DefaultOptions() Options {
	return Options{
		Column:       column.DefaultParams(),
		Merge:        merge.DefaultOptions(),
		MergeEnabled: true,
	}
}

// ShouldIncludeRows returns whether reports carry the normalized grid.
func (o Options) ShouldIncludeRows() bool {
	if o.IncludeRows != nil {
		return *o.IncludeRows
	}
	return true
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
