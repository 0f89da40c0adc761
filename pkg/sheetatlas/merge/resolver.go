// Package merge resolves merged cell ranges of a sheet grid.
package merge

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

// Strategy selects how the cells of a merged range are filled.
type Strategy string

const (
	// ExpandValue copies the top-left value into every cell of the range.
	ExpandValue Strategy = "expand_value"
	// KeepTopLeft keeps the top-left value and empties the other cells.
	KeepTopLeft Strategy = "keep_top_left"
	// FlattenToString joins the non-empty texts of the range.
	FlattenToString Strategy = "flatten_to_string"
	// TreatAsHeader flattens ranges inside the header rows and expands the rest.
	TreatAsHeader Strategy = "treat_as_header"
)

// ParseStrategy maps a strategy name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case ExpandValue, KeepTopLeft, FlattenToString, TreatAsHeader:
		return s, nil
	case "":
		return ExpandValue, nil
	}
	return "", fmt.Errorf("unknown merge strategy %q", name)
}

// Params holds the chaos thresholds of complexity analysis.
type Params struct {
	// ChaosFraction is the merged-cell share above which a sheet may be chaos.
	ChaosFraction float64
	// ChaosMinRanges is the range count from which a sheet may be chaos.
	ChaosMinRanges int
}

// DefaultParams returns the standard chaos thresholds.
func DefaultParams() Params {
	return Params{ChaosFraction: 0.20, ChaosMinRanges: 5}
}

// Options configures Resolve.
type Options struct {
	Strategy Strategy
	// HeaderRows is the number of leading rows TreatAsHeader treats as header.
	HeaderRows int
	// Separator joins texts when flattening. Empty means a single space.
	Separator string
	Params    Params
}

// DefaultOptions returns ExpandValue with one header row.
func DefaultOptions() Options {
	return Options{
		Strategy:   ExpandValue,
		HeaderRows: 1,
		Separator:  " ",
		Params:     DefaultParams(),
	}
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	// Grid is the resolved copy of the input grid.
	Grid models.Grid
	// Warnings are advisories such as chaos-level complexity.
	Warnings   []models.MergeWarning
	Complexity models.MergeComplexityAnalysis
}

// Resolve applies ranges to a copy of grid; grid itself is not modified.
// Ranges are applied in order, so later ranges win where they overlap.
// Rows grow as needed to cover every range.
//
// It panics on an inverted range or an unknown strategy.
func Resolve(grid models.Grid, ranges []models.MergedRange, opts Options) Resolution {
	strategy := opts.Strategy
	if strategy == "" {
		strategy = ExpandValue
	}
	switch strategy {
	case ExpandValue, KeepTopLeft, FlattenToString, TreatAsHeader:
	default:
		panic(fmt.Sprintf("merge: unknown strategy %q", string(strategy)))
	}
	sep := opts.Separator
	if sep == "" {
		sep = " "
	}
	params := opts.Params
	if params == (Params{}) {
		params = DefaultParams()
	}

	for _, r := range ranges {
		r.Validate()
	}

	rows, cols := grid.Dimensions()
	for _, r := range ranges {
		rows, cols = max(rows, r.EndRow+1), max(cols, r.EndCol+1)
	}
	res := Resolution{
		Grid:       grid.Clone(),
		Complexity: AnalyzeComplexityWithParams(params, ranges, rows, cols),
	}
	if res.Complexity.Level == models.ComplexityChaos {
		res.Warnings = append(res.Warnings, models.MergeWarning{
			Message:    "merged cell layout is too complex for reliable interpretation",
			Complexity: res.Complexity,
		})
	}

	for _, r := range ranges {
		ensure(&res.Grid, r)
		switch strategy {
		case ExpandValue:
			fill(res.Grid, r, res.Grid[r.StartRow][r.StartCol])
		case KeepTopLeft:
			keepTopLeft(res.Grid, r)
		case FlattenToString:
			fill(res.Grid, r, flatten(res.Grid, r, sep))
		case TreatAsHeader:
			if r.EndRow < opts.HeaderRows {
				fill(res.Grid, r, flatten(res.Grid, r, sep))
			} else {
				fill(res.Grid, r, res.Grid[r.StartRow][r.StartCol])
			}
		}
	}
	return res
}

// ensure grows g so that every cell of r exists.
func ensure(g *models.Grid, r models.MergedRange) {
	for len(*g) <= r.EndRow {
		*g = append(*g, nil)
	}
	for row := r.StartRow; row <= r.EndRow; row++ {
		for len((*g)[row]) <= r.EndCol {
			(*g)[row] = append((*g)[row], models.Empty())
		}
	}
}

func fill(g models.Grid, r models.MergedRange, v models.CellValue) {
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			g[row][col] = v
		}
	}
}

func keepTopLeft(g models.Grid, r models.MergedRange) {
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			if row != r.StartRow || col != r.StartCol {
				g[row][col] = models.Empty()
			}
		}
	}
}

// flatten joins the canonical texts of the non-empty cells of r in row-major
// order. A single non-empty cell keeps its value; no content gives Empty.
func flatten(g models.Grid, r models.MergedRange, sep string) models.CellValue {
	var values []models.CellValue
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			if v := g[row][col]; !v.IsEmpty() {
				values = append(values, v)
			}
		}
	}
	switch len(values) {
	case 0:
		return models.Empty()
	case 1:
		return values[0]
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return models.Text(strings.Join(parts, sep))
}
