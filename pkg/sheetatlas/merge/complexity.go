package merge

import (
	"fmt"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

// AnalyzeComplexity classifies ranges on a rows x cols grid with
// DefaultParams.
func AnalyzeComplexity(ranges []models.MergedRange, rows, cols int) models.MergeComplexityAnalysis {
	return AnalyzeComplexityWithParams(DefaultParams(), ranges, rows, cols)
}

// AnalyzeComplexityWithParams classifies ranges on a rows x cols grid.
// Chaos is checked first: a merged fraction above ChaosFraction with at
// least ChaosMinRanges ranges. Otherwise any multi-row range makes the
// layout Complex, and single-row merges alone are Simple.
//
// It panics on negative dimensions or an inverted range.
func AnalyzeComplexityWithParams(params Params, ranges []models.MergedRange, rows, cols int) models.MergeComplexityAnalysis {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("merge: negative grid dimensions %dx%d", rows, cols))
	}

	a := models.MergeComplexityAnalysis{Level: models.ComplexitySimple, RangeCount: len(ranges)}
	area, multiRow := 0, false
	for _, r := range ranges {
		r.Validate()
		area += r.Area()
		if r.Rows() > 1 {
			multiRow = true
		}
	}
	if total := rows * cols; total > 0 {
		a.MergedCellFraction = float64(area) / float64(total)
	}

	switch {
	case a.MergedCellFraction > params.ChaosFraction && a.RangeCount >= params.ChaosMinRanges:
		a.Level = models.ComplexityChaos
	case multiRow:
		a.Level = models.ComplexityComplex
	}
	return a
}
