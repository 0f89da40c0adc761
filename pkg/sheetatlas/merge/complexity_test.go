package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

// rangesCovering returns five non-overlapping ranges on a 10x10 grid: four
// 2x2 blocks plus one horizontal strip of lastWidth cells on row 6.
func rangesCovering(total int) []models.MergedRange {
	return []models.MergedRange{
		{StartRow: 0, EndRow: 1, StartCol: 0, EndCol: 1},
		{StartRow: 0, EndRow: 1, StartCol: 3, EndCol: 4},
		{StartRow: 3, EndRow: 4, StartCol: 0, EndCol: 1},
		{StartRow: 3, EndRow: 4, StartCol: 3, EndCol: 4},
		{StartRow: 6, EndRow: 6, StartCol: 0, EndCol: total - 16 - 1},
	}
}

func TestAnalyzeComplexityThreshold(t *testing.T) {
	tests := []struct {
		name  string
		cells int
		want  models.ComplexityLevel
	}{
		{"21 percent in five ranges", 21, models.ComplexityChaos},
		{"19 percent in five ranges", 19, models.ComplexityComplex},
		{"exactly 20 percent", 20, models.ComplexityComplex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AnalyzeComplexity(rangesCovering(tt.cells), 10, 10)
			assert.Equal(t, tt.want, a.Level)
			assert.Equal(t, 5, a.RangeCount)
			assert.InDelta(t, float64(tt.cells)/100, a.MergedCellFraction, 1e-9)
		})
	}
}

func TestAnalyzeComplexityLevels(t *testing.T) {
	horizontal := []models.MergedRange{
		{StartRow: 0, EndRow: 0, StartCol: 0, EndCol: 3},
		{StartRow: 0, EndRow: 0, StartCol: 4, EndCol: 7},
	}
	assert.Equal(t, models.ComplexitySimple, AnalyzeComplexity(horizontal, 20, 8).Level)

	vertical := append(horizontal, models.MergedRange{StartRow: 1, EndRow: 3, StartCol: 0, EndCol: 0})
	assert.Equal(t, models.ComplexityComplex, AnalyzeComplexity(vertical, 20, 8).Level)

	none := AnalyzeComplexity(nil, 20, 8)
	assert.Equal(t, models.ComplexitySimple, none.Level)
	assert.Zero(t, none.MergedCellFraction)

	// Many ranges but a small share stays below chaos.
	var many []models.MergedRange
	for row := 0; row < 6; row++ {
		many = append(many, models.MergedRange{StartRow: row, EndRow: row, StartCol: 0, EndCol: 1})
	}
	assert.Equal(t, models.ComplexitySimple, AnalyzeComplexity(many, 100, 10).Level)
}

func TestAnalyzeComplexityParams(t *testing.T) {
	ranges := rangesCovering(19)
	strict := Params{ChaosFraction: 0.10, ChaosMinRanges: 3}
	assert.Equal(t, models.ComplexityChaos, AnalyzeComplexityWithParams(strict, ranges, 10, 10).Level)
}

func TestAnalyzeComplexityEmptyGrid(t *testing.T) {
	a := AnalyzeComplexity(nil, 0, 0)
	assert.Equal(t, models.ComplexitySimple, a.Level)
	assert.Zero(t, a.MergedCellFraction)
}

func TestAnalyzeComplexityPanics(t *testing.T) {
	assert.Panics(t, func() { AnalyzeComplexity(nil, -1, 3) })
	assert.Panics(t, func() {
		AnalyzeComplexity([]models.MergedRange{{StartRow: 0, EndRow: 0, StartCol: 3, EndCol: 1}}, 5, 5)
	})
}
