package models

import "fmt"

// MergedRange represents the cell bounds of a merged region.
type MergedRange struct {
	// StartRow is the first row (0-based).
	StartRow int `json:"start_row"`
	// EndRow is the last row (0-based, inclusive).
	EndRow int `json:"end_row"`
	// StartCol is the first column (0-based).
	StartCol int `json:"start_col"`
	// EndCol is the last column (0-based, inclusive).
	EndCol int `json:"end_col"`
}

// Validate panics when the range is inverted or negative.
func (r MergedRange) Validate() {
	if r.StartRow < 0 || r.StartCol < 0 || r.StartRow > r.EndRow || r.StartCol > r.EndCol {
		panic(fmt.Sprintf("models: invalid merged range %s", r))
	}
}

// Rows returns the number of rows spanned.
func (r MergedRange) Rows() int { return r.EndRow - r.StartRow + 1 }

// Cols returns the number of columns spanned.
func (r MergedRange) Cols() int { return r.EndCol - r.StartCol + 1 }

// Area returns the number of cells covered.
func (r MergedRange) Area() int { return r.Rows() * r.Cols() }

// Contains reports whether the cell at (row, col) lies in the range.
func (r MergedRange) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow && col >= r.StartCol && col <= r.EndCol
}

func (r MergedRange) String() string {
	return fmt.Sprintf("R%dC%d:R%dC%d", r.StartRow, r.StartCol, r.EndRow, r.EndCol)
}

// ComplexityLevel classifies how disruptive a sheet's merged cells are.
type ComplexityLevel string

const (
	// ComplexitySimple means every merge spans a single row.
	ComplexitySimple ComplexityLevel = "simple"
	// ComplexityComplex means at least one merge spans several rows.
	ComplexityComplex ComplexityLevel = "complex"
	// ComplexityChaos means merges cover too much of the sheet to interpret.
	ComplexityChaos ComplexityLevel = "chaos"
)

// MergeComplexityAnalysis summarizes the merged cells of a sheet.
type MergeComplexityAnalysis struct {
	Level ComplexityLevel `json:"level"`
	// MergedCellFraction is the summed range area over the grid size.
	MergedCellFraction float64 `json:"merged_cell_fraction"`
	RangeCount         int     `json:"range_count"`
}

func (a MergeComplexityAnalysis) String() string {
	return fmt.Sprintf("%s: %d merged ranges covering %.1f%% of cells", a.Level, a.RangeCount, a.MergedCellFraction*100)
}

// MergeWarning is an advisory raised while resolving merged cells.
type MergeWarning struct {
	Message    string                  `json:"message"`
	Complexity MergeComplexityAnalysis `json:"complexity"`
}
