package models

// Grid is a row-major sheet of cell values. Rows may have different lengths.
type Grid [][]CellValue

// Dimensions returns the number of rows and the widest row length.
func (g Grid) Dimensions() (rows, cols int) {
	for _, row := range g {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return len(g), cols
}

// At returns the value at (row, col), or Empty outside the grid.
func (g Grid) At(row, col int) CellValue {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Empty()
	}
	return g[row][col]
}

// Clone returns a copy of g that shares no row slices with it.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]CellValue(nil), row...)
	}
	return out
}
