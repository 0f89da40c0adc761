package sheetatlas

import "github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"

// findDataBounds returns the bounding box of non-empty cells with its
// density, or nil when the grid holds no data.
func findDataBounds(grid models.Grid) *models.DataBounds {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	if minRow < 0 {
		return nil
	}

	b := &models.DataBounds{StartRow: minRow, EndRow: maxRow, StartCol: minCol, EndCol: maxCol}
	total := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	b.Density = float64(countNonEmptyCells(grid, b)) / float64(total)
	return b
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(grid models.Grid, b *models.DataBounds) int {
	count := 0
	for rowIdx := b.StartRow; rowIdx <= b.EndRow && rowIdx < len(grid); rowIdx++ {
		row := grid[rowIdx]
		for colIdx := b.StartCol; colIdx <= b.EndCol && colIdx < len(row); colIdx++ {
			if !row[colIdx].IsEmpty() {
				count++
			}
		}
	}
	return count
}
