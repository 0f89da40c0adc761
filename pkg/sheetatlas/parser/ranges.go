package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

// ReadMergedRanges returns the merged regions of a sheet as 0-based ranges.
func ReadMergedRanges(f *excelize.File, sheetName string) ([]models.MergedRange, error) {
	cells, err := f.GetMergeCells(sheetName, true)
	if err != nil {
		return nil, fmt.Errorf("read merged cells: %w", err)
	}

	ranges := make([]models.MergedRange, 0, len(cells))
	for _, mc := range cells {
		r, err := ParseRangeRef(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// ParseRangeRef parses a reference such as "A1:D10", "$A$1:$D$10" or
// "'Sheet 1'!B2:C3" into a 0-based range. A single cell ("B2") is a 1x1
// range. Corners may be given in any order.
func ParseRangeRef(ref string) (models.MergedRange, error) {
	s := strings.TrimSpace(ref)
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.ReplaceAll(s, "$", "")

	parts := strings.Split(s, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.MergedRange{}, fmt.Errorf("invalid range reference %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.MergedRange{}, fmt.Errorf("invalid range reference %q: %w", ref, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.MergedRange{}, fmt.Errorf("invalid range reference %q: %w", ref, err)
	}

	return models.MergedRange{
		StartRow: min(startRow, endRow) - 1,
		EndRow:   max(startRow, endRow) - 1,
		StartCol: min(startCol, endCol) - 1,
		EndCol:   max(startCol, endCol) - 1,
	}, nil
}

// FormatRangeRef renders a 0-based range as an A1-style reference.
func FormatRangeRef(r models.MergedRange) string {
	start, _ := excelize.CoordinatesToCellName(r.StartCol+1, r.StartRow+1)
	end, _ := excelize.CoordinatesToCellName(r.EndCol+1, r.EndRow+1)
	return start + ":" + end
}
