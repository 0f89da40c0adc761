// Package parser reads raw cells, number formats and merged ranges from
// xlsx workbooks.
package parser

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/numfmt"
)

// EpochMode returns the date system of the workbook.
func EpochMode(f *excelize.File) models.DateEpochMode {
	props, err := f.GetWorkbookProps()
	if err == nil && props.Date1904 != nil && *props.Date1904 {
		return models.EpochModern1904
	}
	return models.EpochLegacy1900
}

// ReadSheet reads every cell of a sheet together with its number format,
// declared kind and the sheet's merged ranges.
func ReadSheet(f *excelize.File, sheetName string, mode models.DateEpochMode) (models.RawSheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.RawSheet{}, fmt.Errorf("read rows: %w", err)
	}

	formats := newFormatCache(f)
	cells := make([][]models.RawCell, len(rows))
	for rowIdx, row := range rows {
		cells[rowIdx] = make([]models.RawCell, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return models.RawSheet{}, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return models.RawSheet{}, fmt.Errorf("cell type of %s: %w", cellName, err)
			}
			kind := cellKind(cellType)
			cells[rowIdx][colIdx] = models.RawCell{
				Value:  parseValue(raw, kind),
				Format: formats.lookup(sheetName, cellName),
				Kind:   kind,
			}
		}
	}

	merged, err := ReadMergedRanges(f, sheetName)
	if err != nil {
		return models.RawSheet{}, err
	}

	return models.RawSheet{
		Name:         sheetName,
		Cells:        cells,
		MergedRanges: merged,
		EpochMode:    mode,
	}, nil
}

// cellKind maps an excelize cell type to a declared cell kind.
func cellKind(t excelize.CellType) models.CellKind {
	switch t {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		return models.CellKindNumeric
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return models.CellKindString
	case excelize.CellTypeBool:
		return models.CellKindBoolean
	case excelize.CellTypeDate:
		return models.CellKindDate
	case excelize.CellTypeError:
		return models.CellKindError
	default:
		// Formula string results have no declared type.
		return models.CellKindGeneral
	}
}

// parseValue turns a raw cell string into a raw CellValue. Numeric cells
// become Integer or Number; everything else stays Text for normalization.
func parseValue(s string, kind models.CellKind) models.CellValue {
	switch kind {
	case models.CellKindNumeric:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return models.Integer(i)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return models.Number(f)
		}
	case models.CellKindBoolean:
		switch s {
		case "1", "TRUE", "true":
			return models.Boolean(true)
		case "0", "FALSE", "false":
			return models.Boolean(false)
		}
	}
	return models.Text(s)
}

// formatCache resolves style ids to number format strings once per style.
type formatCache struct {
	f    *excelize.File
	byID map[int]string
}

func newFormatCache(f *excelize.File) *formatCache {
	return &formatCache{f: f, byID: make(map[int]string)}
}

// lookup returns the number format of a cell, "" when it has none.
func (c *formatCache) lookup(sheetName, cellName string) string {
	styleID, err := c.f.GetCellStyle(sheetName, cellName)
	if err != nil || styleID == 0 {
		return ""
	}
	if code, ok := c.byID[styleID]; ok {
		return code
	}
	code := ""
	if style, err := c.f.GetStyle(styleID); err == nil && style != nil {
		switch {
		case style.CustomNumFmt != nil:
			code = *style.CustomNumFmt
		case style.NumFmt != 0:
			code, _ = numfmt.BuiltIn(style.NumFmt)
		}
	}
	c.byID[styleID] = code
	return code
}
