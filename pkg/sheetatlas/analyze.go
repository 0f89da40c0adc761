package sheetatlas

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/column"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/merge"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/normalize"
)

// issueSeverity maps a normalization quality issue onto the error log scale.
var issueSeverity = map[models.DataQualityIssue]models.Severity{
	models.IssueExtraWhitespace:    models.SeverityInfo,
	models.IssueInvalidCharacters:  models.SeverityInfo,
	models.IssueInconsistentFormat: models.SeverityWarning,
	models.IssueDuplicateValue:     models.SeverityWarning,
	models.IssueTypeMismatch:       models.SeverityWarning,
	models.IssueOutOfRange:         models.SeverityWarning,
}

// AnalyzeSheet normalizes every cell of sheet, analyzes the columns of its
// data region and, when enabled, resolves merged ranges. Quality issues,
// anomalies and merge warnings are folded into the report's Errors.
func AnalyzeSheet(sheet models.RawSheet, opts Options) models.SheetReport {
	log := opts.logger().With(zap.String("sheet", sheet.Name))
	mode := sheet.EpochMode
	if mode == "" {
		mode = models.EpochLegacy1900
	}

	report := models.SheetReport{Name: sheet.Name}
	grid := make(models.Grid, len(sheet.Cells))
	for r, row := range sheet.Cells {
		grid[r] = make([]models.CellValue, len(row))
		for c, cell := range row {
			res := normalize.NormalizeCell(cell, mode)
			grid[r][c] = res.Value
			if !res.HasIssue() {
				continue
			}
			log.Debug("quality issue",
				zap.Int("row", r), zap.Int("column", c),
				zap.String("issue", string(res.QualityIssue)))
			report.Errors = append(report.Errors, models.ErrorEntry{
				Sheet:    sheet.Name,
				Row:      r,
				Column:   c,
				Severity: issueSeverity[res.QualityIssue],
				Source:   models.SourceNormalization,
				Message:  fmt.Sprintf("%s: %q", res.QualityIssue, cell.Value.String()),
			})
		}
	}

	report.Bounds = findDataBounds(grid)
	if report.Bounds != nil {
		report.Columns = analyzeColumns(sheet, grid, report.Bounds, opts, log)
		for _, col := range report.Columns {
			for _, a := range col.Anomalies {
				report.Errors = append(report.Errors, anomalyEntry(sheet.Name, col.ColumnIndex, a))
			}
		}
	}

	if len(sheet.MergedRanges) > 0 {
		rows, cols := grid.Dimensions()
		if opts.MergeEnabled {
			res := merge.Resolve(grid, sheet.MergedRanges, opts.Merge)
			grid = res.Grid
			report.MergeComplexity = &res.Complexity
			for _, w := range res.Warnings {
				log.Warn("merge warning", zap.String("complexity", w.Complexity.String()))
				report.Errors = append(report.Errors, models.ErrorEntry{
					Sheet:    sheet.Name,
					Row:      -1,
					Column:   -1,
					Severity: models.SeverityWarning,
					Source:   models.SourceMerge,
					Message:  w.Message,
				})
			}
		} else {
			complexity := merge.AnalyzeComplexityWithParams(mergeParams(opts.Merge), sheet.MergedRanges, rows, cols)
			report.MergeComplexity = &complexity
		}
	}

	if opts.ShouldIncludeRows() {
		report.Rows = grid
	}

	log.Info("sheet analyzed",
		zap.Int("columns", len(report.Columns)),
		zap.Int("merged_ranges", len(sheet.MergedRanges)),
		zap.Int("errors", len(report.Errors)))
	return report
}

// analyzeColumns runs column analysis over the data rows of bounds. The
// leading header rows name the columns.
func analyzeColumns(sheet models.RawSheet, grid models.Grid, b *models.DataBounds, opts Options, log *zap.Logger) []models.ColumnAnalysisResult {
	params := opts.Column
	if params == (column.Params{}) {
		params = column.DefaultParams()
	}
	limit := params.SampleSize
	// The sample handed over is a contiguous row slice; the cap applies to
	// its non-empty cells, so truncation is done here.
	params.SampleSize = 0

	headerRows := opts.Merge.HeaderRows
	dataStart := b.StartRow + headerRows
	if dataStart > b.EndRow+1 {
		dataStart = b.EndRow + 1
	}

	results := make([]models.ColumnAnalysisResult, 0, b.EndCol-b.StartCol+1)
	for col := b.StartCol; col <= b.EndCol; col++ {
		name := columnName(grid, b.StartRow, dataStart, col)

		var sample []models.CellValue
		var formats []string
		nonEmpty := 0
		for row := dataStart; row <= b.EndRow; row++ {
			if limit > 0 && nonEmpty >= limit {
				break
			}
			v := grid.At(row, col)
			sample = append(sample, v)
			formats = append(formats, rawFormat(sheet, row, col))
			if !v.IsEmpty() {
				nonEmpty++
			}
		}

		region := &models.Region{StartRow: dataStart, EndRow: dataStart + len(sample) - 1}
		result := column.AnalyzeColumnWithParams(params, col, name, sample, formats, region)
		if result.IsMixed && result.SampleSize > 0 {
			log.Debug("mixed column",
				zap.String("column", name),
				zap.Float64("confidence", result.TypeConfidence))
		}
		for _, a := range result.Anomalies {
			if a.RowIndex == models.ColumnLevelRow && a.DetectedType == models.DataTypeCurrency {
				log.Warn("mixed currencies", zap.String("column", name), zap.String("detail", a.Message))
			}
		}
		results = append(results, result)
	}
	return results
}

// columnName joins the header texts above dataStart, falling back to the
// column letter.
func columnName(grid models.Grid, headerStart, dataStart, col int) string {
	var parts []string
	for row := headerStart; row < dataStart; row++ {
		if v := grid.At(row, col); !v.IsEmpty() {
			parts = append(parts, v.String())
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return fmt.Sprintf("column_%d", col)
	}
	return name
}

func rawFormat(sheet models.RawSheet, row, col int) string {
	if row >= len(sheet.Cells) || col >= len(sheet.Cells[row]) {
		return ""
	}
	return sheet.Cells[row][col].Format
}

func anomalyEntry(sheetName string, col int, a models.CellAnomaly) models.ErrorEntry {
	cell, err := excelize.ColumnNumberToName(col + 1)
	if err == nil && a.RowIndex != models.ColumnLevelRow {
		cell, err = excelize.CoordinatesToCellName(col+1, a.RowIndex+1)
	}
	if err != nil {
		cell = fmt.Sprintf("column %d", col)
	}
	return models.ErrorEntry{
		Sheet:    sheetName,
		Row:      a.RowIndex,
		Column:   col,
		Severity: a.Severity,
		Source:   models.SourceColumnAnalysis,
		Message:  fmt.Sprintf("%s: %s", cell, a.Message),
	}
}

func mergeParams(o merge.Options) merge.Params {
	if o.Params == (merge.Params{}) {
		return merge.DefaultParams()
	}
	return o.Params
}
