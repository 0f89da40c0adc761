// Package column infers the type of a sampled column and flags the cells
// that do not fit it.
package column

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/currency"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/normalize"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/numfmt"
)

// Params tunes column analysis.
type Params struct {
	// SampleSize caps the number of sample entries inspected.
	SampleSize int
	// ConfidenceThreshold separates confident columns from mixed ones.
	ConfidenceThreshold float64
	// WindowRadius is the number of neighbours inspected on each side of
	// an off-type cell.
	WindowRadius int
}

// DefaultParams returns the standard analysis parameters.
func DefaultParams() Params {
	return Params{
		SampleSize:          100,
		ConfidenceThreshold: 0.8,
		WindowRadius:        3,
	}
}

// penalty is the confidence deduction per anomaly of each severity.
var penalty = map[models.Severity]float64{
	models.SeverityInfo:     0,
	models.SeverityWarning:  0.02,
	models.SeverityError:    0.05,
	models.SeverityCritical: 0.10,
}

// AnalyzeColumn analyzes one column sample with DefaultParams.
func AnalyzeColumn(columnIndex int, columnName string, sample []models.CellValue, formats []string, region *models.Region) models.ColumnAnalysisResult {
	return AnalyzeColumnWithParams(DefaultParams(), columnIndex, columnName, sample, formats, region)
}

// AnalyzeColumnWithParams analyzes one column sample. sample holds
// normalized values in row order; formats is either nil or parallel to
// sample. Empty values are skipped and do not count toward confidence.
//
// It panics when formats and sample have different lengths.
func AnalyzeColumnWithParams(params Params, columnIndex int, columnName string, sample []models.CellValue, formats []string, region *models.Region) models.ColumnAnalysisResult {
	if formats != nil && len(formats) != len(sample) {
		panic(fmt.Sprintf("column: %d formats for %d sample values", len(formats), len(sample)))
	}
	if params.SampleSize > 0 && len(sample) > params.SampleSize {
		sample = sample[:params.SampleSize]
		if formats != nil {
			formats = formats[:params.SampleSize]
		}
	}

	result := models.ColumnAnalysisResult{
		ColumnIndex:      columnIndex,
		ColumnName:       columnName,
		DetectedType:     models.DataTypeUnknown,
		TypeDistribution: make(map[models.DataType]int),
	}

	cells, cellFormats := classify(sample, formats)
	n := len(cells)
	result.SampleSize = n
	if n == 0 {
		return result
	}

	for _, c := range cells {
		result.TypeDistribution[c.dataType]++
	}

	dominant, count := dominantType(cells)
	if dominant == models.DataTypeUnknown {
		result.Anomalies = append(result.Anomalies, sentinelAnomalies(cells, region)...)
		result.Anomalies = append(result.Anomalies, models.CellAnomaly{
			RowIndex:     models.ColumnLevelRow,
			Severity:     models.SeverityCritical,
			Message:      "every sampled cell is a formula error",
			DetectedType: models.DataTypeUnknown,
			ExpectedType: models.DataTypeUnknown,
		})
		result.IsMixed = true
		return result
	}

	result.DetectedType = dominant
	result.TypeConfidence = float64(count) / float64(n)
	result.IsMixed = result.TypeConfidence < params.ConfidenceThreshold
	result.Anomalies = detectAnomalies(cells, dominant, result.TypeConfidence, params, region)

	switch found := currency.DetectMixedCurrencies(cellFormats); len(found) {
	case 0:
	case 1:
		result.Currency = &found[0]
	default:
		codes := make([]string, len(found))
		for i, ci := range found {
			codes[i] = ci.Code
		}
		result.Anomalies = append(result.Anomalies, models.CellAnomaly{
			RowIndex:     models.ColumnLevelRow,
			Severity:     models.SeverityWarning,
			Message:      "mixed currencies: " + strings.Join(codes, ", "),
			DetectedType: models.DataTypeCurrency,
			ExpectedType: dominant,
		})
	}

	result.AdjustedConfidence = adjust(result.TypeConfidence, result.Anomalies, n)
	return result
}

// sampledCell is a non-empty sample entry.
type sampledCell struct {
	// index is the position in the sample, empties included.
	index    int
	dataType models.DataType
	value    models.CellValue
	sentinel bool
}

// classify drops empty values and types the rest. It also returns the
// formats of the kept cells.
func classify(sample []models.CellValue, formats []string) ([]sampledCell, []string) {
	cells := make([]sampledCell, 0, len(sample))
	var kept []string
	for i, v := range sample {
		if v.IsEmpty() {
			continue
		}
		format := ""
		if formats != nil {
			format = formats[i]
		}
		c := sampledCell{index: i, value: v, dataType: cellType(v, format)}
		if s, ok := v.AsText(); ok && normalize.IsFormulaError(s) {
			c.sentinel = true
			c.dataType = models.DataTypeUnknown
		}
		cells = append(cells, c)
		kept = append(kept, format)
	}
	return cells, kept
}

// cellType maps a value and its format to a DataType. Currency and
// percentage come from the format; the value alone is a plain number.
func cellType(v models.CellValue, format string) models.DataType {
	switch v.Kind() {
	case models.KindText:
		return models.DataTypeText
	case models.KindBoolean:
		return models.DataTypeBoolean
	case models.KindDateTime:
		return models.DataTypeDateTime
	case models.KindInteger, models.KindNumber:
		if format != "" {
			if currency.IsCurrencyFormat(format) {
				return models.DataTypeCurrency
			}
			if numfmt.IsPercentFormat(format) {
				return models.DataTypePercentage
			}
		}
		if v.Kind() == models.KindInteger {
			return models.DataTypeInteger
		}
		return models.DataTypeNumber
	}
	return models.DataTypeUnknown
}

// dominantType returns the most frequent type, ignoring formula errors.
// Ties go to the type seen first.
func dominantType(cells []sampledCell) (models.DataType, int) {
	counts := make(map[models.DataType]int)
	var order []models.DataType
	for _, c := range cells {
		if c.sentinel {
			continue
		}
		if counts[c.dataType] == 0 {
			order = append(order, c.dataType)
		}
		counts[c.dataType]++
	}
	best, bestCount := models.DataTypeUnknown, 0
	for _, t := range order {
		if counts[t] > bestCount {
			best, bestCount = t, counts[t]
		}
	}
	return best, bestCount
}

// family groups integer and number together.
func family(t models.DataType) models.DataType {
	if t.IsNumeric() {
		return models.DataTypeNumber
	}
	return t
}

func detectAnomalies(cells []sampledCell, dominant models.DataType, confidence float64, params Params, region *models.Region) []models.CellAnomaly {
	var out []models.CellAnomaly
	for k, c := range cells {
		if c.sentinel {
			out = append(out, sentinelAnomaly(c, dominant, region))
			continue
		}
		if family(c.dataType) == family(dominant) {
			continue
		}

		own, best := windowCounts(cells, k, params.WindowRadius, family(c.dataType))
		a := models.CellAnomaly{
			RowIndex:     rowIndex(c.index, region),
			DetectedType: c.dataType,
			ExpectedType: dominant,
		}
		switch {
		case own > 0 && own >= best:
			a.Severity = models.SeverityInfo
			a.Message = fmt.Sprintf("%s value in %s column is consistent with its neighbours", c.dataType, dominant)
		case own == 0 && confidence >= params.ConfidenceThreshold:
			a.Severity = models.SeverityError
			a.Message = fmt.Sprintf("isolated %s value %q in %s column", c.dataType, c.value.String(), dominant)
		default:
			a.Severity = models.SeverityWarning
			a.Message = fmt.Sprintf("unexpected %s value %q in %s column", c.dataType, c.value.String(), dominant)
		}
		out = append(out, a)
	}
	return out
}

// windowCounts inspects up to radius cells on each side of cells[k]. It
// returns how many share fam and the largest count of any other family.
func windowCounts(cells []sampledCell, k, radius int, fam models.DataType) (own, bestOther int) {
	counts := make(map[models.DataType]int)
	for j := max(0, k-radius); j <= min(len(cells)-1, k+radius); j++ {
		if j == k || cells[j].sentinel {
			continue
		}
		counts[family(cells[j].dataType)]++
	}
	for t, c := range counts {
		if t == fam {
			own = c
		} else if c > bestOther {
			bestOther = c
		}
	}
	return own, bestOther
}

func sentinelAnomalies(cells []sampledCell, region *models.Region) []models.CellAnomaly {
	out := make([]models.CellAnomaly, 0, len(cells))
	for _, c := range cells {
		out = append(out, sentinelAnomaly(c, models.DataTypeUnknown, region))
	}
	return out
}

func sentinelAnomaly(c sampledCell, expected models.DataType, region *models.Region) models.CellAnomaly {
	s, _ := c.value.AsText()
	return models.CellAnomaly{
		RowIndex:     rowIndex(c.index, region),
		Severity:     models.SeverityError,
		Message:      "formula error " + strings.TrimSpace(s),
		DetectedType: models.DataTypeUnknown,
		ExpectedType: expected,
	}
}

func rowIndex(i int, region *models.Region) int {
	if region == nil {
		return i
	}
	return region.StartRow + i
}

// adjust subtracts the severity-weighted anomaly penalty from confidence.
func adjust(confidence float64, anomalies []models.CellAnomaly, n int) float64 {
	var sum float64
	for _, a := range anomalies {
		sum += penalty[a.Severity]
	}
	return max(0, confidence-sum/float64(n))
}
