// Package normalize converts raw cell content into typed values with
// data-quality metadata.
//
// Normalization never fails on business data. Ambiguous or malformed input
// yields a best-effort value and a DataQualityIssue.
package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/currency"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/numfmt"
)

// formulaErrors are the sentinel strings Excel writes for failed formulas.
var formulaErrors = map[string]bool{
	"#REF!":   true,
	"#VALUE!": true,
	"#DIV/0!": true,
	"#N/A":    true,
	"#NAME?":  true,
	"#NULL!":  true,
	"#NUM!":   true,
}

// IsFormulaError reports whether s is a formula error sentinel.
func IsFormulaError(s string) bool {
	return formulaErrors[strings.ToUpper(strings.TrimSpace(s))]
}

// maxExactInteger bounds floats that convert to int64 without loss.
const maxExactInteger = 1 << 53

// Normalize converts one raw value into a typed value. format is the Excel
// number format ("" for none). An empty kind means general and an empty mode
// means the legacy 1900 epoch.
func Normalize(raw models.CellValue, format string, kind models.CellKind, mode models.DateEpochMode) models.NormalizationResult {
	kind = checkKind(kind)
	mode = checkMode(mode)

	n := normalizer{format: format, kind: kind, mode: mode}
	if format != "" {
		n.info = numfmt.Parse(format)
	}

	value, issue := n.run(raw)
	return models.NormalizationResult{Value: value, Original: raw, QualityIssue: issue}
}

// NormalizeCell normalizes a reader cell.
func NormalizeCell(cell models.RawCell, mode models.DateEpochMode) models.NormalizationResult {
	return Normalize(cell.Value, cell.Format, cell.Kind, mode)
}

// NormalizeBatch normalizes cells in order with a shared epoch mode.
func NormalizeBatch(cells []models.RawCell, mode models.DateEpochMode) []models.NormalizationResult {
	out := make([]models.NormalizationResult, len(cells))
	for i, c := range cells {
		out[i] = NormalizeCell(c, mode)
	}
	return out
}

type normalizer struct {
	format string
	info   numfmt.Info
	kind   models.CellKind
	mode   models.DateEpochMode
}

func (n normalizer) run(raw models.CellValue) (models.CellValue, models.DataQualityIssue) {
	switch raw.Kind() {
	case models.KindEmpty:
		return models.Empty(), models.IssueNone
	case models.KindText:
		s, _ := raw.AsText()
		return n.text(s)
	case models.KindInteger:
		i, _ := raw.AsInteger()
		if n.kind == models.CellKindBoolean {
			return models.Boolean(i != 0), models.IssueNone
		}
		if !n.wantsDate() && !n.info.Percent && !currency.IsCurrencyFormat(n.format) {
			return raw, models.IssueNone
		}
		return n.number(float64(i))
	case models.KindNumber:
		f, _ := raw.AsNumber()
		if n.kind == models.CellKindBoolean {
			return models.Boolean(f != 0), models.IssueNone
		}
		return n.number(f)
	default:
		// Boolean and DateTime values are already typed.
		return raw, models.IssueNone
	}
}

func (n normalizer) wantsDate() bool {
	return n.info.Date || n.kind == models.CellKindDate
}

// number types a numeric value according to the format.
func (n normalizer) number(f float64) (models.CellValue, models.DataQualityIssue) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return models.Empty(), models.IssueOutOfRange
	}
	if n.wantsDate() {
		if t, ok := serialToTime(f, n.mode); ok {
			return models.DateTime(t), models.IssueNone
		}
		return models.Number(f), models.IssueOutOfRange
	}
	if n.info.Percent || currency.IsCurrencyFormat(n.format) {
		return models.Number(f), models.IssueNone
	}
	if f == math.Trunc(f) && n.info.DecimalPlaces == 0 && math.Abs(f) < maxExactInteger {
		return models.Integer(int64(f)), models.IssueNone
	}
	return models.Number(f), models.IssueNone
}

// text runs the text pipeline: clean, then try boolean, number and date.
func (n normalizer) text(s string) (models.CellValue, models.DataQualityIssue) {
	cleaned, issue := cleanText(s)
	if cleaned == "" {
		return models.Empty(), issue
	}
	if n.info.Text || n.kind == models.CellKindError || IsFormulaError(cleaned) {
		return models.Text(cleaned), issue
	}
	if b, ok := parseBoolean(cleaned); ok {
		return models.Boolean(b), issue
	}
	if isNonFinite(cleaned) {
		return models.Empty(), models.IssueOutOfRange
	}

	if res, ok := parseNumber(cleaned, hintFrom(currency.DetectCurrency(n.format)), n.info.Percent); ok {
		if res.outOfRange {
			return models.Empty(), models.IssueOutOfRange
		}
		if n.wantsDate() {
			if f, isNum := serialOf(res.value); isNum {
				v, dateIssue := n.number(f)
				return v, firstIssue(dateIssue, issue)
			}
		}
		return res.value, issue
	}

	if m, ok := parseDate(cleaned, n.info.Date && n.info.DayFirst); ok {
		if m.ambiguous {
			return models.DateTime(m.t), models.IssueInconsistentFormat
		}
		return models.DateTime(m.t), issue
	}

	if n.kind == models.CellKindNumeric || n.kind == models.CellKindDate {
		return models.Empty(), models.IssueTypeMismatch
	}
	return models.Text(cleaned), issue
}

func serialOf(v models.CellValue) (float64, bool) {
	if i, ok := v.AsInteger(); ok {
		return float64(i), true
	}
	return v.AsNumber()
}

func firstIssue(issues ...models.DataQualityIssue) models.DataQualityIssue {
	for _, i := range issues {
		if i != models.IssueNone {
			return i
		}
	}
	return models.IssueNone
}

func checkKind(k models.CellKind) models.CellKind {
	switch k {
	case "":
		return models.CellKindGeneral
	case models.CellKindGeneral, models.CellKindNumeric, models.CellKindString,
		models.CellKindBoolean, models.CellKindDate, models.CellKindError:
		return k
	}
	panic(fmt.Sprintf("normalize: unknown cell kind %q", string(k)))
}

func checkMode(m models.DateEpochMode) models.DateEpochMode {
	switch m {
	case "":
		return models.EpochLegacy1900
	case models.EpochLegacy1900, models.EpochModern1904:
		return m
	}
	panic(fmt.Sprintf("normalize: unknown date epoch mode %q", string(m)))
}
