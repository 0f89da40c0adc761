package models

// DataType is the inferred type of a column or of a single sampled cell.
type DataType string

const (
	DataTypeText       DataType = "text"
	DataTypeInteger    DataType = "integer"
	DataTypeNumber     DataType = "number"
	DataTypeDateTime   DataType = "datetime"
	DataTypeBoolean    DataType = "boolean"
	DataTypeCurrency   DataType = "currency"
	DataTypePercentage DataType = "percentage"
	DataTypeUnknown    DataType = "unknown"
)

// IsNumeric reports whether t belongs to the integer/number family.
func (t DataType) IsNumeric() bool {
	return t == DataTypeInteger || t == DataTypeNumber
}

// Severity is the shared severity scale for anomalies and error log entries.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Rank orders severities from Info (0) to Critical (3).
func (s Severity) Rank() int {
	switch s {
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 0
	}
}

// ColumnLevelRow is the row index of anomalies that concern a whole column.
const ColumnLevelRow = -1

// CellAnomaly is one suspicious cell (or column) found by column analysis.
type CellAnomaly struct {
	// RowIndex is the sheet row (or sample index without a region);
	// ColumnLevelRow for column-wide findings.
	RowIndex int `json:"row_index"`
	// Severity of the finding.
	Severity Severity `json:"severity"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// DetectedType is the type of the cell.
	DetectedType DataType `json:"detected_type"`
	// ExpectedType is the dominant type of the column.
	ExpectedType DataType `json:"expected_type"`
}

// Region locates a column sample within its sheet.
type Region struct {
	// StartRow is the 0-based sheet row of sample index 0.
	StartRow int `json:"start_row"`
	// EndRow is the last 0-based sheet row covered by the sample.
	EndRow int `json:"end_row"`
}

// ColumnAnalysisResult describes one analyzed column.
type ColumnAnalysisResult struct {
	ColumnIndex int    `json:"column_index"`
	ColumnName  string `json:"column_name"`
	// DetectedType is the mode of TypeDistribution.
	DetectedType DataType `json:"detected_type"`
	// TypeConfidence is count(DetectedType) / SampleSize, 0 for an empty sample.
	TypeConfidence float64 `json:"type_confidence"`
	// AdjustedConfidence is TypeConfidence minus the anomaly penalty, floored at 0.
	AdjustedConfidence float64 `json:"adjusted_confidence"`
	// IsMixed is set when TypeConfidence is below the confidence threshold.
	IsMixed bool `json:"is_mixed"`
	// Currency is set when the sampled formats agree on one currency.
	Currency *CurrencyInfo `json:"currency,omitempty"`
	// TypeDistribution counts sampled non-empty cells per type.
	TypeDistribution map[DataType]int `json:"type_distribution"`
	// Anomalies in sample order, column-level findings last.
	Anomalies []CellAnomaly `json:"anomalies,omitempty"`
	// SampleSize is the number of non-empty cells analyzed.
	SampleSize int `json:"sample_size"`
}
