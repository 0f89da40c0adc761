package models

// CellKind is the cell type declared by the reader for a raw cell.
type CellKind string

const (
	// CellKindGeneral is a cell without a declared type.
	CellKindGeneral CellKind = "general"
	// CellKindNumeric is a numeric cell, possibly a date serial.
	CellKindNumeric CellKind = "numeric"
	// CellKindString is a shared or inline string cell.
	CellKindString CellKind = "string"
	// CellKindBoolean is a boolean cell.
	CellKindBoolean CellKind = "boolean"
	// CellKindDate is a cell the reader already knows holds a date.
	CellKindDate CellKind = "date"
	// CellKindError is a cell holding a formula error.
	CellKindError CellKind = "error"
)

// DateEpochMode selects how numeric date serials are interpreted.
type DateEpochMode string

const (
	// EpochLegacy1900 counts days from 1899-12-31 and reproduces the
	// fictitious 1900-02-29 of serial 60.
	EpochLegacy1900 DateEpochMode = "legacy_1900"
	// EpochModern1904 counts days from 1904-01-01.
	EpochModern1904 DateEpochMode = "modern_1904"
)

// EpochOffsetDays is the distance in days between the two epochs.
const EpochOffsetDays = 1462

// DataQualityIssue is a cell-level quality flag raised during normalization.
type DataQualityIssue string

const (
	IssueNone               DataQualityIssue = ""
	IssueExtraWhitespace    DataQualityIssue = "extra_whitespace"
	IssueInconsistentFormat DataQualityIssue = "inconsistent_format"
	IssueInvalidCharacters  DataQualityIssue = "invalid_characters"
	IssueTypeMismatch       DataQualityIssue = "type_mismatch"
	IssueOutOfRange         DataQualityIssue = "out_of_range"
	IssueDuplicateValue     DataQualityIssue = "duplicate_value"
)

// RawCell is one cell as delivered by the reader layer.
type RawCell struct {
	// Value is the raw content: Text for string cells, Number or Integer
	// for numeric cells, Boolean or Empty.
	Value CellValue `json:"value"`
	// Format is the Excel number format string ("" when none).
	Format string `json:"format,omitempty"`
	// Kind is the declared cell kind.
	Kind CellKind `json:"kind"`
}

// NormalizationResult is the typed result for one raw cell.
type NormalizationResult struct {
	// Value is the best-effort typed value.
	Value CellValue `json:"value"`
	// Original is the value as received.
	Original CellValue `json:"original"`
	// QualityIssue is IssueNone when the cell was clean.
	QualityIssue DataQualityIssue `json:"quality_issue,omitempty"`
}

// HasIssue reports whether a quality issue was raised.
func (r NormalizationResult) HasIssue() bool {
	return r.QualityIssue != IssueNone
}
