package models

// ErrorSource names the stage that produced an ErrorEntry.
type ErrorSource string

const (
	SourceReader         ErrorSource = "reader"
	SourceNormalization  ErrorSource = "normalization"
	SourceColumnAnalysis ErrorSource = "column_analysis"
	SourceMerge          ErrorSource = "merge"
)

// ErrorEntry is one line of the error log built from core results.
type ErrorEntry struct {
	Sheet string `json:"sheet"`
	// Row is the 0-based sheet row, -1 when not tied to a row.
	Row int `json:"row"`
	// Column is the 0-based column, -1 when not tied to a column.
	Column   int         `json:"column"`
	Severity Severity    `json:"severity"`
	Source   ErrorSource `json:"source"`
	Message  string      `json:"message"`
}

// WorkbookReport is the workbook-level container of sheet reports.
type WorkbookReport struct {
	// RunID identifies this analysis run.
	RunID string `json:"run_id"`
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// EpochMode is the date system of the workbook.
	EpochMode DateEpochMode `json:"epoch_mode"`
	// Sheets in workbook order.
	Sheets []SheetReport `json:"sheets"`
	// Errors holds workbook-level entries such as unreadable sheets.
	Errors []ErrorEntry `json:"errors,omitempty"`
}
