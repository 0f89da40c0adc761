package models

// RawSheet is a sheet as delivered by the reader layer.
type RawSheet struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Cells holds raw cells row by row (0-based).
	Cells [][]RawCell `json:"cells"`
	// MergedRanges lists the merged regions of the sheet.
	MergedRanges []MergedRange `json:"merged_ranges,omitempty"`
	// EpochMode is the date system of the workbook.
	EpochMode DateEpochMode `json:"epoch_mode"`
}

// SheetReport is the analysis output for a single sheet.
type SheetReport struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows is the normalized (and merge-resolved, when enabled) grid.
	Rows Grid `json:"rows,omitempty"`
	// Bounds is the data region (nil for a sheet without data).
	Bounds *DataBounds `json:"bounds,omitempty"`
	// Columns holds one analysis per column of the data region.
	Columns []ColumnAnalysisResult `json:"columns,omitempty"`
	// MergeComplexity is set when the sheet has merged ranges.
	MergeComplexity *MergeComplexityAnalysis `json:"merge_complexity,omitempty"`
	// Errors folds quality issues, anomalies and merge warnings.
	Errors []ErrorEntry `json:"errors,omitempty"`
}

// DataBounds is the bounding box of non-empty cells.
type DataBounds struct {
	StartRow int `json:"start_row"`
	EndRow   int `json:"end_row"`
	StartCol int `json:"start_col"`
	EndCol   int `json:"end_col"`
	// Density is the non-empty share of the bounding box.
	Density float64 `json:"density"`
}
