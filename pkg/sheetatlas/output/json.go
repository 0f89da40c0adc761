// Package output serializes analysis reports.
package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

// ToJSON serializes a workbook report.
func ToJSON(report *models.WorkbookReport, pretty bool) ([]byte, error) {
	return marshal(report, pretty)
}

// SheetToJSON serializes a single sheet report.
func SheetToJSON(sheet *models.SheetReport, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// ErrorsToJSON serializes the combined error log of a workbook report:
// workbook-level entries first, then each sheet's entries in sheet order.
func ErrorsToJSON(report *models.WorkbookReport, pretty bool) ([]byte, error) {
	entries := make([]models.ErrorEntry, 0, len(report.Errors))
	entries = append(entries, report.Errors...)
	for _, s := range report.Sheets {
		entries = append(entries, s.Errors...)
	}
	return marshal(entries, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
