package output

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

func sampleReport() *models.WorkbookReport {
	return &models.WorkbookReport{
		RunID:     "run-1",
		BookName:  "book.xlsx",
		EpochMode: models.EpochLegacy1900,
		Sheets: []models.SheetReport{{
			Name: "Sheet1",
			Rows: models.Grid{{
				models.Text("a"),
				models.Integer(7),
				models.Number(1.5),
				models.DateTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
				models.Boolean(true),
				models.Empty(),
			}},
			Errors: []models.ErrorEntry{{Sheet: "Sheet1", Row: 0, Column: 0, Severity: models.SeverityInfo, Source: models.SourceNormalization, Message: "m"}},
		}},
		Errors: []models.ErrorEntry{{Sheet: "Broken", Row: -1, Column: -1, Severity: models.SeverityError, Source: models.SourceReader, Message: "unreadable"}},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleReport(), false)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n")

	var decoded struct {
		RunID  string `json:"run_id"`
		Sheets []struct {
			Name string  `json:"name"`
			Rows [][]any `json:"rows"`
		} `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	require.Len(t, decoded.Sheets, 1)
	assert.Equal(t, []any{"a", float64(7), 1.5, "2024-01-01", true, nil}, decoded.Sheets[0].Rows[0])
}

func TestToJSONPretty(t *testing.T) {
	data, err := ToJSON(sampleReport(), true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \""))
}

func TestSheetToJSON(t *testing.T) {
	sheet := sampleReport().Sheets[0]
	data, err := SheetToJSON(&sheet, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"Sheet1"`)
}

func TestErrorsToJSON(t *testing.T) {
	data, err := ErrorsToJSON(sampleReport(), false)
	require.NoError(t, err)

	var entries []models.ErrorEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, models.SourceReader, entries[0].Source)
	assert.Equal(t, models.SourceNormalization, entries[1].Source)
}
