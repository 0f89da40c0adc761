package sheetatlas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

func saveWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExtract(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Item", "Price", "Sold"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Pen", 1.25, 45292}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Ink", 3.5, 45293}))
		dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
		require.NoError(t, err)
		require.NoError(t, f.SetCellStyle("Sheet1", "C2", "C3", dateStyle))

		_, err = f.NewSheet("Notes")
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Notes", "A1", "Quarterly summary"))
		require.NoError(t, f.MergeCell("Notes", "A1", "C1"))
	})

	report, err := Extract(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "book.xlsx", report.BookName)
	assert.Equal(t, models.EpochLegacy1900, report.EpochMode)
	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.Empty(t, report.Errors)

	require.Len(t, report.Sheets, 2)
	sales, notes := report.Sheets[0], report.Sheets[1]
	assert.Equal(t, "Sheet1", sales.Name)
	assert.Equal(t, "Notes", notes.Name)

	require.Len(t, sales.Columns, 3)
	assert.Equal(t, models.DataTypeText, sales.Columns[0].DetectedType)
	assert.Equal(t, models.DataTypeNumber, sales.Columns[1].DetectedType)
	assert.Equal(t, models.DataTypeDateTime, sales.Columns[2].DetectedType)
	sold, ok := sales.Rows[1][2].AsDateTime()
	require.True(t, ok, "got %v", sales.Rows[1][2])
	assert.Equal(t, "2024-01-01", sold.Format("2006-01-02"))

	require.NotNil(t, notes.MergeComplexity)
	assert.Equal(t, 1, notes.MergeComplexity.RangeCount)
	require.Len(t, notes.Rows, 1)
	require.Len(t, notes.Rows[0], 3)
	assert.True(t, models.Text("Quarterly summary").Equal(notes.Rows[0][2]))
}

func TestExtractModernEpoch(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		on := true
		require.NoError(t, f.SetWorkbookProps(&excelize.WorkbookPropsOptions{Date1904: &on}))
		dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", "A1", 0))
		require.NoError(t, f.SetCellStyle("Sheet1", "A1", "A1", dateStyle))
	})

	report, err := Extract(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.EpochModern1904, report.EpochMode)

	got, ok := report.Sheets[0].Rows[0][0].AsDateTime()
	require.True(t, ok)
	assert.Equal(t, "1904-01-01", got.Format("2006-01-02"))
}

func TestExtractFileNotFound(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestExtractInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	_, err := Extract(path, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSheetError(t *testing.T) {
	inner := assert.AnError
	err := NewSheetError("Data", StageRead, inner)
	assert.Equal(t, `sheet "Data" (read): `+inner.Error(), err.Error())
	assert.ErrorIs(t, err, inner)
}
