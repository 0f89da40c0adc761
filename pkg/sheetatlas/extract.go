package sheetatlas

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/parser"
)

// Extract analyzes every sheet of the xlsx workbook at path.
func Extract(path string, opts Options) (*models.WorkbookReport, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return AnalyzeWorkbook(f, filepath.Base(path), opts)
}

// AnalyzeWorkbook analyzes every sheet of an open workbook. Sheets are read
// one at a time and analyzed concurrently; reports keep workbook order. A
// sheet that cannot be read is logged in the report's Errors and skipped.
func AnalyzeWorkbook(f *excelize.File, bookName string, opts Options) (*models.WorkbookReport, error) {
	log := opts.logger()
	report := &models.WorkbookReport{
		RunID:     uuid.NewString(),
		BookName:  bookName,
		EpochMode: parser.EpochMode(f),
	}
	log = log.With(zap.String("run_id", report.RunID), zap.String("book", bookName))

	var sheets []models.RawSheet
	for _, name := range f.GetSheetList() {
		raw, err := parser.ReadSheet(f, name, report.EpochMode)
		if err != nil {
			sheetErr := NewSheetError(name, StageRead, err)
			log.Warn("skipping sheet", zap.Error(sheetErr))
			report.Errors = append(report.Errors, models.ErrorEntry{
				Sheet:    name,
				Row:      -1,
				Column:   -1,
				Severity: models.SeverityError,
				Source:   models.SourceReader,
				Message:  sheetErr.Error(),
			})
			continue
		}
		sheets = append(sheets, raw)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	sheetOpts := opts
	sheetOpts.Logger = log

	report.Sheets = make([]models.SheetReport, len(sheets))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, raw := range sheets {
		g.Go(func() error {
			report.Sheets[i] = AnalyzeSheet(raw, sheetOpts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("workbook analyzed",
		zap.Int("sheets", len(report.Sheets)),
		zap.String("epoch_mode", string(report.EpochMode)))
	return report, nil
}
