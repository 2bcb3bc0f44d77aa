package spreadsheet

import (
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/Vikash02022000/FinSight/internal/errors"
	"github.com/Vikash02022000/FinSight/pkg/contracts/domain"
)

// Write serializes the table into a single-sheet workbook on w, preserving
// the input's column order.
func Write(t domain.Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, t.Headers); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return apperrors.NewStorageError("failed to write workbook", err)
	}
	return nil
}

// WriteFile serializes the table to a workbook at path, creating parent
// directories as needed.
func WriteFile(t domain.Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err).
			WithContext("path", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create output file", err).
			WithContext("path", path)
	}
	defer f.Close()
	return Write(t, f)
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return apperrors.NewStorageError("failed to compute cell coordinates", err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return apperrors.NewStorageError("failed to write sheet row", err)
	}
	return nil
}
