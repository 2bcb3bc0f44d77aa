// Package spreadsheet reads and writes trade tables as .xlsx workbooks.
// The contract is deliberately small: first sheet, header row is row one,
// every cell a string. Anything that cannot be opened as a workbook is an
// unreadable-input error, surfaced verbatim to the caller.
package spreadsheet

import (
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/Vikash02022000/FinSight/internal/errors"
	"github.com/Vikash02022000/FinSight/pkg/contracts/domain"
)

// Read parses a workbook from r into a Table.
func Read(r io.Reader) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, apperrors.NewUnreadableInputError(
			"failed to read the uploaded workbook; make sure it is a valid .xlsx file", err)
	}
	defer f.Close()
	return tableFromWorkbook(f)
}

// ReadFile parses the workbook at path into a Table.
func ReadFile(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, apperrors.NewStorageError("failed to open input file", err).
			WithContext("path", path)
	}
	defer f.Close()
	return Read(f)
}

func tableFromWorkbook(f *excelize.File) (domain.Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, apperrors.NewUnreadableInputError("workbook contains no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.Table{}, apperrors.NewUnreadableInputError("failed to read rows from the first sheet", err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return domain.Table{}, apperrors.NewUnreadableInputError("first sheet has no header row", nil)
	}

	headers := rows[0]
	table := domain.Table{Headers: headers}
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		table.Rows = append(table.Rows, padRow(row, len(headers)))
	}
	return table, nil
}

// padRow normalizes a ragged excelize row to the header width so the engine
// can index any role column without bounds checks.
func padRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
