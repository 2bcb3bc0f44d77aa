package spreadsheet

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/Vikash02022000/FinSight/internal/errors"
	"github.com/Vikash02022000/FinSight/pkg/contracts/domain"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestReadParsesFirstSheet(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Market", "Date", "Trade Type", "Quantity", "Price", "Total"},
		{"BTC-USDT", "2024-03-01", "BUY", "2", "50000", "100000"},
		{"", "", "", "", "", ""}, // empty rows are skipped
		{"USDINR", "2024-03-02", "SELL", "10", "83", "830"},
	})

	table, err := Read(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Market", "Date", "Trade Type", "Quantity", "Price", "Total"}, table.Headers)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, "BTC-USDT", table.Rows[0][0])
	assert.Equal(t, "USDINR", table.Rows[1][0])
}

func TestReadPadsRaggedRows(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Market", "Date", "Trade Type", "Quantity", "Price", "Total"},
		{"BTC-USDT", "2024-03-01", "BUY"},
	})

	table, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, table.RowCount())
	assert.Len(t, table.Rows[0], 6)
	assert.Equal(t, "", table.Rows[0][5])
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read(strings.NewReader("this is not a workbook"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeUnreadableInput, appErr.Type)
}

func TestWriteReadRoundTrip(t *testing.T) {
	table := domain.Table{
		Headers: []string{"Market", "Price"},
		Rows: [][]string{
			{"BTC-USDT", "50000"},
			{"USDTINR", "4150000"},
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteFile(table, path))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.xlsx"))
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeStorage, appErr.Type)
}
