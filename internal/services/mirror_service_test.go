package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Vikash02022000/FinSight/internal/columns"
	"github.com/Vikash02022000/FinSight/internal/shared/testutil"
	"github.com/Vikash02022000/FinSight/internal/spreadsheet"
	"github.com/Vikash02022000/FinSight/pkg/contracts/domain"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
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

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, workbookBytes(t, rows), 0644))
}

var fixtureRows = [][]interface{}{
	{"Market", "Date", "Trade Type", "Quantity", "Price", "Total", "USD_INR_Rate"},
	{"BTC-USDT", "2024-03-01", "BUY", "2", "50000", "100000", "83"},
	{"USDINR", "2024-03-02", "SELL", "10", "83", "830", ""},
}

func TestProcessEndToEnd(t *testing.T) {
	logger, captured := testutil.NewCaptureLogger(t)
	svc := NewMirrorService(logger, nil, 5)

	result, err := svc.Process(context.Background(), bytes.NewReader(workbookBytes(t, fixtureRows)))
	require.NoError(t, err)
	assert.True(t, captured.HasMessage("columns resolved"))

	assert.Equal(t, 2, result.RowsIn)
	assert.Equal(t, 1, result.RowsMirrored)
	assert.Equal(t, 3, result.RowsOut)
	assert.Equal(t, "Market", result.Mapping["market"])
	assert.Equal(t, "USD_INR_Rate", result.Mapping["usd_inr"])
	assert.Len(t, result.Preview, 3)

	// Mirrored counterpart exists with converted values.
	var mirroredRow []string
	for _, row := range result.Table.Rows {
		if row[0] == "USDTINR" {
			mirroredRow = row
		}
	}
	require.NotNil(t, mirroredRow)
	assert.Equal(t, "SELL", mirroredRow[2])
	assert.Equal(t, "4150000", mirroredRow[4])
	assert.Equal(t, "8300000", mirroredRow[5])
}

func TestProcessMissingColumnsHalts(t *testing.T) {
	logger, captured := testutil.NewCaptureLogger(t)
	svc := NewMirrorService(logger, nil, 0)
	data := workbookBytes(t, [][]interface{}{
		{"Market", "Date", "Trade Type", "Price", "Total"},
		{"BTC-USDT", "2024-03-01", "BUY", "50000", "100000"},
	})

	result, err := svc.Process(context.Background(), bytes.NewReader(data))
	assert.Nil(t, result, "fatal errors return no partial output")
	assert.True(t, captured.HasMessage("column resolution failed"))

	var missing *columns.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []columns.Role{columns.RoleQuantity}, missing.Roles)
}

func TestProcessFileWritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "trades.xlsx")
	out := filepath.Join(dir, "mirrored.xlsx")
	writeWorkbook(t, in, fixtureRows)

	svc := NewMirrorService(nil, nil, 0)
	result, err := svc.ProcessFile(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 3, result.RowsOut)

	written, err := spreadsheet.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 3, written.RowCount())
	assert.Equal(t, []string{"Market", "Date", "Trade Type", "Quantity", "Price", "Total", "USD_INR_Rate"}, written.Headers)
}

func TestProcessDirectoryBatch(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeWorkbook(t, filepath.Join(inDir, "a.xlsx"), fixtureRows)
	writeWorkbook(t, filepath.Join(inDir, "b.xlsx"), fixtureRows)

	svc := NewMirrorService(nil, nil, 0)
	require.NoError(t, svc.ProcessDirectory(context.Background(), inDir, outDir, 2))

	for _, name := range []string{"a_mirrored.xlsx", "b_mirrored.xlsx"} {
		table, err := spreadsheet.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, 3, table.RowCount(), name)
	}
}

func TestProcessDirectoryEmptyIsNoop(t *testing.T) {
	svc := NewMirrorService(nil, nil, 0)
	require.NoError(t, svc.ProcessDirectory(context.Background(), t.TempDir(), t.TempDir(), 2))
}

func TestProcessNoMirroringNeeded(t *testing.T) {
	svc := NewMirrorService(nil, nil, 0)
	data := workbookBytes(t, [][]interface{}{
		{"Market", "Date", "Trade Type", "Quantity", "Price", "Total"},
		{"USDINR", "2024-03-01", "BUY", "10", "83", "830"},
	})

	result, err := svc.Process(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, result.RowsIn, result.RowsOut)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, domain.NoteNoMirroringNeeded, result.Warnings[0].Code)
}
