package exporter

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter() *CSVWriter {
	return NewCSVWriter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "trades.csv")

	err := newTestWriter().WriteCSV(path, WriteOptions{
		Headers: []string{"Market", "Trade Type", "Price"},
		Records: [][]string{
			{"BTC-USDT", "BUY", "50000"},
			{"USDTINR", "SELL", "4150000"},
		},
	})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Market", "Trade Type", "Price"}, rows[0])
	assert.Equal(t, []string{"USDTINR", "SELL", "4150000"}, rows[2])
}

func TestWriteSimpleCSVEmitsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")

	err := newTestWriter().WriteSimpleCSV(path, []string{"Market"}, [][]string{{"BTC-USDT"}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteCSVNoHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.csv")

	err := newTestWriter().WriteCSV(path, WriteOptions{
		Records: [][]string{{"a", "b"}},
	})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b"}, rows[0])
}
