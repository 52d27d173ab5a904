// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jeranaias/convertxpert/internal/history"
)

func sampleRows() []history.Entry {
	return []history.Entry{
		{Input: 1, From: "Meter", Output: "100", To: "Centimeter", Category: "Length"},
		{Input: 100, From: "Celsius", Output: "212", To: "Fahrenheit", Category: "Temperature"},
		{Input: 2.5, From: "Gallon (US)", Output: "9.46353", To: "Liter", Category: "Volume"},
	}
}

// =============================================================================
// CSV
// =============================================================================

func TestCSVExporter_HeaderAndRows(t *testing.T) {
	out, err := NewCSVExporter().Export(sampleRows())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Input,From,Output,To,Category", lines[0])
	assert.Equal(t, "1,Meter,100,Centimeter,Length", lines[1])
	assert.Equal(t, "100,Celsius,212,Fahrenheit,Temperature", lines[2])
	assert.Equal(t, "2.5,Gallon (US),9.46353,Liter,Volume", lines[3])
}

func TestCSVExporter_Empty(t *testing.T) {
	out, err := NewCSVExporter().Export(nil)
	require.NoError(t, err)
	assert.Equal(t, "Input,From,Output,To,Category\n", string(out))
}

func TestCSV_QuotesCommas(t *testing.T) {
	rows := []history.Entry{{Input: 1, From: "a,b", Output: "1", To: "c", Category: "X"}}
	out, err := NewCSVExporter().Export(rows)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"a,b"`)

	back, err := ReadCSV(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, rows, back)
}

func TestReadCSV_RoundTrip(t *testing.T) {
	out, err := NewCSVExporter().Export(sampleRows())
	require.NoError(t, err)

	back, err := ReadCSV(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, sampleRows(), back)
}

func TestReadCSV_BadInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Input,From,Output,To,Category\nabc,Meter,1,Foot,Length\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

// =============================================================================
// DATA URI
// =============================================================================

func TestDataURILink_DecodesToCSV(t *testing.T) {
	data, err := NewCSVExporter().Export(sampleRows())
	require.NoError(t, err)

	link := DataURILink(data)
	prefix := `<a href="data:file/csv;base64,`
	require.True(t, strings.HasPrefix(link, prefix), link)
	assert.True(t, strings.HasSuffix(link, `" download="conversion_results.csv">Download CSV</a>`), link)

	encoded := strings.TrimPrefix(link, prefix)
	encoded = encoded[:strings.Index(encoded, `"`)]
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

// =============================================================================
// OTHER FORMATS
// =============================================================================

func TestJSONExporter(t *testing.T) {
	out, err := NewJSONExporter().Export(sampleRows())
	require.NoError(t, err)

	var back []history.Entry
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, sampleRows(), back)
	assert.Contains(t, string(out), `"category": "Length"`)
}

func TestJSONExporter_NilIsEmptyArray(t *testing.T) {
	out, err := NewJSONExporter().Export(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestMarkdownExporter(t *testing.T) {
	rows := append(sampleRows(), history.Entry{Input: 3, From: "a|b", Output: "1", To: "c", Category: "X"})
	out, err := NewMarkdownExporter().Export(rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "| Input | From | Output | To | Category |", lines[0])
	assert.Equal(t, "| --- | --- | --- | --- | --- |", lines[1])
	assert.Equal(t, "| 1 | Meter | 100 | Centimeter | Length |", lines[2])
	assert.Equal(t, `| 3 | a\|b | 1 | c | X |`, lines[5])
}

func TestXLSXExporter(t *testing.T) {
	out, err := NewXLSXExporter().Export(sampleRows())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"1", "Meter", "100", "Centimeter", "Length"}, rows[1])
	assert.Equal(t, []string{"2.5", "Gallon (US)", "9.46353", "Liter", "Volume"}, rows[3])
}

// =============================================================================
// FACTORY AND FILE OUTPUT
// =============================================================================

func TestNew(t *testing.T) {
	tests := []struct {
		format string
		ext    string
	}{
		{"csv", ".csv"},
		{"CSV", ".csv"},
		{"json", ".json"},
		{"md", ".md"},
		{"markdown", ".md"},
		{"xlsx", ".xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exp, err := New(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, exp.FileExtension())
			assert.NotEmpty(t, exp.MimeType())
		})
	}

	_, err := New("pdf")
	assert.Error(t, err)
}

func TestExportToFile_DefaultName(t *testing.T) {
	dir := t.TempDir()
	now := func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }

	path, err := ExportToFile(sampleRows(), NewCSVExporter(), Options{OutputDir: dir, Now: now})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "conversion_results_20250304_050607.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Input,From,Output,To,Category\n"))
}

func TestExportToFile_ExplicitName(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportToFile(nil, NewJSONExporter(), Options{OutputDir: dir, Name: "out"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.json"), path)
}

func TestExportToFile_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path, err := ExportToFile(nil, NewCSVExporter(), Options{OutputDir: dir, Name: "x"})
	require.NoError(t, err)
	assert.FileExists(t, path)
}
