// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jeranaias/convertxpert/internal/history"
)

// =============================================================================
// CSV EXPORTER
// =============================================================================

// CSVExporter writes a header row followed by one row per conversion.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export converts rows to CSV.
func (e *CSVExporter) Export(rows []history.Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for CSV.
func (e *CSVExporter) FileExtension() string {
	return ".csv"
}

// MimeType returns the MIME type for CSV.
func (e *CSVExporter) MimeType() string {
	return "text/csv"
}

// WriteCSV streams rows as CSV to w.
func WriteCSV(w io.Writer, rows []history.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range rows {
		if err := cw.Write(record(e)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a table written by WriteCSV.
func ReadCSV(r io.Reader) ([]history.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]history.Entry, 0, len(records)-1)
	for i, rec := range records[1:] {
		v, err := parseInput(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid input %q", i+2, rec[0])
		}
		rows = append(rows, history.Entry{
			Input:    v,
			From:     rec[1],
			Output:   rec[2],
			To:       rec[3],
			Category: rec[4],
		})
	}
	return rows, nil
}

// =============================================================================
// DOWNLOAD LINK
// =============================================================================

// DownloadName is the file name offered by DataURILink.
const DownloadName = "conversion_results.csv"

// DataURI encodes CSV content as a base64 data URI.
func DataURI(csvData []byte) string {
	return "data:file/csv;base64," + base64.StdEncoding.EncodeToString(csvData)
}

// DataURILink returns an HTML anchor that downloads csvData in a browser.
func DataURILink(csvData []byte) string {
	return fmt.Sprintf(`<a href="%s" download="%s">Download CSV</a>`, DataURI(csvData), DownloadName)
}
