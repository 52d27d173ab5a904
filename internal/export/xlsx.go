// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jeranaias/convertxpert/internal/history"
)

// SheetName is the worksheet written by XLSXExporter.
const SheetName = "Conversions"

// XLSXExporter writes rows to a single-sheet Excel workbook. The Input column
// is stored as a number so spreadsheets can compute with it.
type XLSXExporter struct{}

// NewXLSXExporter creates an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export converts rows to an XLSX workbook.
func (e *XLSXExporter) Export(rows []history.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{r.Input, r.From, r.Output, r.To, r.Category}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for XLSX.
func (e *XLSXExporter) FileExtension() string {
	return ".xlsx"
}

// MimeType returns the MIME type for XLSX.
func (e *XLSXExporter) MimeType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
