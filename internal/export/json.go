// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"

	"github.com/jeranaias/convertxpert/internal/history"
)

// JSONExporter writes rows as an indented JSON array.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts rows to JSON. A nil slice is written as [].
func (e *JSONExporter) Export(rows []history.Entry) ([]byte, error) {
	if rows == nil {
		rows = []history.Entry{}
	}
	return json.MarshalIndent(rows, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
