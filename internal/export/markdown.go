// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"github.com/jeranaias/convertxpert/internal/history"
)

// MarkdownExporter writes rows as a Markdown table.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export converts rows to a Markdown table.
func (e *MarkdownExporter) Export(rows []history.Entry) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("| " + strings.Join(Header, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(Header)) + "\n")
	for _, r := range rows {
		cells := record(r)
		for i, c := range cells {
			cells[i] = escapeCell(c)
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// escapeCell keeps pipes and newlines from breaking the table.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}
