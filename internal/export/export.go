// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/convertxpert/internal/history"
	"github.com/jeranaias/convertxpert/internal/util"
)

// Header is the column order shared by every tabular format.
var Header = []string{"Input", "From", "Output", "To", "Category"}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter serializes a table of conversions.
type Exporter interface {
	// Export converts rows to the target format and returns the content.
	Export(rows []history.Entry) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string

	// MimeType returns the MIME type of the format.
	MimeType() string
}

// New returns the exporter for a format name: csv, json, md or xlsx.
func New(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "csv":
		return NewCSVExporter(), nil
	case "json":
		return NewJSONExporter(), nil
	case "md", "markdown":
		return NewMarkdownExporter(), nil
	case "xlsx":
		return NewXLSXExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Formats lists the accepted format names.
func Formats() []string {
	return []string{"csv", "json", "md", "xlsx"}
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// Options configures ExportToFile.
type Options struct {
	// OutputDir is where files are written (default ".")
	OutputDir string
	// Name is the file name without extension (default conversion_results_<timestamp>)
	Name string
	// Now replaces time.Now for the default name
	Now func() time.Time
}

// ExportToFile writes rows with exporter and returns the output path.
func ExportToFile(rows []history.Entry, exporter Exporter, opts Options) (string, error) {
	content, err := exporter.Export(rows)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	name := opts.Name
	if name == "" {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		name = "conversion_results_" + now().Format("20060102_150405")
	}

	path := filepath.Join(dir, name+exporter.FileExtension())
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// record flattens an entry into Header order.
func record(e history.Entry) []string {
	return []string{
		history.FormatInput(e.Input),
		e.From,
		e.Output,
		e.To,
		e.Category,
	}
}

// parseInput is the inverse of history.FormatInput.
func parseInput(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
