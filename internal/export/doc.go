// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes tables of conversions to files and reads batch
// conversion requests.
//
// # Key Types
//
//   - Exporter: format interface (CSV, JSON, Markdown, XLSX)
//   - Options: output directory and file naming for ExportToFile
//   - Row, Report: batch input rows and the outcome of RunBatch
//
// # Usage
//
// Export a session's history:
//
//	exp, err := export.New("csv")
//	path, err := export.ExportToFile(sess.History().All(), exp, export.Options{OutputDir: "."})
//
// Build a browser download link:
//
//	data, _ := export.NewCSVExporter().Export(rows)
//	link := export.DataURILink(data)
//
// Convert a CSV of requests:
//
//	rows, err := export.ReadRequests(f)
//	report := export.RunBatch(convert.New(nil), rows)
package export
