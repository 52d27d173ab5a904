// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for scripted use of the CLI.

package cli

import (
	"encoding/json"
	"io"
	"time"
)

// JSONResponse is the response envelope for --json output.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp"`

	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write encodes the response to w with two-space indentation.
func (r *JSONResponse) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// ConvertData is the data returned by convert --json.
type ConvertData struct {
	Category string   `json:"category"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Input    float64  `json:"input"`
	Output   *float64 `json:"output,omitempty"` // nil when the result is not finite
	Display  string   `json:"display"`
}

// UnitsData is the data returned by units --json.
type UnitsData struct {
	Groups []GroupData `json:"groups"`
}

// GroupData lists the categories of one group.
type GroupData struct {
	Name       string         `json:"name"`
	Categories []CategoryData `json:"categories"`
}

// CategoryData lists the units of one category.
type CategoryData struct {
	Name  string   `json:"name"`
	Units []string `json:"units"`
}

// VersionData is the data returned by version --json.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}
