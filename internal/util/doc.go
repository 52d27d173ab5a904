// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across convertxpert packages.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - Truncate, PadRight, MaxWidth: display-width aware text helpers
//   - Columns: aligned plain-text tables for CLI output
package util
