// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package converter

import "time"

// ExportDoneMsg reports the outcome of an export started with the export key.
type ExportDoneMsg struct {
	Path string
	Rows int
	Err  error
}

// IdleCheckMsg asks the model to check the session for idle expiry.
type IdleCheckMsg struct {
	At time.Time
}
