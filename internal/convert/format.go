// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"math"
	"strconv"
)

const (
	sciUpper = 1e6
	sciLower = 1e-6
)

// Format renders a conversion result for display.
//
// Magnitudes >= 1e6, and non-zero magnitudes <= 1e-6, use scientific notation
// with six fractional digits (1.234567e+06). Everything else, zero included,
// uses at most six significant digits with trailing zeros trimmed.
func Format(v float64) string {
	abs := math.Abs(v)
	if abs >= sciUpper || (abs <= sciLower && v != 0) {
		return strconv.FormatFloat(v, 'e', 6, 64)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
