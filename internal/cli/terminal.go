// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for the convertxpert CLI.
//
// The TUI needs a real terminal on stdout; scripted commands (convert,
// batch, units) must stay plain when piped. NO_COLOR and FORCE_COLOR are
// honored.

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// DefaultTerminalWidth is the fallback width when detection fails.
const DefaultTerminalWidth = 80

// GetTerminalWidth returns the current terminal width, or
// DefaultTerminalWidth when it cannot be determined.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

var (
	colorsEnabled     bool
	colorsEnabledOnce sync.Once
)

// ColorsEnabled returns true if colored output should be used.
// See https://no-color.org/ for NO_COLOR.
func ColorsEnabled() bool {
	colorsEnabledOnce.Do(func() {
		colorsEnabled = detectColors(os.Getenv, IsStdoutTTY)
	})
	return colorsEnabled
}

func detectColors(getenv func(string) string, isTTY func() bool) bool {
	if getenv("NO_COLOR") != "" {
		return false
	}
	if getenv("FORCE_COLOR") != "" {
		return true
	}
	return isTTY()
}

// ForceColorsEnabled overrides color detection. Tests only.
func ForceColorsEnabled(enabled bool) {
	colorsEnabledOnce = sync.Once{}
	colorsEnabledOnce.Do(func() {
		colorsEnabled = enabled
	})
}

// GetColorProfile returns Ascii when colors are disabled and the detected
// termenv profile otherwise.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// =============================================================================
// TTY REQUIREMENTS
// =============================================================================

// TTYRequiredError is returned when an operation needs a terminal but none is
// available.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	return "stdout is not a terminal; cannot " + e.Operation +
		" (use 'convertxpert convert' or 'convertxpert batch' for scripted use)"
}

// RequiresTTY returns a TTYRequiredError when isTTY reports false.
func RequiresTTY(operation string, isTTY func() bool) error {
	if !isTTY() {
		return &TTYRequiredError{Operation: operation}
	}
	return nil
}
