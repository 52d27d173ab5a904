// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits command arguments into flags and positionals.
// It handles:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: --flag (no value needed)
//   - Negative numbers: -40 is a positional, not a flag
//   - "--" ends flag parsing
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
	raw        []string
	bools      map[string]bool
}

// NewArgParser parses raw. Names listed in boolNames never consume the
// following argument, so "--json Length" keeps Length positional.
//
//	args := NewArgParser([]string{"Temperature", "-40", "Celsius", "Fahrenheit", "--json"}, "json")
//	args.Positional(1)    // "-40"
//	args.BoolFlag("json") // true
func NewArgParser(raw []string, boolNames ...string) *ArgParser {
	p := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0, len(raw)),
		raw:        raw,
		bools:      make(map[string]bool, len(boolNames)),
	}
	for _, b := range boolNames {
		p.bools[b] = true
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			p.positional = append(p.positional, raw[i+1:]...)
			break
		}
		if !isFlag(arg) {
			p.positional = append(p.positional, arg)
			continue
		}

		// --flag=value
		if name, value, ok := strings.Cut(strings.TrimLeft(arg, "-"), "="); ok {
			if value == "true" || value == "false" {
				p.boolFlags[name] = value == "true"
			} else {
				p.flags[name] = value
			}
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if !p.bools[name] && i+1 < len(raw) && !isFlag(raw[i+1]) {
			p.flags[name] = raw[i+1]
			i++
			continue
		}
		p.boolFlags[name] = true
	}

	return p
}

// isFlag reports whether arg starts with a dash and is not a number.
func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(arg, 64)
	return err != nil
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string {
	return p.Positional(0)
}

// Flag returns the value of a string flag, or "".
func (p *ArgParser) Flag(name string) string {
	return p.flags[strings.TrimLeft(name, "-")]
}

// FlagOrDefault returns the flag value or a default if not found.
func (p *ArgParser) FlagOrDefault(name, defaultValue string) string {
	if val := p.Flag(name); val != "" {
		return val
	}
	return defaultValue
}

// FlagAny returns the first non-empty value among names, so a flag can have
// a short and a long spelling.
func (p *ArgParser) FlagAny(names ...string) string {
	for _, n := range names {
		if v := p.Flag(n); v != "" {
			return v
		}
	}
	return ""
}

// BoolFlag returns the value of a boolean flag.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[strings.TrimLeft(name, "-")]
}

// HasFlag returns true if the flag exists (either as string or bool flag).
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, hasString := p.flags[name]
	_, hasBool := p.boolFlags[name]
	return hasString || hasBool
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// Raw returns the original raw arguments.
func (p *ArgParser) Raw() []string {
	return p.raw
}

// =============================================================================
// VALUE HELPERS
// =============================================================================

// ParseValue parses a numeric conversion input. NaN and infinities are
// rejected.
func ParseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, NewValidationErrorWithExample("value", s, "must be a number", "1.5, -40, 2e3")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewValidationError("value", s, "must be finite")
	}
	return v, nil
}

// requireArgs returns a usage error when fewer than n positionals are present.
func requireArgs(p *ArgParser, n int, usage string) error {
	if p.PositionalCount() < n {
		return ErrMissingArgument(fmt.Sprintf("%d argument(s)", n), usage)
	}
	return nil
}
