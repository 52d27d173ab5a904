// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Did-you-mean suggestions for commands, categories and units.
package cli

import (
	"strings"
)

// validCommands is the list of all valid convertxpert commands and aliases.
var validCommands = []string{
	"tui",
	"convert",
	"units",
	"batch",
	"repl",
	"config",
	"version",
	"help",
	// Aliases
	"c",    // convert
	"ls",   // units
	"list", // units
}

// SuggestCommand returns a suggested command if the input is close to a
// valid command, or "" when nothing is close enough.
func SuggestCommand(input string) string {
	return suggest(input, validCommands)
}

// suggest returns the candidate closest to input by Levenshtein distance,
// with a threshold based on input length. Matching ignores case; the
// candidate is returned as written.
func suggest(input string, candidates []string) string {
	input = strings.ToLower(input)

	// Very short inputs are likely intentional.
	if len(input) < 2 {
		return ""
	}

	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}

	bestMatch := ""
	bestDistance := -1
	for _, c := range candidates {
		distance := levenshteinDistance(input, strings.ToLower(c))
		if distance == 0 {
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = c
		}
	}

	return bestMatch
}

// levenshteinDistance calculates the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	rows := len(s1) + 1
	cols := len(s2) + 1

	// Two rows instead of the full matrix.
	prev := make([]int, cols)
	curr := make([]int, cols)
	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[cols-1]
}
