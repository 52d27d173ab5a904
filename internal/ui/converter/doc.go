// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package converter provides the interactive converter screen.
//
// The screen has a sidebar (group tabs, the group's categories and the five
// most recent conversions) and a main area (From and To unit lists, the value
// field and the result line). Every change of category, unit or value
// converts immediately through the session, which records the conversion in
// its history unless it repeats the last one.
//
// Keys: tab and shift+tab move focus, up/down (j/k) change the focused list,
// s swaps units, 1/2/3 pick the Basic, Science and Digital groups, e exports
// the history and q quits. While the value field has focus, digits, sign,
// dot and e edit the number; use ctrl+e to export from there.
package converter
