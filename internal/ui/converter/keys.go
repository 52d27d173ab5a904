// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package converter

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the converter screen.
type KeyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	Up        key.Binding
	Down      key.Binding
	Swap      key.Binding
	Basic     key.Binding
	Science   key.Binding
	Digital   key.Binding
	Export    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings. Bindings on printable
// keys are ignored while the value field has focus, except where noted.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Swap: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "swap units"),
		),
		Basic: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "basic"),
		),
		Science: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "science"),
		),
		Digital: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "digital"),
		),
		Export: key.NewBinding(
			key.WithKeys("e", "ctrl+e"),
			key.WithHelp("e/ctrl+e", "export"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Swap, k.Export, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help view, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextFocus, k.PrevFocus, k.Up, k.Down},
		{k.Basic, k.Science, k.Digital},
		{k.Swap, k.Export},
		{k.Help, k.Quit},
	}
}
