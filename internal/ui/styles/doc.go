// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the convertxpert TUI.

All colors use Lip Gloss AdaptiveColor so one palette serves light and dark
terminals. NewTheme either trusts the configured mode ("dark", "light") or
asks the terminal through termenv ("auto").

# Color System (colors.go)

  - Purple - selected category
  - Cyan - focus ring and unit names
  - Emerald - conversion result and success messages
  - Amber - active group tab
  - Rose - invalid input and failures

Status lines always carry an ASCII indicator ([OK], [X], [i]) next to the
color.

# Theme (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme).WithCompact(cfg.UI.CompactMode)
	fmt.Println(theme.ResultValue.Render("3.28084"))
*/
package styles
