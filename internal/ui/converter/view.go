// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package converter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/convertxpert/internal/history"
	"github.com/jeranaias/convertxpert/internal/ui/styles"
	"github.com/jeranaias/convertxpert/internal/util"
)

const (
	appTitle    = "ConvertXpert"
	screenTitle = "Unit Converter"
	tagline     = "Convert between different units with precision and ease"
	noRecent    = "No recent conversions"
)

// View renders the converter screen.
func (m Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderMain())

	parts := []string{m.renderHeader(), body}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, m.theme.Footer.Render(m.help.View(m.keys)))

	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(appTitle) + "  " + m.theme.Subtitle.Render(tagline)
	header := m.theme.Header
	if m.width > 0 {
		header = header.Width(m.width - 2)
	}
	return header.Render(title)
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m Model) renderSidebar() string {
	var sb strings.Builder

	tabs := make([]string, len(m.groups))
	for i, g := range m.groups {
		style := m.theme.GroupTab
		if i == m.group {
			style = m.theme.GroupTabActive
		}
		tabs[i] = style.Render(g.Name)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n\n")

	current := m.sess.Selection().Category
	label := m.theme.PanelLabel
	if m.focus == focusCategory {
		label = label.Foreground(styles.FocusRing)
	}
	sb.WriteString(label.Render("Select Unit Type"))
	sb.WriteString("\n")
	for _, c := range m.groups[m.group].Categories {
		if c == current {
			sb.WriteString(m.theme.CategorySelected.Render("> " + c))
		} else {
			sb.WriteString(m.theme.CategoryItem.Render("  " + c))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.theme.HistoryTitle.Render("Recent Conversions"))
	sb.WriteString("\n")
	sb.WriteString(m.renderRecent())

	return m.theme.Sidebar.Render(sb.String())
}

func (m Model) renderRecent() string {
	recent := m.sess.Recent()
	if len(recent) == 0 {
		return m.theme.Muted.Render(noRecent)
	}
	lines := make([]string, len(recent))
	for i, e := range recent {
		lines[i] = m.theme.HistoryItem.Render(util.Truncate(e.String(), 40))
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// MAIN AREA
// =============================================================================

func (m Model) renderMain() string {
	sel := m.sess.Selection()
	names, _ := m.sess.Engine().Registry().Units(sel.Category)

	from := m.renderUnitPanel("From", names, sel.From, m.focus == focusFrom)
	to := m.renderUnitPanel("To", names, sel.To, m.focus == focusTo)
	lists := lipgloss.JoinHorizontal(lipgloss.Top, from, " <-> ", to)

	valuePanel := m.theme.Panel
	if m.focus == focusValue {
		valuePanel = m.theme.PanelFocused
	}
	value := valuePanel.Render(m.theme.PanelLabel.Render("Enter Value") + "\n" + m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(screenTitle)+"  "+m.theme.Muted.Render(sel.Category),
		lists,
		value,
		m.renderResult(),
	)
}

func (m Model) renderUnitPanel(label string, names []string, selected string, focused bool) string {
	width := util.MaxWidth(names) + 2
	lines := []string{m.theme.PanelLabel.Render(label)}
	for _, n := range names {
		row := util.PadRight(n, width)
		if n == selected {
			lines = append(lines, m.theme.ListSelected.Render(row))
		} else {
			lines = append(lines, m.theme.ListItem.Render(row))
		}
	}

	panel := m.theme.Panel
	if focused {
		panel = m.theme.PanelFocused
	}
	return panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderResult() string {
	if m.err != nil {
		return m.theme.Error(m.err.Error())
	}
	if !m.hasResult {
		return ""
	}
	sel := m.sess.Selection()
	return history.FormatInput(sel.Value) + " " +
		m.theme.ResultUnit.Render(sel.From) + " = " +
		m.theme.ResultValue.Render(m.result.Display) + " " +
		m.theme.ResultUnit.Render(sel.To)
}
