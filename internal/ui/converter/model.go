// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package converter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/convertxpert/internal/convert"
	"github.com/jeranaias/convertxpert/internal/export"
	"github.com/jeranaias/convertxpert/internal/history"
	"github.com/jeranaias/convertxpert/internal/logging"
	"github.com/jeranaias/convertxpert/internal/session"
	"github.com/jeranaias/convertxpert/internal/ui/styles"
	"github.com/jeranaias/convertxpert/internal/units"
)

// ErrNothingToExport is reported when export is requested with an empty
// history.
var ErrNothingToExport = errors.New("no conversions to export")

// DefaultIdleCheckInterval is how often the session is checked for expiry.
const DefaultIdleCheckInterval = 30 * time.Second

// =============================================================================
// FOCUS
// =============================================================================

type focusArea int

const (
	focusCategory focusArea = iota
	focusFrom
	focusTo
	focusValue
	focusCount
)

func (f focusArea) String() string {
	switch f {
	case focusCategory:
		return "category"
	case focusFrom:
		return "from"
	case focusTo:
		return "to"
	case focusValue:
		return "value"
	default:
		return "unknown"
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures the converter screen.
type Options struct {
	// ExportDir is where the export key writes files (default ".")
	ExportDir string
	// ExportFormat is csv, json, md or xlsx (default csv)
	ExportFormat string
	// IdleCheckInterval is how often the session is checked for expiry
	IdleCheckInterval time.Duration
	// Now replaces time.Now for export file names
	Now func() time.Time
}

// Model is the Bubble Tea model of the converter screen. It owns one
// session from store and replaces it when the store expires it.
type Model struct {
	store *session.Store
	sess  *session.Session
	theme *styles.Theme
	opts  Options

	keys  KeyMap
	help  help.Model
	input textinput.Model

	groups []units.Group
	group  int
	focus  focusArea

	result    convert.Result
	hasResult bool
	err       error
	status    string

	width  int
	height int
}

// New creates the converter screen with a fresh session from store and
// performs the initial conversion.
func New(store *session.Store, theme *styles.Theme, opts Options) (Model, error) {
	sess, err := store.Create()
	if err != nil {
		return Model{}, err
	}
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = "csv"
	}
	if opts.IdleCheckInterval <= 0 {
		opts.IdleCheckInterval = DefaultIdleCheckInterval
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "value"
	input.CharLimit = 32
	input.Width = 20

	m := Model{
		store:  store,
		sess:   sess,
		theme:  theme,
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  input,
		groups: units.Groups(),
	}
	m.syncFromSession()
	m.convert()
	return m, nil
}

// Init starts the cursor blink and the idle check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.idleTick())
}

// Session returns the session currently shown.
func (m Model) Session() *session.Session {
	return m.sess
}

// Err returns the last input or conversion error, if any.
func (m Model) Err() error {
	return m.err
}

// Result returns the last successful conversion.
func (m Model) Result() (convert.Result, bool) {
	return m.result, m.hasResult
}

// Status returns the last status message.
func (m Model) Status() string {
	return m.status
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ExportDoneMsg:
		return m.handleExportDone(msg), nil

	case IdleCheckMsg:
		m.checkIdle()
		return m, m.idleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.NextFocus):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	}

	if m.focus == focusValue && isValueKey(msg) {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.applyValue()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Swap):
		m.swap()
	case key.Matches(msg, m.keys.Basic):
		m.selectGroup(0)
	case key.Matches(msg, m.keys.Science):
		m.selectGroup(1)
	case key.Matches(msg, m.keys.Digital):
		m.selectGroup(2)
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()
	}
	return m, nil
}

// isValueKey reports whether msg edits a number rather than triggering a
// command.
func isValueKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlA, tea.KeyCtrlU, tea.KeyCtrlK:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if !strings.ContainsRune("0123456789.-+eE", r) {
				return false
			}
		}
		return len(msg.Runes) > 0
	}
	return false
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusValue {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// =============================================================================
// ACTIONS
// =============================================================================

// syncFromSession aligns the input field and group tab with the session.
func (m *Model) syncFromSession() {
	sel := m.sess.Selection()
	m.input.SetValue(history.FormatInput(sel.Value))
	m.input.CursorEnd()
	if g := groupOf(m.groups, sel.Category); g >= 0 {
		m.group = g
	}
}

func (m *Model) convert() {
	res, err := m.sess.Convert()
	m.setResult(res, err)
}

func (m *Model) swap() {
	res, err := m.sess.Swap()
	m.setResult(res, err)
}

func (m *Model) setResult(res convert.Result, err error) {
	m.err = err
	m.result = res
	m.hasResult = err == nil
}

// applyValue parses the input field and converts when it holds a number.
func (m *Model) applyValue() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.setResult(convert.Result{}, errors.New("enter a value"))
		return
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		m.setResult(convert.Result{}, fmt.Errorf("%q is not a number", text))
		return
	}
	m.sess.SetValue(v)
	m.convert()
}

// move steps the selection of the focused list by delta, clamped to the
// list bounds.
func (m *Model) move(delta int) {
	sel := m.sess.Selection()
	var err error

	switch m.focus {
	case focusCategory:
		cats := m.groups[m.group].Categories
		next := step(cats, sel.Category, delta)
		err = m.sess.SetCategory(next)
	case focusFrom, focusTo:
		names, uerr := m.sess.Engine().Registry().Units(sel.Category)
		if uerr != nil {
			m.setResult(convert.Result{}, uerr)
			return
		}
		if m.focus == focusFrom {
			err = m.sess.SetFrom(step(names, sel.From, delta))
		} else {
			err = m.sess.SetTo(step(names, sel.To, delta))
		}
	default:
		return
	}

	if err != nil {
		m.setResult(convert.Result{}, err)
		return
	}
	m.convert()
}

// selectGroup shows group i and selects its first category unless the
// current category already belongs to it.
func (m *Model) selectGroup(i int) {
	if i < 0 || i >= len(m.groups) {
		return
	}
	m.group = i
	cats := m.groups[i].Categories
	if len(cats) == 0 || indexOf(cats, m.sess.Selection().Category) >= 0 {
		return
	}
	if err := m.sess.SetCategory(cats[0]); err != nil {
		m.setResult(convert.Result{}, err)
		return
	}
	m.setFocus(focusCategory)
	m.convert()
}

// exportCmd writes the session history in the configured format.
func (m Model) exportCmd() tea.Cmd {
	rows := m.sess.History().All()
	opts := export.Options{OutputDir: m.opts.ExportDir, Now: m.opts.Now}
	format := m.opts.ExportFormat

	return func() tea.Msg {
		if len(rows) == 0 {
			return ExportDoneMsg{Err: ErrNothingToExport}
		}
		exp, err := export.New(format)
		if err != nil {
			return ExportDoneMsg{Err: err}
		}
		path, err := export.ExportToFile(rows, exp, opts)
		return ExportDoneMsg{Path: path, Rows: len(rows), Err: err}
	}
}

func (m Model) handleExportDone(msg ExportDoneMsg) Model {
	log := logging.For("tui").WithField("session_id", m.sess.ID())
	if msg.Err != nil {
		log.WithError(msg.Err).Warn("export failed")
		m.status = m.theme.Error("Export failed: " + msg.Err.Error())
		return m
	}
	log.WithField("path", msg.Path).WithField("rows", msg.Rows).Info("history exported")
	m.status = m.theme.Success(fmt.Sprintf("Exported %d conversions to %s", msg.Rows, msg.Path))
	return m
}

// =============================================================================
// IDLE EXPIRY
// =============================================================================

func (m Model) idleTick() tea.Cmd {
	return tea.Tick(m.opts.IdleCheckInterval, func(t time.Time) tea.Msg {
		return IdleCheckMsg{At: t}
	})
}

// checkIdle swaps in a fresh session once the store has expired the
// current one. The old history is gone with it.
func (m *Model) checkIdle() {
	m.store.Sweep()
	sess, created, err := m.store.GetOrCreate(m.sess.ID())
	if err != nil {
		m.setResult(convert.Result{}, err)
		return
	}
	if !created {
		return
	}

	logging.For("tui").WithField("old_session", m.sess.ID()).
		WithField("session_id", sess.ID()).
		Info("session expired, starting a new one")
	m.sess = sess
	m.syncFromSession()
	m.convert()
	m.status = m.theme.Info("Session expired; history cleared")
}

// =============================================================================
// HELPERS
// =============================================================================

func indexOf(items []string, s string) int {
	for i, it := range items {
		if it == s {
			return i
		}
	}
	return -1
}

// step returns the item delta positions away from current, clamped.
// An unknown current starts from the first item.
func step(items []string, current string, delta int) string {
	if len(items) == 0 {
		return current
	}
	i := indexOf(items, current)
	if i < 0 {
		return items[0]
	}
	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(items) {
		i = len(items) - 1
	}
	return items[i]
}

func groupOf(groups []units.Group, category string) int {
	for i, g := range groups {
		if indexOf(g.Categories, category) >= 0 {
			return i
		}
	}
	return -1
}
