// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-mode interactive converter.
//
// Each line is either a conversion or a slash command:
//
//	5                        convert 5 with the current units
//	5 kilometer to mile      pick units and convert
//	/category temperature    switch category
//	/swap                    swap units and convert
//	/history                 show recent conversions
//
// Line history lives in memory only; nothing is written to disk.

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/convertxpert/internal/convert"
	"github.com/jeranaias/convertxpert/internal/export"
	"github.com/jeranaias/convertxpert/internal/history"
	"github.com/jeranaias/convertxpert/internal/logging"
	"github.com/jeranaias/convertxpert/internal/session"
)

const replPrompt = "convert> "

// lineReader is the part of liner.State the REPL uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// REPL runs conversions read line by line against one session.
type REPL struct {
	env  *Env
	sess *session.Session
	in   lineReader
}

// RunREPL handles "repl [--category NAME]".
func (e *Env) RunREPL(args Args) error {
	p := NewArgParser(args.Raw)

	opts := SessionOptions(e.Config)
	if name := p.FlagAny("category", "c"); name != "" {
		category, err := e.resolveCategory(name)
		if err != nil {
			return err
		}
		opts.Category = category
		opts.From, opts.To = "", ""
	}

	sess, err := session.New(e.Engine, opts)
	if err != nil {
		return &ConfigError{Err: err}
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &REPL{env: e, sess: sess, in: line}
	defer r.in.Close()
	return r.Run()
}

// Run reads lines until EOF, ctrl+c or /quit.
func (r *REPL) Run() error {
	r.printWelcome()

	for {
		input, err := r.in.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.env.Stdout)
				r.printExitSummary()
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.in.AppendHistory(input)

		keepGoing, err := r.handleLine(input)
		if err != nil {
			fmt.Fprintf(r.env.Stderr, "%s %v\n", RenderConditional(ErrorStyle, "Error:"), err)
		}
		if !keepGoing {
			r.printExitSummary()
			return nil
		}
	}
}

// handleLine runs one line and reports whether the loop should continue.
func (r *REPL) handleLine(input string) (bool, error) {
	if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
		return false, nil
	}
	if strings.HasPrefix(input, "/") {
		return r.handleCommand(input)
	}
	return true, r.handleConversion(input)
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// handleConversion accepts "<value>", "<value> <from> <to>" and
// "<value> <from...> to <to...>". Multi-word units need the "to" form.
func (r *REPL) handleConversion(input string) error {
	fields := strings.Fields(input)
	value, err := ParseValue(fields[0])
	if err != nil {
		return err
	}

	from, to, err := splitUnits(fields[1:])
	if err != nil {
		return err
	}

	// Both names resolve before the selection changes.
	if from != "" {
		category := r.sess.Selection().Category
		if from, err = r.env.resolveUnit(category, from); err != nil {
			return err
		}
		if to, err = r.env.resolveUnit(category, to); err != nil {
			return err
		}
		if err := r.sess.SetFrom(from); err != nil {
			return err
		}
		if err := r.sess.SetTo(to); err != nil {
			return err
		}
	}

	r.sess.SetValue(value)
	return r.convertAndPrint()
}

func splitUnits(words []string) (from, to string, err error) {
	if len(words) == 0 {
		return "", "", nil
	}
	for i, w := range words {
		if strings.EqualFold(w, "to") {
			from = strings.Join(words[:i], " ")
			to = strings.Join(words[i+1:], " ")
			if from == "" || to == "" {
				break
			}
			return from, to, nil
		}
	}
	if len(words) == 2 {
		return words[0], words[1], nil
	}
	return "", "", NewValidationErrorWithExample("conversion", strings.Join(words, " "),
		"expected '<from> to <to>'", "5 kilometer to mile")
}

func (r *REPL) convertAndPrint() error {
	res, err := r.sess.Convert()
	if err != nil {
		return err
	}
	r.printResult(res)
	return nil
}

func (r *REPL) printResult(res convert.Result) {
	sel := r.sess.Selection()
	fmt.Fprintf(r.env.Stdout, "%s %s = %s %s\n",
		history.FormatInput(sel.Value), sel.From, RenderConditional(ValueStyle, res.Display), sel.To)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func (r *REPL) handleCommand(input string) (bool, error) {
	parts := strings.Fields(input)
	command := strings.ToLower(parts[0])
	rest := strings.Join(parts[1:], " ")

	switch command {
	case "/help", "/h", "/?", "/":
		r.printHelp()
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	case "/category", "/cat":
		if rest == "" {
			fmt.Fprintf(r.env.Stdout, "Category: %s\n", r.sess.Selection().Category)
			return true, nil
		}
		category, err := r.env.resolveCategory(rest)
		if err != nil {
			return true, err
		}
		if err := r.sess.SetCategory(category); err != nil {
			return true, err
		}
		return true, r.convertAndPrint()

	case "/from", "/to":
		if rest == "" {
			return true, ErrMissingArgument("unit", command+" <unit>")
		}
		unit, err := r.env.resolveUnit(r.sess.Selection().Category, rest)
		if err != nil {
			return true, err
		}
		if command == "/from" {
			err = r.sess.SetFrom(unit)
		} else {
			err = r.sess.SetTo(unit)
		}
		if err != nil {
			return true, err
		}
		return true, r.convertAndPrint()

	case "/swap", "/s":
		res, err := r.sess.Swap()
		if err != nil {
			return true, err
		}
		r.printResult(res)
		return true, nil

	case "/units":
		sel := r.sess.Selection()
		names, err := r.env.Engine.Registry().Units(sel.Category)
		if err != nil {
			return true, err
		}
		fmt.Fprintf(r.env.Stdout, "%s: %s\n", sel.Category, strings.Join(names, ", "))
		return true, nil

	case "/history":
		r.printHistory()
		return true, nil

	case "/export":
		return true, r.export(rest)

	default:
		reason := "unknown command"
		if s := suggest(command, replCommands); s != "" {
			reason = fmt.Sprintf("unknown command, did you mean '%s'?", s)
		}
		return true, NewValidationErrorWithExample("command", command, reason, "/help")
	}
}

var replCommands = []string{"/help", "/quit", "/exit", "/category", "/from", "/to", "/swap", "/units", "/history", "/export"}

func (r *REPL) export(format string) error {
	if format == "" {
		format = r.env.Config.Export.Format
	}
	exporter, err := export.New(format)
	if err != nil {
		return ErrUnsupportedFormat(format, export.Formats())
	}
	rows := r.sess.History().All()
	if len(rows) == 0 {
		return errors.New("nothing to export")
	}
	path, err := export.ExportToFile(rows, exporter, export.Options{OutputDir: r.env.Config.Export.OutputDir})
	if err != nil {
		return err
	}
	logging.For("repl").WithField("path", path).Info("history exported")
	fmt.Fprintf(r.env.Stdout, "%s Exported %d conversions to %s\n",
		RenderConditional(SuccessStyle, "[OK]"), len(rows), path)
	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

func (r *REPL) printWelcome() {
	sel := r.sess.Selection()
	fmt.Fprintln(r.env.Stdout, RenderConditional(TitleStyle, "ConvertXpert"))
	fmt.Fprintf(r.env.Stdout, "Category %s, %s to %s. Type /help for commands, /quit to leave.\n",
		sel.Category, sel.From, sel.To)
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.env.Stdout, `Conversions:
  5                      Convert 5 with the current units
  5 kilometer mile       Pick single-word units and convert
  5 cubic meter to liter Use "to" between multi-word units

Commands:
  /category [name]       Show or switch category
  /from <unit>           Set the source unit
  /to <unit>             Set the target unit
  /swap                  Swap units and convert
  /units                 List units of the current category
  /history               Show recent conversions
  /export [format]       Write the history to a file (csv, json, md, xlsx)
  /quit                  Leave
`)
}

func (r *REPL) printHistory() {
	recent := r.sess.Recent()
	if len(recent) == 0 {
		fmt.Fprintln(r.env.Stdout, RenderConditional(DimStyle, "No recent conversions"))
		return
	}
	for i, e := range recent {
		fmt.Fprintf(r.env.Stdout, "%2d. %s\n", i+1, e.String())
	}
}

func (r *REPL) printExitSummary() {
	fmt.Fprintf(r.env.Stdout, "%d conversions this session.\n", r.sess.History().Len())
}
