// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for convertxpert.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/convertxpert/internal/config"
	"github.com/jeranaias/convertxpert/internal/convert"
	"github.com/jeranaias/convertxpert/internal/export"
	"github.com/jeranaias/convertxpert/internal/history"
	"github.com/jeranaias/convertxpert/internal/logging"
	"github.com/jeranaias/convertxpert/internal/session"
	"github.com/jeranaias/convertxpert/internal/units"
	"github.com/jeranaias/convertxpert/internal/util"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdConvert
	CmdUnits
	CmdBatch
	CmdREPL
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name used in JSON output and logs.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdConvert:
		return "convert"
	case CmdUnits:
		return "units"
	case CmdBatch:
		return "batch"
	case CmdREPL:
		return "repl"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON       bool   // Output in JSON format
	Verbose    bool   // Log at debug level to stderr
	ConfigPath string // --config overrides ~/.convertxpert/config.toml

	// Raw args after the command name, global flags removed
	Raw []string
}

const usageText = `convertxpert - convert between different units with precision and ease

Usage:
  convertxpert                       Start the interactive converter (default)
  convertxpert tui                   Same as above
  convertxpert convert <category> <value> <from> <to>
                                     Convert a single value
  convertxpert units [category]      List categories and their units
  convertxpert batch --input FILE    Convert every row of a CSV file
    --output FILE                    Write results to FILE (default: stdout)
    --format csv|json|md|xlsx        Output format (default: config export.format)
    --link                           Print an HTML download link for the CSV
  convertxpert repl [--category NAME]
                                     Line-mode interactive converter
  convertxpert config [show|path|init]
                                     Show or create the configuration file
  convertxpert version               Show version information
  convertxpert help                  Show this help

Global flags:
  --json                             Machine-readable output
  --config FILE                      Use FILE instead of ~/.convertxpert/config.toml
  --verbose                          Log at debug level to stderr

Batch input is CSV with the columns category,value,from,to. A header row
and lines starting with # are skipped.

Examples:
  convertxpert convert Length 1 Meter Foot
  convertxpert convert temperature -40 celsius fahrenheit --json
  convertxpert units Data
  convertxpert batch --input requests.csv --format xlsx --output results.xlsx

Version: %s
`

// =============================================================================
// PARSING
// =============================================================================

// Parse parses command-line arguments (without the program name) and returns
// the command and args. Unknown commands are usage errors.
func Parse(argv []string) (Command, Args, error) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs, nil
	}

	name := strings.ToLower(remaining[0])
	parsedArgs.Raw = remaining[1:]

	switch name {
	case "tui":
		return CmdTUI, parsedArgs, nil
	case "convert", "c":
		return CmdConvert, parsedArgs, nil
	case "units", "ls", "list":
		return CmdUnits, parsedArgs, nil
	case "batch":
		return CmdBatch, parsedArgs, nil
	case "repl":
		return CmdREPL, parsedArgs, nil
	case "config":
		return CmdConfig, parsedArgs, nil
	case "version", "-v", "--version":
		return CmdVersion, parsedArgs, nil
	case "help", "-h", "--help":
		return CmdHelp, parsedArgs, nil
	}

	reason := "unknown command"
	if s := SuggestCommand(name); s != "" {
		reason = fmt.Sprintf("unknown command, did you mean '%s'?", s)
	}
	return CmdHelp, parsedArgs, NewValidationErrorWithExample("command", remaining[0], reason, "convertxpert help")
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			remaining = append(remaining, args[i:]...)
			return remaining, parsedArgs
		case arg == "--json":
			parsedArgs.JSON = true
		case arg == "--verbose":
			parsedArgs.Verbose = true
		case arg == "--config" && i+1 < len(args):
			i++
			parsedArgs.ConfigPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

// Env carries what command handlers read and write.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config *config.Config
	Engine *convert.Engine
}

// NewEnv returns an Env bound to the process standard streams.
func NewEnv(cfg *config.Config) *Env {
	return &Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: cfg,
		Engine: convert.New(nil),
	}
}

// SessionOptions builds the starting selections of a session from cfg.
func SessionOptions(cfg *config.Config) session.Options {
	return session.Options{
		Category:    cfg.Converter.DefaultCategory,
		From:        cfg.Converter.DefaultFrom,
		To:          cfg.Converter.DefaultTo,
		Value:       cfg.Converter.DefaultValue,
		RecentCount: cfg.Converter.RecentCount,
	}
}

// Execute runs a non-TUI command.
func (e *Env) Execute(cmd Command, args Args) error {
	switch cmd {
	case CmdConvert:
		return e.RunConvert(args)
	case CmdUnits:
		return e.RunUnits(args)
	case CmdBatch:
		return e.RunBatch(args)
	case CmdREPL:
		return e.RunREPL(args)
	case CmdConfig:
		return e.RunConfig(args)
	case CmdVersion:
		return e.RunVersion(args)
	case CmdHelp:
		e.PrintUsage()
		return nil
	default:
		return fmt.Errorf("command %s cannot run here", cmd)
	}
}

// =============================================================================
// NAME RESOLUTION
// =============================================================================

// resolveCategory maps a typed category to its canonical name and adds a
// suggestion to the error when a close match exists.
func (e *Env) resolveCategory(name string) (string, error) {
	reg := e.Engine.Registry()
	canon, err := reg.ResolveCategory(name)
	if err != nil {
		return "", withSuggestion(err, name, reg.Categories())
	}
	return canon, nil
}

func (e *Env) resolveUnit(category, name string) (string, error) {
	reg := e.Engine.Registry()
	canon, err := reg.Resolve(category, name)
	if err != nil {
		names, _ := reg.Units(category)
		return "", withSuggestion(err, name, names)
	}
	return canon, nil
}

func withSuggestion(err error, input string, candidates []string) error {
	if s := suggest(input, candidates); s != "" {
		return fmt.Errorf("%w (did you mean '%s'?)", err, s)
	}
	return err
}

// =============================================================================
// CONVERT
// =============================================================================

// RunConvert handles "convert <category> <value> <from> <to>".
func (e *Env) RunConvert(args Args) error {
	const usage = "convertxpert convert <category> <value> <from> <to>"

	p := NewArgParser(args.Raw)
	if err := requireArgs(p, 4, usage); err != nil {
		return err
	}

	value, err := ParseValue(p.Positional(1))
	if err != nil {
		return err
	}
	category, err := e.resolveCategory(p.Positional(0))
	if err != nil {
		return err
	}
	from, err := e.resolveUnit(category, p.Positional(2))
	if err != nil {
		return err
	}
	to, err := e.resolveUnit(category, p.Positional(3))
	if err != nil {
		return err
	}

	res, err := e.Engine.Convert(category, from, to, value)
	if err != nil {
		return err
	}
	logging.For("cli").WithField("category", category).Debug("converted")

	if args.JSON {
		data := ConvertData{
			Category: category,
			From:     from,
			To:       to,
			Input:    value,
			Display:  res.Display,
		}
		// JSON has no encoding for overflowed results; Display still carries them.
		if !math.IsInf(res.Value, 0) && !math.IsNaN(res.Value) {
			out := res.Value
			data.Output = &out
		}
		return NewJSONResponse(CmdConvert.String(), data).Write(e.Stdout)
	}

	_, err = fmt.Fprintf(e.Stdout, "%s %s = %s %s\n",
		history.FormatInput(value), from, RenderConditional(ValueStyle, res.Display), to)
	return err
}

// =============================================================================
// UNITS
// =============================================================================

// RunUnits handles "units [category]".
func (e *Env) RunUnits(args Args) error {
	p := NewArgParser(args.Raw)
	if name := p.Positional(0); name != "" {
		category, err := e.resolveCategory(name)
		if err != nil {
			return err
		}
		return e.printCategory(category, args.JSON)
	}

	reg := e.Engine.Registry()
	data := UnitsData{}
	for _, g := range units.Groups() {
		gd := GroupData{Name: g.Name}
		for _, c := range g.Categories {
			names, err := reg.Units(c)
			if err != nil {
				return err
			}
			gd.Categories = append(gd.Categories, CategoryData{Name: c, Units: names})
		}
		data.Groups = append(data.Groups, gd)
	}

	if args.JSON {
		return NewJSONResponse(CmdUnits.String(), data).Write(e.Stdout)
	}

	var b strings.Builder
	for i, g := range data.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(RenderConditional(SectionStyle, g.Name))
		b.WriteString("\n")
		rows := make([][]string, len(g.Categories))
		for j, c := range g.Categories {
			rows[j] = []string{"  " + c.Name, strings.Join(c.Units, ", ")}
		}
		b.WriteString(util.Columns(rows))
	}
	_, err := io.WriteString(e.Stdout, b.String())
	return err
}

func (e *Env) printCategory(category string, jsonMode bool) error {
	cat, err := e.Engine.Registry().Category(category)
	if err != nil {
		return err
	}

	if jsonMode {
		return NewJSONResponse(CmdUnits.String(), UnitsData{Groups: []GroupData{{
			Name:       groupOf(category),
			Categories: []CategoryData{{Name: category, Units: cat.Units()}},
		}}}).Write(e.Stdout)
	}

	rows := [][]string{{"Unit", unitColumn(cat.Kind())}}
	for _, name := range cat.Units() {
		u, err := cat.Unit(name)
		if err != nil {
			return err
		}
		detail := u.Formula
		if cat.Kind() == units.KindLinear {
			detail = convert.Format(u.Factor)
		}
		rows = append(rows, []string{name, detail})
	}

	fmt.Fprintf(e.Stdout, "%s (%s)\n", RenderConditional(TitleStyle, category), groupOf(category))
	_, err = io.WriteString(e.Stdout, util.Columns(rows))
	return err
}

func unitColumn(k units.Kind) string {
	if k == units.KindTemperature {
		return "Scale"
	}
	return "Per reference unit"
}

func groupOf(category string) string {
	for _, g := range units.Groups() {
		for _, c := range g.Categories {
			if c == category {
				return g.Name
			}
		}
	}
	return ""
}

// =============================================================================
// BATCH
// =============================================================================

// RunBatch handles "batch --input FILE [--output FILE] [--format F] [--link]".
// Rows that fail are reported on stderr; the remaining rows are still
// written. The command fails when any row failed.
func (e *Env) RunBatch(args Args) error {
	const usage = "convertxpert batch --input requests.csv [--output results.csv] [--format csv|json|md|xlsx]"

	p := NewArgParser(args.Raw, "link")
	input := p.FlagAny("input", "i")
	if input == "" {
		return ErrMissingArgument("--input", usage)
	}
	format := p.FlagAny("format", "f")
	if format == "" {
		format = e.Config.Export.Format
	}
	exporter, err := export.New(format)
	if err != nil {
		return ErrUnsupportedFormat(format, export.Formats())
	}
	if p.BoolFlag("link") && exporter.FileExtension() != ".csv" {
		return NewValidationError("--link", format, "download links are only produced for csv")
	}

	rows, err := e.readBatchInput(input)
	if err != nil {
		return NewCommandError("batch", "read input", err)
	}
	report := export.RunBatch(e.Engine, rows)

	for _, f := range report.Failures {
		fmt.Fprintf(e.Stderr, "%s %s\n", RenderConditional(WarningStyle, "skipped"), f.Error())
	}

	content, err := exporter.Export(report.Results)
	if err != nil {
		return NewCommandError("batch", "export", err)
	}
	if p.BoolFlag("link") {
		content = []byte(export.DataURILink(content) + "\n")
	}

	if out := p.FlagAny("output", "o"); out != "" && out != "-" {
		if err := util.AtomicWriteFile(out, content, 0644); err != nil {
			return NewCommandError("batch", "write output", err)
		}
		fmt.Fprintf(e.Stderr, "Wrote %d conversions to %s\n", len(report.Results), out)
	} else if _, err := e.Stdout.Write(content); err != nil {
		return NewCommandError("batch", "write output", err)
	}

	if n := len(report.Failures); n > 0 {
		return fmt.Errorf("%d of %d rows failed", n, n+len(report.Results))
	}
	return nil
}

func (e *Env) readBatchInput(path string) ([]export.Row, error) {
	if path == "-" {
		return export.ReadRequests(e.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return export.ReadRequests(bytes.NewReader(data))
}

// =============================================================================
// CONFIG
// =============================================================================

// RunConfig handles "config [show|path|init]".
func (e *Env) RunConfig(args Args) error {
	p := NewArgParser(args.Raw, "force")
	sub := strings.ToLower(p.Subcommand())

	switch sub {
	case "", "show":
		if args.JSON {
			return NewJSONResponse(CmdConfig.String(), e.Config).Write(e.Stdout)
		}
		_, err := io.WriteString(e.Stdout, e.Config.String())
		return err

	case "path":
		path, err := e.configPath(args)
		if err != nil {
			return &ConfigError{Err: err}
		}
		_, err = fmt.Fprintln(e.Stdout, path)
		return err

	case "init":
		path, err := e.configPath(args)
		if err != nil {
			return &ConfigError{Err: err}
		}
		if _, statErr := os.Stat(path); statErr == nil && !p.BoolFlag("force") {
			return &ConfigError{Path: path, Err: errors.New("file exists (use --force to overwrite)")}
		}
		if err := config.SaveTo(config.Default(), path); err != nil {
			return &ConfigError{Path: path, Err: err}
		}
		_, err = fmt.Fprintf(e.Stdout, "%s Wrote default configuration to %s\n",
			RenderConditional(SuccessStyle, "[OK]"), path)
		return err
	}

	return NewValidationErrorWithExample("subcommand", sub, "unknown config subcommand", "convertxpert config show|path|init")
}

func (e *Env) configPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ConfigPath()
}

// =============================================================================
// VERSION AND HELP
// =============================================================================

// RunVersion handles the "version" command.
func (e *Env) RunVersion(args Args) error {
	if args.JSON {
		return NewJSONResponse(CmdVersion.String(), VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Write(e.Stdout)
	}
	fmt.Fprintf(e.Stdout, "convertxpert version %s\n", Version)
	fmt.Fprintf(e.Stdout, "  Git commit: %s\n", GitCommit)
	_, err := fmt.Fprintf(e.Stdout, "  Build date: %s\n", BuildDate)
	return err
}

// PrintUsage prints the usage/help text.
func (e *Env) PrintUsage() {
	fmt.Fprintf(e.Stdout, usageText, Version)
}
