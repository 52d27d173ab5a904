// convertxpert - convert between units from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/convertxpert/internal/cli"
	"github.com/jeranaias/convertxpert/internal/config"
	"github.com/jeranaias/convertxpert/internal/convert"
	"github.com/jeranaias/convertxpert/internal/logging"
	"github.com/jeranaias/convertxpert/internal/session"
	"github.com/jeranaias/convertxpert/internal/ui/converter"
	"github.com/jeranaias/convertxpert/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		return fail(err, args.JSON)
	}

	// Help and version work even with a broken config file.
	if cmd == cli.CmdHelp || cmd == cli.CmdVersion {
		env := cli.NewEnv(config.Default())
		if err := env.Execute(cmd, args); err != nil {
			return fail(err, args.JSON)
		}
		return cli.ExitSuccess
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return fail(err, args.JSON)
	}
	config.SetGlobal(cfg)

	if err := initLogging(cmd, args, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (logging disabled)\n", err)
	}
	defer logging.Close()

	if cmd == cli.CmdTUI {
		err = runTUI(cfg)
	} else {
		err = cli.NewEnv(cfg).Execute(cmd, args)
	}
	if err != nil {
		logging.For("main").WithError(err).WithField("command", cmd.String()).Error("command failed")
		return fail(err, args.JSON)
	}
	return cli.ExitSuccess
}

func fail(err error, jsonMode bool) int {
	if jsonMode {
		cli.DisplayError(os.Stdout, err, true)
	} else {
		cli.DisplayError(os.Stderr, err, false)
	}
	return cli.GetExitCode(err)
}

func loadConfig(args cli.Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, &cli.ConfigError{Path: args.ConfigPath, Err: err}
	}
	return cfg, nil
}

// initLogging sends logs to the configured file while the TUI owns the
// terminal, and to stderr (warnings only unless --verbose) otherwise.
func initLogging(cmd cli.Command, args cli.Args, cfg *config.Config) error {
	opts := logging.FromConfig(cfg)
	if cmd != cli.CmdTUI {
		opts.Writer = os.Stderr
		opts.Level = "warn"
	}
	if args.Verbose {
		opts.Level = "debug"
	}
	return logging.Init(opts)
}

func runTUI(cfg *config.Config) error {
	if err := cli.RequiresTTY("start the interactive converter", cli.IsStdoutTTY); err != nil {
		return err
	}

	theme := styles.NewTheme(cfg.UI.Theme).WithCompact(cfg.UI.CompactMode)
	store := session.NewStore(convert.New(nil), cli.SessionOptions(cfg), cfg.IdleTimeout())

	m, err := converter.New(store, theme, converter.Options{
		ExportDir:    cfg.Export.OutputDir,
		ExportFormat: cfg.Export.Format,
	})
	if err != nil {
		return &cli.ConfigError{Err: err}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	if fm, ok := final.(converter.Model); ok {
		logging.For("main").
			WithField("session_id", fm.Session().ID()).
			WithField("conversions", fm.Session().History().Len()).
			Info("session ended")
		store.End(fm.Session().ID())
	}
	return nil
}
