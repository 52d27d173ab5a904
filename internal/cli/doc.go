// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the one-shot commands of
// convertxpert.
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    cli.DisplayError(os.Stderr, err, args.JSON)
//	    os.Exit(cli.GetExitCode(err))
//	}
//	env := cli.NewEnv(cfg)
//	err = env.Execute(cmd, args)
//
// # Commands
//
//   - convert: single conversion, case-insensitive names
//   - units: list groups, categories and units
//   - batch: convert a CSV of requests and export the results
//   - repl: line-mode converter with in-memory line history
//   - config: show, locate or create the TOML configuration
//   - version, help
//
// The interactive TUI is started by main and lives in internal/ui.
// Handlers return errors; GetExitCode maps them to 1 (runtime), 2 (usage)
// or 3 (configuration). All commands accept --json.
package cli
