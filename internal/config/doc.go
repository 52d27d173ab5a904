// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for convertxpert.
//
// # Configuration Precedence
//
//   - Environment variables (CONVERTXPERT_*)
//   - ~/.convertxpert/config.toml (CONVERTXPERT_HOME moves the directory)
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	category := cfg.Converter.DefaultCategory
package config
