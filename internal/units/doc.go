// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package units provides the static category/unit table used by the converter.
//
// # Key Types
//
//   - Registry: immutable category lookup, built once by Default()
//   - Category: ordered units of one kind (linear or temperature)
//   - Unit: a unit name plus its factor or formula tag
//
// # Usage
//
//	reg := units.Default()
//	names, err := reg.Units(units.Length)
//	factor, err := reg.Factor(units.Length, "Kilometer") // 0.001
//
// Lookups fail with ErrUnknownCategory or ErrUnknownUnit, which can be
// matched with errors.Is.
package units
