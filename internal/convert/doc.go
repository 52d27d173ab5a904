// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package convert implements the unit conversion engine.
//
// Linear categories convert with value * (factor[to] / factor[from]).
// Temperature converts through an intermediate Celsius value.
//
// # Usage
//
//	eng := convert.New(units.Default())
//	res, err := eng.Convert(units.Length, "Meter", "Kilometer", 1000)
//	// res.Value == 1, res.Display == "1"
package convert
