// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package convert implements the unit conversion engine.
package convert

import (
	"errors"
	"fmt"

	"github.com/jeranaias/convertxpert/internal/units"
)

// ErrDivisionByZero is returned when a source unit has a zero factor.
// The built-in table never has one.
var ErrDivisionByZero = errors.New("division by zero")

// =============================================================================
// TYPES
// =============================================================================

// Request is a single conversion request.
type Request struct {
	Category string
	From     string
	To       string
	Value    float64
}

// Result is the outcome of a conversion.
type Result struct {
	Value   float64
	Display string
}

// Engine converts values using a unit registry.
type Engine struct {
	reg *units.Registry
}

// New creates an engine. A nil registry selects units.Default().
func New(reg *units.Registry) *Engine {
	if reg == nil {
		reg = units.Default()
	}
	return &Engine{reg: reg}
}

// Registry returns the registry the engine reads from.
func (e *Engine) Registry() *units.Registry {
	return e.reg
}

// =============================================================================
// CONVERSION
// =============================================================================

// Convert converts value from one unit to another within a category.
// Unknown categories and units are rejected before any arithmetic.
func (e *Engine) Convert(category, from, to string, value float64) (Result, error) {
	cat, err := e.reg.Category(category)
	if err != nil {
		return Result{}, err
	}
	src, err := cat.Unit(from)
	if err != nil {
		return Result{}, err
	}
	dst, err := cat.Unit(to)
	if err != nil {
		return Result{}, err
	}

	var out float64
	switch cat.Kind() {
	case units.KindTemperature:
		out = temperature(value, src.Name, dst.Name)
	case units.KindLinear:
		if src.Factor == 0 {
			return Result{}, fmt.Errorf("%w: %s has a zero factor in %s", ErrDivisionByZero, src.Name, category)
		}
		if src.Name == dst.Name {
			out = value
		} else {
			out = value * (dst.Factor / src.Factor)
		}
	default:
		return Result{}, fmt.Errorf("%w: %q has unsupported kind %s", units.ErrUnknownCategory, category, cat.Kind())
	}

	return Result{Value: out, Display: Format(out)}, nil
}

// Do runs a Request.
func (e *Engine) Do(req Request) (Result, error) {
	return e.Convert(req.Category, req.From, req.To, req.Value)
}

// temperature converts through Celsius. Identical units short-circuit so the
// value comes back without a floating round trip.
func temperature(value float64, from, to string) float64 {
	if from == to {
		return value
	}

	var celsius float64
	switch from {
	case units.Kelvin:
		celsius = value - 273.15
	case units.Fahrenheit:
		celsius = (value - 32) * 5 / 9
	default:
		celsius = value
	}

	switch to {
	case units.Kelvin:
		return celsius + 273.15
	case units.Fahrenheit:
		return celsius*9/5 + 32
	default:
		return celsius
	}
}

// Swap exchanges the source and destination units.
func Swap(from, to string) (string, string) {
	return to, from
}
