// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package units provides the static category/unit table used by the converter.
package units

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/cases"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrNotLinear       = errors.New("category is not linear")
)

// =============================================================================
// TYPES
// =============================================================================

// Kind tells how units of a category are converted.
type Kind int

const (
	// KindLinear categories convert by a multiplicative factor.
	KindLinear Kind = iota
	// KindTemperature categories convert through an affine formula.
	KindTemperature
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindTemperature:
		return "temperature"
	default:
		return "unknown"
	}
}

// Unit is a single unit of a category.
//
// For linear categories Factor is the value of one reference unit expressed
// in this unit (Meter=1, Kilometer=0.001). Temperature units carry a Formula
// tag ("C", "F" or "K") instead.
type Unit struct {
	Name    string
	Factor  float64
	Formula string
}

// Definition describes a category before it is loaded into a Registry.
type Definition struct {
	Name  string
	Kind  Kind
	Units []Unit
}

// Category is a named group of compatible units.
type Category struct {
	name   string
	kind   Kind
	units  []Unit
	index  map[string]int
	folded map[string]string
}

// Name returns the category key.
func (c *Category) Name() string { return c.name }

// Kind returns the conversion kind.
func (c *Category) Kind() Kind { return c.kind }

// Units returns the unit names in table order.
func (c *Category) Units() []string {
	names := make([]string, len(c.units))
	for i, u := range c.units {
		names[i] = u.Name
	}
	return names
}

// Unit returns the named unit.
func (c *Category) Unit(name string) (Unit, error) {
	i, ok := c.index[name]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q in %s", ErrUnknownUnit, name, c.name)
	}
	return c.units[i], nil
}

// Has reports whether the unit belongs to the category.
func (c *Category) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry is an immutable lookup table of categories.
// It is safe for concurrent use since nothing mutates it after New returns.
type Registry struct {
	order  []string
	byName map[string]*Category
	folded map[string]string
}

// New builds a registry from definitions. Category and unit names must be
// unique; a duplicate is reported as an error.
func New(defs []Definition) (*Registry, error) {
	r := &Registry{
		order:  make([]string, 0, len(defs)),
		byName: make(map[string]*Category, len(defs)),
		folded: make(map[string]string, len(defs)),
	}

	for _, def := range defs {
		if def.Name == "" {
			return nil, errors.New("category name cannot be empty")
		}
		if _, dup := r.byName[def.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q", def.Name)
		}

		cat := &Category{
			name:   def.Name,
			kind:   def.Kind,
			units:  make([]Unit, len(def.Units)),
			index:  make(map[string]int, len(def.Units)),
			folded: make(map[string]string, len(def.Units)),
		}
		copy(cat.units, def.Units)

		for i, u := range def.Units {
			if u.Name == "" {
				return nil, fmt.Errorf("empty unit name in %s", def.Name)
			}
			if _, dup := cat.index[u.Name]; dup {
				return nil, fmt.Errorf("duplicate unit %q in %s", u.Name, def.Name)
			}
			cat.index[u.Name] = i
			cat.folded[fold(u.Name)] = u.Name
		}

		r.order = append(r.order, def.Name)
		r.byName[def.Name] = cat
		r.folded[fold(def.Name)] = def.Name
	}

	return r, nil
}

// Categories returns the category names in table order.
func (r *Registry) Categories() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Category returns the named category.
func (r *Registry) Category(name string) (*Category, error) {
	cat, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return cat, nil
}

// Units returns the ordered unit names of a category.
func (r *Registry) Units(category string) ([]string, error) {
	cat, err := r.Category(category)
	if err != nil {
		return nil, err
	}
	return cat.Units(), nil
}

// Factor returns the factor of a unit in a linear category.
func (r *Registry) Factor(category, unit string) (float64, error) {
	cat, err := r.Category(category)
	if err != nil {
		return 0, err
	}
	if cat.kind != KindLinear {
		return 0, fmt.Errorf("%w: %s", ErrNotLinear, category)
	}
	u, err := cat.Unit(unit)
	if err != nil {
		return 0, err
	}
	return u.Factor, nil
}

// ResolveCategory maps a user-typed category name to its canonical key,
// ignoring case.
func (r *Registry) ResolveCategory(name string) (string, error) {
	if _, ok := r.byName[name]; ok {
		return name, nil
	}
	if canon, ok := r.folded[fold(name)]; ok {
		return canon, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Resolve maps a user-typed unit name to its canonical name within a
// category, ignoring case.
func (r *Registry) Resolve(category, unit string) (string, error) {
	cat, err := r.Category(category)
	if err != nil {
		return "", err
	}
	if cat.Has(unit) {
		return unit, nil
	}
	if canon, ok := cat.folded[fold(unit)]; ok {
		return canon, nil
	}
	return "", fmt.Errorf("%w: %q in %s", ErrUnknownUnit, unit, category)
}

// fold returns the case-folded form of s. A fresh Caser is used per call
// because Casers carry state.
func fold(s string) string {
	return cases.Fold().String(s)
}

// =============================================================================
// PROCESS-WIDE DEFAULT
// =============================================================================

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in registry. It is constructed once.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := New(Table())
		if err != nil {
			panic("units: invalid built-in table: " + err.Error())
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}
