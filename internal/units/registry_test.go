// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TABLE TESTS
// =============================================================================

func TestDefault_CategoryOrder(t *testing.T) {
	want := []string{Length, WeightMass, Temperature, Volume, Time, Speed, Energy, Data}
	assert.Equal(t, want, Default().Categories())
}

func TestDefault_SameInstance(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestUnits_Order(t *testing.T) {
	got, err := Default().Units(Length)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Meter", "Kilometer", "Centimeter", "Millimeter",
		"Mile", "Yard", "Foot", "Inch",
	}, got)
}

func TestFactor(t *testing.T) {
	tests := []struct {
		category string
		unit     string
		want     float64
	}{
		{Length, "Meter", 1},
		{Length, "Kilometer", 0.001},
		{Length, "Inch", 39.3701},
		{WeightMass, "Milligram", 1000000},
		{Volume, "Gallon (US)", 0.264172},
		{Time, "Minute", 1.0 / 60},
		{Time, "Day", 1.0 / 86400},
		{Speed, "Kilometer per hour", 3.6},
		{Energy, "Kilocalorie", 0.000239006},
		{Data, "Megabyte", 1.25e-7},
	}

	reg := Default()
	for _, tc := range tests {
		got, err := reg.Factor(tc.category, tc.unit)
		require.NoError(t, err, "%s/%s", tc.category, tc.unit)
		assert.Equal(t, tc.want, got, "%s/%s", tc.category, tc.unit)
	}
}

func TestFactor_ReferenceUnitIsOne(t *testing.T) {
	reg := Default()
	for _, name := range reg.Categories() {
		cat, err := reg.Category(name)
		require.NoError(t, err)
		if cat.Kind() != KindLinear {
			continue
		}
		first := cat.Units()[0]
		f, err := reg.Factor(name, first)
		require.NoError(t, err)
		assert.Equal(t, 1.0, f, "reference unit of %s", name)
	}
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestErrors(t *testing.T) {
	reg := Default()

	_, err := reg.Units("Pressure")
	assert.True(t, errors.Is(err, ErrUnknownCategory))

	_, err = reg.Factor(Length, "Furlong")
	assert.True(t, errors.Is(err, ErrUnknownUnit))

	_, err = reg.Factor("Pressure", "Pascal")
	assert.True(t, errors.Is(err, ErrUnknownCategory))

	_, err = reg.Factor(Temperature, Celsius)
	assert.True(t, errors.Is(err, ErrNotLinear))
}

func TestNew_Duplicates(t *testing.T) {
	_, err := New([]Definition{
		{Name: "A", Units: []Unit{{Name: "x", Factor: 1}}},
		{Name: "A", Units: []Unit{{Name: "y", Factor: 1}}},
	})
	assert.Error(t, err)

	_, err = New([]Definition{
		{Name: "A", Units: []Unit{{Name: "x", Factor: 1}, {Name: "x", Factor: 2}}},
	})
	assert.Error(t, err)
}

// =============================================================================
// RESOLVE TESTS
// =============================================================================

func TestResolve(t *testing.T) {
	reg := Default()

	got, err := reg.Resolve(Length, "kilometer")
	require.NoError(t, err)
	assert.Equal(t, "Kilometer", got)

	got, err = reg.Resolve(Volume, "GALLON (US)")
	require.NoError(t, err)
	assert.Equal(t, "Gallon (US)", got)

	_, err = reg.Resolve(Length, "parsec")
	assert.True(t, errors.Is(err, ErrUnknownUnit))
}

func TestResolveCategory(t *testing.T) {
	reg := Default()

	got, err := reg.ResolveCategory("weight/mass")
	require.NoError(t, err)
	assert.Equal(t, WeightMass, got)

	_, err = reg.ResolveCategory("pressure")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestGroups_CoverTable(t *testing.T) {
	seen := map[string]bool{}
	for _, g := range Groups() {
		for _, c := range g.Categories {
			_, err := Default().Category(c)
			require.NoError(t, err)
			seen[c] = true
		}
	}
	assert.Len(t, seen, len(Default().Categories()))
}
