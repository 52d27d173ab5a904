// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package units

// Category keys of the built-in table.
const (
	Length      = "Length"
	WeightMass  = "Weight/Mass"
	Temperature = "Temperature"
	Volume      = "Volume"
	Time        = "Time"
	Speed       = "Speed"
	Energy      = "Energy"
	Data        = "Data"
)

// Temperature unit names.
const (
	Celsius    = "Celsius"
	Fahrenheit = "Fahrenheit"
	Kelvin     = "Kelvin"
)

// Table returns the built-in category definitions. Each linear category uses
// factor 1 for its reference unit.
func Table() []Definition {
	return []Definition{
		{Name: Length, Kind: KindLinear, Units: []Unit{
			{Name: "Meter", Factor: 1},
			{Name: "Kilometer", Factor: 0.001},
			{Name: "Centimeter", Factor: 100},
			{Name: "Millimeter", Factor: 1000},
			{Name: "Mile", Factor: 0.000621371},
			{Name: "Yard", Factor: 1.09361},
			{Name: "Foot", Factor: 3.28084},
			{Name: "Inch", Factor: 39.3701},
		}},
		{Name: WeightMass, Kind: KindLinear, Units: []Unit{
			{Name: "Kilogram", Factor: 1},
			{Name: "Gram", Factor: 1000},
			{Name: "Milligram", Factor: 1000000},
			{Name: "Pound", Factor: 2.20462},
			{Name: "Ounce", Factor: 35.274},
		}},
		{Name: Temperature, Kind: KindTemperature, Units: []Unit{
			{Name: Celsius, Formula: "C"},
			{Name: Fahrenheit, Formula: "F"},
			{Name: Kelvin, Formula: "K"},
		}},
		{Name: Volume, Kind: KindLinear, Units: []Unit{
			{Name: "Liter", Factor: 1},
			{Name: "Milliliter", Factor: 1000},
			{Name: "Gallon (US)", Factor: 0.264172},
			{Name: "Cubic Meter", Factor: 0.001},
		}},
		{Name: Time, Kind: KindLinear, Units: []Unit{
			{Name: "Second", Factor: 1},
			{Name: "Minute", Factor: 1.0 / 60},
			{Name: "Hour", Factor: 1.0 / 3600},
			{Name: "Day", Factor: 1.0 / 86400},
		}},
		{Name: Speed, Kind: KindLinear, Units: []Unit{
			{Name: "Meter per second", Factor: 1},
			{Name: "Kilometer per hour", Factor: 3.6},
			{Name: "Mile per hour", Factor: 2.23694},
		}},
		{Name: Energy, Kind: KindLinear, Units: []Unit{
			{Name: "Joule", Factor: 1},
			{Name: "Kilojoule", Factor: 0.001},
			{Name: "Calorie", Factor: 0.239006},
			{Name: "Kilocalorie", Factor: 0.000239006},
		}},
		{Name: Data, Kind: KindLinear, Units: []Unit{
			{Name: "Bit", Factor: 1},
			{Name: "Byte", Factor: 0.125},
			{Name: "Kilobyte", Factor: 0.000125},
			{Name: "Megabyte", Factor: 1.25e-7},
		}},
	}
}

// Group is a named set of categories shown together in the sidebar.
type Group struct {
	Name       string
	Categories []string
}

// Groups returns the sidebar grouping of the built-in categories.
func Groups() []Group {
	return []Group{
		{Name: "Basic", Categories: []string{Length, WeightMass, Volume, Temperature}},
		{Name: "Science", Categories: []string{Energy, Speed, Time}},
		{Name: "Digital", Categories: []string{Data}},
	}
}
