package kicad

import "math"

const nanometersPerMM = 1_000_000

// ToMM converts KiCad internal units (nanometers) to millimeters.
func ToMM(nm int64) float64 {
	return float64(nm) / nanometersPerMM
}

// FromMM converts millimeters to the nearest nanometer.
func FromMM(mm float64) int64 {
	return int64(math.Round(mm * nanometersPerMM))
}
