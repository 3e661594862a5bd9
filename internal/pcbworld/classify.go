package pcbworld

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/kicadctl/internal/kicad"
)

// Mounting holes without a parsable size get the common M3 clearance hole.
const (
	DefaultHoleDiameterMM = 3.2
	DefaultScrewSize      = "M3"
)

// Classify picks the entity kind for fp. Mounting holes win over the
// reference prefix.
func Classify(fp kicad.FootprintData) Kind {
	if IsMountingHole(fp) {
		return KindMountingHole
	}
	if fp.Reference == "" {
		return KindFootprint
	}
	switch fp.Reference[0] {
	case 'R':
		return KindResistor
	case 'C':
		return KindCapacitor
	case 'U':
		return KindIC
	case 'J':
		return KindConnector
	}
	return KindFootprint
}

// IsMountingHole matches H and MH references and anything named after the
// stock MountingHole library.
func IsMountingHole(fp kicad.FootprintData) bool {
	ref := fp.Reference
	switch {
	case strings.HasPrefix(ref, "H"), strings.HasPrefix(ref, "MH"):
		return true
	case strings.Contains(ref, "MountingHole"), strings.Contains(fp.Value, "MountingHole"):
		return true
	case strings.Contains(fp.FootprintName, "MountingHole"), strings.Contains(fp.FootprintName, "Hole_"):
		return true
	}
	return false
}

// HoleSize reads the drill diameter from a footprint name such as
// MountingHole_3.2mm_M3 and maps it to a metric screw size. Names without a
// diameter yield the M3 default.
func HoleSize(footprintName string) (float64, string) {
	d, ok := parseDiameter(footprintName)
	if !ok {
		return DefaultHoleDiameterMM, DefaultScrewSize
	}
	return d, ScrewSize(d)
}

func parseDiameter(name string) (float64, bool) {
	idx := strings.Index(name, "mm")
	if idx <= 0 {
		return 0, false
	}
	start := idx
	for start > 0 {
		c := name[start-1]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		start--
	}
	if start == idx {
		return 0, false
	}
	d, err := strconv.ParseFloat(name[start:idx], 64)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// ScrewSize maps a clearance hole diameter to the screw it fits.
func ScrewSize(diameterMM float64) string {
	switch {
	case diameterMM >= 2.0 && diameterMM < 2.5:
		return "M2"
	case diameterMM >= 2.5 && diameterMM < 3.5:
		return "M3"
	case diameterMM >= 3.5 && diameterMM < 4.5:
		return "M4"
	case diameterMM >= 4.5 && diameterMM < 5.5:
		return "M5"
	case diameterMM >= 5.5 && diameterMM < 6.5:
		return "M6"
	}
	return fmt.Sprintf("%gmm", diameterMM)
}

// Category is the component family named by a reference designator prefix.
func Category(reference string) string {
	switch {
	case strings.HasPrefix(reference, "SW"):
		return "Switches"
	case strings.HasPrefix(reference, "TP"):
		return "Test Points"
	case reference == "":
		return "Other"
	}
	switch reference[0] {
	case 'U':
		return "ICs"
	case 'R':
		return "Resistors"
	case 'C':
		return "Capacitors"
	case 'L':
		return "Inductors"
	case 'D':
		return "Diodes/LEDs"
	case 'Q':
		return "Transistors"
	case 'Y':
		return "Crystals/Oscillators"
	case 'J':
		return "Connectors"
	}
	return "Other"
}
