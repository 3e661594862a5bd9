package kicad

import "github.com/danmuck/kicadctl/internal/kiapi"

// KiCadVersionInfo is the version reported by the connected KiCad.
type KiCadVersionInfo struct {
	Major uint32
	Minor uint32
	Patch uint32
	Full  string
}

func versionInfo(v *kiapi.KiCadVersion) KiCadVersionInfo {
	if v == nil {
		return KiCadVersionInfo{}
	}
	return KiCadVersionInfo{
		Major: v.Major,
		Minor: v.Minor,
		Patch: v.Patch,
		Full:  v.FullVersion,
	}
}

// BoardData describes the addressed board document.
type BoardData struct {
	Name        string
	ProjectName *string
	Document    *kiapi.DocumentSpecifier
}

// FootprintData is one placed footprint with positions in millimeters.
type FootprintData struct {
	ID             string
	Reference      string
	Value          string
	FootprintName  string
	X              float64
	Y              float64
	Rotation       float64
	Layer          string
	Description    *string
	ExcludeFromBOM bool
	DoNotPopulate  bool
	Locked         bool
}

// FootprintList is the result of GetFootprints. Skipped counts returned
// items that could not be decoded as footprints.
type FootprintList struct {
	Footprints []FootprintData
	Skipped    int
}
