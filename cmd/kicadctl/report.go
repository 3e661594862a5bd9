package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/danmuck/kicadctl/internal/kicad"
	"github.com/danmuck/kicadctl/internal/pcbworld"
)

const (
	maxValueWidth     = 12
	maxFootprintWidth = 20
	maxDescWidth      = 24
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// truncate shortens s to limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit || limit <= 3 {
		return s
	}
	return string(r[:limit-3]) + "..."
}

func writeFootprints(w io.Writer, fps []kicad.FootprintData) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "REF\tVALUE\tFOOTPRINT\tDESCRIPTION\tX(mm)\tY(mm)\tROT\tLAYER\tFLAGS")
	for _, fp := range fps {
		desc := ""
		if fp.Description != nil {
			desc = *fp.Description
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\t%.1f\t%.0f\t%s\t%s\n",
			fp.Reference,
			truncate(fp.Value, maxValueWidth),
			truncate(fp.FootprintName, maxFootprintWidth),
			truncate(desc, maxDescWidth),
			fp.X, fp.Y, fp.Rotation,
			fp.Layer,
			flagString(fp),
		)
	}
	return tw.Flush()
}

func flagString(fp kicad.FootprintData) string {
	var flags []string
	if fp.DoNotPopulate {
		flags = append(flags, "dnp")
	}
	if fp.ExcludeFromBOM {
		flags = append(flags, "no-bom")
	}
	if fp.Locked {
		flags = append(flags, "locked")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

// writeSummary prints the board totals. Flag rows appear only when
// non-zero.
func writeSummary(w io.Writer, s pcbworld.Statistics) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "METRIC\tCOUNT")
	fmt.Fprintf(tw, "Total Components\t%d\n", s.Total)
	fmt.Fprintf(tw, "Front Layer (%s)\t%d\n", pcbworld.LayerFront, s.Front)
	fmt.Fprintf(tw, "Back Layer (%s)\t%d\n", pcbworld.LayerBack, s.Back)
	fmt.Fprintf(tw, "Other Layers\t%d\n", s.OtherLayers)
	fmt.Fprintf(tw, "Mounting Holes\t%d\n", s.MountingHoles)
	if s.DoNotPopulate > 0 {
		fmt.Fprintf(tw, "Do Not Populate (DNP)\t%d\n", s.DoNotPopulate)
	}
	if s.ExcludeFromBOM > 0 {
		fmt.Fprintf(tw, "Exclude from BOM\t%d\n", s.ExcludeFromBOM)
	}
	if s.Locked > 0 {
		fmt.Fprintf(tw, "Locked\t%d\n", s.Locked)
	}
	return tw.Flush()
}

func writeBreakdown(w io.Writer, rows []pcbworld.CategoryCount) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "TYPE\tCOUNT")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\n", row.Category, row.Count)
	}
	return tw.Flush()
}

func writeLayers(w io.Writer, rows []pcbworld.LayerCount) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "LAYER\tCOMPONENTS")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\n", row.Layer, row.Count)
	}
	return tw.Flush()
}

func writeMountingHoles(w io.Writer, holes []pcbworld.Entity) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "REF\tSCREW\tDIAMETER(mm)\tX(mm)\tY(mm)\tLAYER")
	for _, e := range holes {
		if e.Hole == nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%.1f\t%s\n",
			e.Info.Reference, e.Hole.ScrewSize, e.Hole.DiameterMM,
			e.Position.X, e.Position.Y, e.Layer)
	}
	return tw.Flush()
}
