package pcbworld

import "sort"

const (
	LayerFront = "F.Cu"
	LayerBack  = "B.Cu"
)

// Statistics summarizes the components of a world. Mounting holes are
// counted only in MountingHoles.
type Statistics struct {
	Total          int `json:"total"`
	Front          int `json:"front"`
	Back           int `json:"back"`
	OtherLayers    int `json:"other_layers"`
	MountingHoles  int `json:"mounting_holes"`
	DoNotPopulate  int `json:"do_not_populate"`
	ExcludeFromBOM int `json:"exclude_from_bom"`
	Locked         int `json:"locked"`
}

// CategoryCount is one row of a type breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// LayerCount is one row of a layer breakdown.
type LayerCount struct {
	Layer string `json:"layer"`
	Count int    `json:"count"`
}

func (w *World) Statistics() Statistics {
	var s Statistics
	for _, e := range w.Query() {
		if !e.IsComponent() {
			s.MountingHoles++
			continue
		}
		s.Total++
		switch e.Layer {
		case LayerFront:
			s.Front++
		case LayerBack:
			s.Back++
		default:
			s.OtherLayers++
		}
		if e.Flags.DoNotPopulate {
			s.DoNotPopulate++
		}
		if e.Flags.ExcludeFromBOM {
			s.ExcludeFromBOM++
		}
		if e.Flags.Locked {
			s.Locked++
		}
	}
	return s
}

// Breakdown groups components by Category, largest first. Ties sort by
// name.
func (w *World) Breakdown() []CategoryCount {
	counts := make(map[string]int)
	for _, e := range w.Query(Components) {
		counts[Category(e.Info.Reference)]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Layers groups components by layer name, largest first. Ties sort by name.
func (w *World) Layers() []LayerCount {
	counts := make(map[string]int)
	for _, e := range w.Query(Components) {
		counts[e.Layer]++
	}
	out := make([]LayerCount, 0, len(counts))
	for l, n := range counts {
		out = append(out, LayerCount{Layer: l, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Layer < out[j].Layer
	})
	return out
}

// MountingHoles returns the mounting hole entities ordered by ID.
func (w *World) MountingHoles() []Entity {
	return w.Query(OfKind(KindMountingHole))
}
