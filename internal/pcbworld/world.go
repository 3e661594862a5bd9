package pcbworld

import (
	"sort"
	"sync"

	"github.com/danmuck/kicadctl/internal/kicad"
	"github.com/rs/zerolog"
)

// EntityID identifies an entity within one World. IDs are never reused.
type EntityID uint64

type Kind int

const (
	KindFootprint Kind = iota
	KindResistor
	KindCapacitor
	KindIC
	KindConnector
	KindMountingHole
)

var kindNames = [...]string{
	KindFootprint:    "footprint",
	KindResistor:     "resistor",
	KindCapacitor:    "capacitor",
	KindIC:           "ic",
	KindConnector:    "connector",
	KindMountingHole: "mounting_hole",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

type Position struct {
	X        float64
	Y        float64
	Rotation float64
}

type Info struct {
	Reference     string
	Value         string
	FootprintName string
}

type Flags struct {
	ExcludeFromBOM bool
	DoNotPopulate  bool
	Locked         bool
}

type MountingHole struct {
	DiameterMM float64
	ScrewSize  string
}

// Entity is one stored record. Hole is set only for KindMountingHole.
type Entity struct {
	ID          EntityID
	UUID        string
	Kind        Kind
	Info        Info
	Position    Position
	Layer       string
	Description string
	Flags       Flags
	Hole        *MountingHole
}

// IsComponent reports whether e counts as a placed component. Mounting
// holes are tracked separately.
func (e Entity) IsComponent() bool {
	return e.Kind != KindMountingHole
}

// World stores the entities of one board. It is safe for concurrent use.
type World struct {
	logger zerolog.Logger

	mu       sync.RWMutex
	nextID   EntityID
	entities map[EntityID]Entity
}

func New(logger zerolog.Logger) *World {
	return &World{
		logger:   logger,
		entities: make(map[EntityID]Entity),
	}
}

// Spawn stores e under a fresh ID and returns it. e.ID is ignored.
func (w *World) Spawn(e Entity) EntityID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	e.ID = w.nextID
	w.entities[e.ID] = e
	w.logger.Trace().
		Uint64("entity", uint64(e.ID)).
		Str("kind", e.Kind.String()).
		Str("reference", e.Info.Reference).
		Msg("pcbworld.World.Spawn")
	return e.ID
}

// SpawnFootprint classifies fp and stores it.
func (w *World) SpawnFootprint(fp kicad.FootprintData) EntityID {
	e := Entity{
		UUID: fp.ID,
		Kind: Classify(fp),
		Info: Info{
			Reference:     fp.Reference,
			Value:         fp.Value,
			FootprintName: fp.FootprintName,
		},
		Position: Position{X: fp.X, Y: fp.Y, Rotation: fp.Rotation},
		Layer:    fp.Layer,
		Flags: Flags{
			ExcludeFromBOM: fp.ExcludeFromBOM,
			DoNotPopulate:  fp.DoNotPopulate,
			Locked:         fp.Locked,
		},
	}
	if fp.Description != nil {
		e.Description = *fp.Description
	}
	if e.Kind == KindMountingHole {
		diameter, screw := HoleSize(fp.FootprintName)
		e.Hole = &MountingHole{DiameterMM: diameter, ScrewSize: screw}
	}
	return w.Spawn(e)
}

// LoadSummary counts what Load stored.
type LoadSummary struct {
	Components    int
	MountingHoles int
}

// Load replaces the world contents with fps.
func (w *World) Load(fps []kicad.FootprintData) LoadSummary {
	w.Reset()
	var sum LoadSummary
	for _, fp := range fps {
		w.SpawnFootprint(fp)
		if IsMountingHole(fp) {
			sum.MountingHoles++
		} else {
			sum.Components++
		}
	}
	w.logger.Debug().
		Int("components", sum.Components).
		Int("mounting_holes", sum.MountingHoles).
		Msg("pcbworld.World.Load")
	return sum
}

// Reset removes all entities. IDs keep increasing across resets.
func (w *World) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entities = make(map[EntityID]Entity)
}

func (w *World) Get(id EntityID) (Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[id]
	return e, ok
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}

// Query returns copies of the entities matching every predicate, ordered by
// ID.
func (w *World) Query(preds ...func(Entity) bool) []Entity {
	w.mu.RLock()
	out := make([]Entity, 0, len(w.entities))
	for _, e := range w.entities {
		if matchAll(e, preds) {
			out = append(out, e)
		}
	}
	w.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindReference returns the first entity whose reference is ref.
func (w *World) FindReference(ref string) (Entity, bool) {
	matches := w.Query(func(e Entity) bool { return e.Info.Reference == ref })
	if len(matches) == 0 {
		return Entity{}, false
	}
	return matches[0], true
}

func matchAll(e Entity, preds []func(Entity) bool) bool {
	for _, p := range preds {
		if !p(e) {
			return false
		}
	}
	return true
}

// OfKind matches entities of any of kinds.
func OfKind(kinds ...Kind) func(Entity) bool {
	return func(e Entity) bool {
		for _, k := range kinds {
			if e.Kind == k {
				return true
			}
		}
		return false
	}
}

// OnLayer matches entities on layer.
func OnLayer(layer string) func(Entity) bool {
	return func(e Entity) bool {
		return e.Layer == layer
	}
}

// Components matches everything except mounting holes.
func Components(e Entity) bool {
	return e.IsComponent()
}
