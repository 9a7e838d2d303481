package timeline

import (
	"github.com/google/uuid"
)

// Scene groups entities and derives its own duration from them.
//
// Duration is the max of start+duration over entities that carry an
// explicit duration and are not BGM. Until-scene-end entities and BGM
// never contribute: their effective window is derived FROM the scene
// duration. A scene holding only such entities has duration 0.
type Scene struct {
	id       string
	entities []*Entity

	start float64

	duration  float64
	dirty     bool
	finalized bool
}

// NewScene creates an empty scene at absolute start 0.
func NewScene() *Scene {
	return &Scene{id: uuid.NewString()}
}

func (s *Scene) ID() string { return s.id }

func (s *Scene) Start() float64 { return s.start }

// Entities returns the entities in insertion (z) order.
func (s *Scene) Entities() []*Entity { return s.entities }

// StartAt sets the scene's absolute start offset on the master
// timeline.
func (s *Scene) StartAt(t float64) *Scene {
	if s.finalized {
		panic(&StateError{Op: "Scene.StartAt", Reason: "scene is finalized"})
	}
	if t < 0 {
		panic(configErrf(s.id, "scene start must be non-negative, got %f", t))
	}
	s.start = t
	return s
}

// Add appends entities in z-order. A configuration error recorded
// during an entity's fluent setup surfaces here, and a bad entity is
// not admitted; previously added entities are unaffected.
func (s *Scene) Add(entities ...*Entity) error {
	if s.finalized {
		return &StateError{Op: "Scene.Add", Reason: "scene is finalized"}
	}
	for _, e := range entities {
		if err := e.Err(); err != nil {
			return err
		}
		s.entities = append(s.entities, e)
		s.dirty = true
	}
	return nil
}

// MustAdd is Add for construction code that treats failure as fatal.
func (s *Scene) MustAdd(entities ...*Entity) *Scene {
	if err := s.Add(entities...); err != nil {
		panic(err)
	}
	return s
}

// Duration returns the derived scene duration. The value is computed
// lazily on first query after the entity set changed, not reactively on
// every Add.
func (s *Scene) Duration() float64 {
	if s.dirty {
		s.recompute()
	}
	return s.duration
}

func (s *Scene) recompute() {
	max := 0.0
	for _, e := range s.entities {
		if e.IsBGM() {
			continue
		}
		d, ok := e.Duration()
		if !ok {
			continue
		}
		if end := e.Start() + d; end > max {
			max = end
		}
	}
	s.duration = max
	s.dirty = false
}

// EntityWindow returns the scene-relative active window [from, to) of
// an entity, applying the until-scene-end and BGM policies. A BGM
// entity's window always ends at the scene end regardless of its
// natural source length.
func (s *Scene) EntityWindow(e *Entity) (from, to float64) {
	from = e.Start()
	sceneDur := s.Duration()
	if e.IsBGM() {
		to = sceneDur
	} else if d, ok := e.Duration(); ok {
		to = from + d
	} else {
		to = sceneDur
	}
	if to < from {
		to = from
	}
	return from, to
}

// finalize freezes the scene and all its entities. Duration is settled
// here so concurrent readers never race a lazy recompute.
func (s *Scene) finalize() {
	if s.finalized {
		return
	}
	if s.dirty {
		s.recompute()
	}
	for _, e := range s.entities {
		e.freeze()
	}
	s.finalized = true
}
