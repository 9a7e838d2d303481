package timeline

import (
	"log"
	"sync/atomic"
)

// MasterTimeline composes scenes at absolute offsets into one global
// timeline. Build it single-threaded, call Finalize once, then FrameAt
// is safe for concurrent readers.
type MasterTimeline struct {
	scenes    []*Scene
	finalized bool

	totalDuration float64

	// Throttles the out-of-range warning to once per contiguous run.
	outOfRange atomic.Bool
}

// NewMasterTimeline creates an empty master timeline.
func NewMasterTimeline() *MasterTimeline {
	return &MasterTimeline{}
}

// Add appends scenes in declaration order. Overlapping scenes are
// legal; their entities composite in scene order first, then per-scene
// z-order.
func (m *MasterTimeline) Add(scenes ...*Scene) error {
	if m.finalized {
		return &StateError{Op: "MasterTimeline.Add", Reason: "timeline is finalized"}
	}
	m.scenes = append(m.scenes, scenes...)
	return nil
}

// Scenes returns the scenes in declaration order.
func (m *MasterTimeline) Scenes() []*Scene { return m.scenes }

// Finalize freezes the timeline: scene durations are settled, entities
// stop accepting mutation, and resolution APIs become available.
// Finalize is idempotent.
func (m *MasterTimeline) Finalize() error {
	for _, s := range m.scenes {
		for _, e := range s.Entities() {
			if err := e.Err(); err != nil {
				return err
			}
		}
	}
	total := 0.0
	for _, s := range m.scenes {
		s.finalize()
		if end := s.Start() + s.Duration(); end > total {
			total = end
		}
	}
	m.totalDuration = total
	m.finalized = true
	return nil
}

// IsFinalized reports whether Finalize has completed.
func (m *MasterTimeline) IsFinalized() bool { return m.finalized }

// TotalDuration returns the global duration in seconds. Valid after
// Finalize.
func (m *MasterTimeline) TotalDuration() float64 { return m.totalDuration }

// FrameAt resolves the global timeline at an absolute time. Scenes
// whose window contains t contribute their resolved entities,
// concatenated in scene-declaration order. Out-of-range times return an
// empty frame; the warning is logged once per contiguous out-of-range
// run so a seek past the end does not flood the log.
func (m *MasterTimeline) FrameAt(t float64) ([]ResolvedEntity, error) {
	if !m.finalized {
		return nil, &StateError{Op: "MasterTimeline.FrameAt", Reason: "timeline not finalized"}
	}

	if t < 0 || t >= m.totalDuration {
		if m.outOfRange.CompareAndSwap(false, true) {
			log.Printf("[!] frame time %.3fs outside timeline [0, %.3fs), returning empty frame", t, m.totalDuration)
		}
		return nil, nil
	}
	m.outOfRange.Store(false)

	var out []ResolvedEntity
	for _, s := range m.scenes {
		local := t - s.Start()
		if local < 0 || local >= s.Duration() {
			continue
		}
		for _, re := range Resolve(s, local) {
			re.SceneID = s.ID()
			out = append(out, re)
		}
	}
	return out, nil
}
