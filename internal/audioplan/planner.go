package audioplan

import (
	"math"
	"sort"

	"github.com/ivlev/videoplan/internal/timeline"
)

// phase tracks an audio entity through planning. Terminal phases are
// phaseTruncated (cut at the scene end) and phaseCompleted (natural end
// reached first).
type phase int

const (
	phaseIdle phase = iota
	phaseScheduled
	phaseLooping
	phaseTruncated
	phaseCompleted
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseScheduled:
		return "scheduled"
	case phaseLooping:
		return "looping"
	case phaseTruncated:
		return "truncated"
	case phaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Plan walks the finalized master timeline once and emits the ordered
// audio mix plan: one directive per audio-bearing entity, in scene
// declaration order then per-scene z-order.
//
// On a directive conflict the full plan is still returned alongside the
// PlanningError for the first conflicting pair, so one bad pairing does
// not hide the rest of the plan.
func Plan(m *timeline.MasterTimeline) ([]Directive, error) {
	if !m.IsFinalized() {
		return nil, &timeline.StateError{Op: "audioplan.Plan", Reason: "timeline not finalized"}
	}

	var directives []Directive
	for _, scene := range m.Scenes() {
		for _, e := range scene.Entities() {
			if e.Kind() != timeline.KindAudio && e.Kind() != timeline.KindVideo {
				continue
			}
			d, _, ok := planEntity(scene, e)
			if !ok {
				continue
			}
			directives = append(directives, d)
		}
	}

	return directives, checkConflicts(directives)
}

// planEntity computes one directive and reports the terminal phase the
// entity reached. It returns ok=false for entities with nothing to play
// (zero-length window, e.g. BGM in a scene whose duration resolved to
// zero).
func planEntity(scene *timeline.Scene, e *timeline.Entity) (Directive, phase, bool) {
	from, to := scene.EntityWindow(e)
	window := to - from
	if window <= 0 {
		return Directive{}, phaseIdle, false
	}

	natural, hasNatural := e.Duration()
	absStart := scene.Start() + from

	d := Directive{
		SourceID:     e.SourceID(),
		EntityID:     e.ID(),
		SceneID:      scene.ID(),
		StartSeconds: absStart,
		allowOverlap: e.OverlapAllowed(),
	}

	var st phase
	switch {
	case e.IsBGM() && hasNatural && natural > 0 && natural < window:
		// Looping phase: re-trigger from the source start until the
		// scene end; the final pass is cut to fit.
		d.TrimIn = 0
		d.TrimOut = natural
		d.LoopCount = int(math.Ceil(window/natural)) - 1
		d.TotalDuration = window
		if math.Mod(window, natural) != 0 {
			st = phaseTruncated
		} else {
			st = phaseCompleted
		}
	case e.IsBGM():
		// Natural length meets or exceeds the scene: single truncated
		// playthrough, no loop.
		d.TrimIn = 0
		d.TrimOut = window
		d.LoopCount = 0
		d.TotalDuration = window
		if hasNatural && natural > window {
			st = phaseTruncated
		} else {
			st = phaseCompleted
		}
	default:
		// Plain audio plays its own duration; without one it runs to
		// the scene end.
		dur := window
		if hasNatural {
			dur = natural
		}
		d.TrimIn = 0
		d.TrimOut = dur
		d.LoopCount = 0
		d.TotalDuration = dur
		st = phaseCompleted
	}

	d.Gain = envelope(e, d.TotalDuration)
	return d, st, true
}

// envelope builds the piecewise-linear gain curve from static volume,
// mute flag and fade windows. Fades are clamped to the effective
// duration; when fade-in and fade-out overlap on a short clip the gain
// at any instant is the lesser of the two ramps, which blends them
// linearly instead of erroring.
func envelope(e *timeline.Entity, total float64) []GainPoint {
	props := e.BaseProperties()
	if props.Muted {
		return []GainPoint{{At: 0, Gain: 0}}
	}
	vol := props.Volume

	fadeIn, fadeOut := e.FadeWindows()
	if fadeIn > total {
		fadeIn = total
	}
	if fadeOut > total {
		fadeOut = total
	}
	if fadeIn <= 0 && fadeOut <= 0 {
		return []GainPoint{{At: 0, Gain: vol}}
	}

	// Breakpoints where either ramp changes slope, plus the crossing
	// point when the ramps overlap.
	times := []float64{0, total}
	if fadeIn > 0 {
		times = append(times, fadeIn)
	}
	if fadeOut > 0 {
		times = append(times, total-fadeOut)
	}
	if fadeIn > 0 && fadeOut > 0 && fadeIn > total-fadeOut {
		cross := fadeIn * total / (fadeIn + fadeOut)
		times = append(times, cross)
	}
	sort.Float64s(times)

	var points []GainPoint
	for _, t := range times {
		if t < 0 || t > total {
			continue
		}
		if len(points) > 0 && math.Abs(points[len(points)-1].At-t) < 1e-9 {
			continue
		}
		points = append(points, GainPoint{At: t, Gain: gainAt(t, total, vol, fadeIn, fadeOut)})
	}
	return points
}

func gainAt(t, total, vol, fadeIn, fadeOut float64) float64 {
	in := 1.0
	if fadeIn > 0 && t < fadeIn {
		in = t / fadeIn
	}
	out := 1.0
	if fadeOut > 0 && t > total-fadeOut {
		out = (total - t) / fadeOut
	}
	return vol * math.Min(in, out)
}

// checkConflicts reports the first pair of directives for the same
// source with overlapping absolute ranges, unless both instances were
// declared intentional duplicates.
func checkConflicts(directives []Directive) error {
	bySource := make(map[string][]Directive)
	for _, d := range directives {
		bySource[d.SourceID] = append(bySource[d.SourceID], d)
	}
	for _, group := range bySource {
		sort.Slice(group, func(i, j int) bool {
			return group[i].StartSeconds < group[j].StartSeconds
		})
		for i := 1; i < len(group); i++ {
			prev, cur := group[i-1], group[i]
			if cur.StartSeconds < prev.End() {
				if prev.allowOverlap && cur.allowOverlap {
					continue
				}
				return &PlanningError{A: prev, B: cur}
			}
		}
	}
	return nil
}
