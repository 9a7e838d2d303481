package audioplan

import "fmt"

// GainPoint is one vertex of a piecewise-linear gain envelope.
type GainPoint struct {
	At   float64 `yaml:"atSeconds"`
	Gain float64 `yaml:"gain"`
}

// Directive is one planned mixing instruction for the external mixer.
// Directives are produced once and never mutated.
//
// LoopCount counts additional repeats after the first playthrough, so 0
// means the source plays once. TotalDuration is the absolute length
// after looping and trimming; the final repeat of a looping source is
// cut to fit it.
type Directive struct {
	SourceID      string      `yaml:"sourceId"`
	EntityID      string      `yaml:"entityId"`
	SceneID       string      `yaml:"sceneId"`
	StartSeconds  float64     `yaml:"absoluteStartSeconds"`
	TrimIn        float64     `yaml:"trimInSeconds"`
	TrimOut       float64     `yaml:"trimOutSeconds"`
	LoopCount     int         `yaml:"loopCount"`
	TotalDuration float64     `yaml:"totalDurationSeconds"`
	Gain          []GainPoint `yaml:"gainEnvelope"`

	allowOverlap bool
}

// End returns the absolute end time of the directive.
func (d Directive) End() float64 {
	return d.StartSeconds + d.TotalDuration
}

// PlanningError reports a pair of contradictory directives: same source
// with overlapping absolute time ranges, without the caller having
// requested multi-instance duplication. The planner never resolves the
// conflict itself.
type PlanningError struct {
	A Directive
	B Directive
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("planning error: source %q scheduled twice over overlapping ranges [%.3f,%.3f) and [%.3f,%.3f)",
		e.A.SourceID, e.A.StartSeconds, e.A.End(), e.B.StartSeconds, e.B.End())
}
