package render

import (
	"math"

	"github.com/ivlev/videoplan/internal/timeline"
)

// FramePlan is the resolved state of the timeline for one output frame,
// as handed to the external renderer.
type FramePlan struct {
	FrameIndex int                       `yaml:"frameIndex"`
	Timestamp  float64                   `yaml:"timestampSeconds"`
	Entities   []timeline.ResolvedEntity `yaml:"entities"`
}

// Plan is the full frame-by-frame render plan. Width and Height
// describe the target canvas for the external renderer; the plan
// itself is resolution-independent.
type Plan struct {
	Width         int         `yaml:"width,omitempty"`
	Height        int         `yaml:"height,omitempty"`
	FPS           int         `yaml:"fps"`
	TotalDuration float64     `yaml:"totalDurationSeconds"`
	Frames        []FramePlan `yaml:"frames"`
}

// FrameCount returns the number of output frames for the finalized
// timeline at the given frame rate.
func FrameCount(m *timeline.MasterTimeline, fps int) int {
	return int(math.Ceil(m.TotalDuration() * float64(fps)))
}

// PlanFrame resolves a single frame at t = frameIndex / fps.
func PlanFrame(m *timeline.MasterTimeline, frameIndex, fps int) (FramePlan, error) {
	t := float64(frameIndex) / float64(fps)
	entities, err := m.FrameAt(t)
	if err != nil {
		return FramePlan{}, err
	}
	return FramePlan{
		FrameIndex: frameIndex,
		Timestamp:  t,
		Entities:   entities,
	}, nil
}

// BuildPlan materializes the whole render plan in memory. For long
// timelines prefer Loop, which streams one frame at a time.
func BuildPlan(m *timeline.MasterTimeline, fps int) (*Plan, error) {
	if fps <= 0 {
		return nil, &timeline.ConfigurationError{Subject: "fps", Reason: "frame rate must be positive"}
	}
	if !m.IsFinalized() {
		return nil, &timeline.StateError{Op: "render.BuildPlan", Reason: "timeline not finalized"}
	}

	count := FrameCount(m, fps)
	plan := &Plan{
		FPS:           fps,
		TotalDuration: m.TotalDuration(),
		Frames:        make([]FramePlan, 0, count),
	}
	for i := 0; i < count; i++ {
		fp, err := PlanFrame(m, i, fps)
		if err != nil {
			return nil, err
		}
		plan.Frames = append(plan.Frames, fp)
	}
	return plan, nil
}
