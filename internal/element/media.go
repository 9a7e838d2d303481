package element

import (
	"github.com/ivlev/videoplan/internal/timeline"
)

// NewImage creates an image entity. Intrinsic size comes from the
// caller (the source package probes it); the compositor never decodes
// the file.
func NewImage(sourceID string, width, height float64) *timeline.Entity {
	return timeline.NewEntity(timeline.KindImage, sourceID).SetSize(width, height)
}

// NewVideo creates a video entity. naturalDuration is the clip length
// in seconds as probed externally; it doubles as the default display
// duration.
func NewVideo(sourceID string, naturalDuration float64) *timeline.Entity {
	return timeline.NewEntity(timeline.KindVideo, sourceID).SetDuration(naturalDuration)
}

// NewAudio creates an audio entity. naturalDuration is the source
// length in seconds as probed externally (see system.GetAudioDuration).
func NewAudio(sourceID string, naturalDuration float64) *timeline.Entity {
	return timeline.NewEntity(timeline.KindAudio, sourceID).SetDuration(naturalDuration)
}

// NewBGM creates an audio entity in loop-until-scene-end mode: it is
// looped or truncated to the enclosing scene's duration and never
// influences that duration.
func NewBGM(sourceID string, naturalDuration float64) *timeline.Entity {
	return NewAudio(sourceID, naturalDuration).SetLoopUntilSceneEnd(true)
}
