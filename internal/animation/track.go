package animation

import (
	"github.com/ivlev/videoplan/internal/timeline"
)

// Easing identifies the progress curve applied to a track.
type Easing string

const (
	EasingLinear Easing = "linear"
	EasingIn     Easing = "ease-in"
	EasingOut    Easing = "ease-out"
	EasingInOut  Easing = "ease-in-out"
	EasingBounce Easing = "bounce"
)

// Repeat controls what happens after a track's first playthrough.
type Repeat string

const (
	RepeatNone     Repeat = "none"
	RepeatLoop     Repeat = "loop"
	RepeatPingPong Repeat = "ping-pong"
)

// Animatable property names. Unknown names are rejected at
// construction so evaluation never meets one.
const (
	PropX        = "x"
	PropY        = "y"
	PropScale    = "scale"
	PropRotation = "rotation"
	PropOpacity  = "opacity"
	PropVolume   = "volume"
)

var knownProperties = map[string]bool{
	PropX:        true,
	PropY:        true,
	PropScale:    true,
	PropRotation: true,
	PropOpacity:  true,
	PropVolume:   true,
}

var knownEasings = map[Easing]bool{
	EasingLinear: true,
	EasingIn:     true,
	EasingOut:    true,
	EasingInOut:  true,
	EasingBounce: true,
}

// Track animates one numeric property of an entity from From to To
// over Duration seconds, starting Delay seconds after the entity
// becomes active. Tracks are immutable after construction; the With*
// helpers return validated copies.
type Track struct {
	property string
	from     float64
	to       float64
	duration float64
	delay    float64
	easing   Easing
	repeat   Repeat
}

var _ timeline.PropertyTrack = (*Track)(nil)

// NewTrack validates and builds a track. Non-positive durations,
// negative delays, unknown properties and unknown easings fail here,
// not at evaluation time.
func NewTrack(property string, from, to, duration float64) (*Track, error) {
	t := &Track{
		property: property,
		from:     from,
		to:       to,
		duration: duration,
		easing:   EasingLinear,
		repeat:   RepeatNone,
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Track) validate() error {
	if t.duration <= 0 {
		return &timeline.ConfigurationError{
			Subject: t.property,
			Reason:  "animation track duration must be positive",
		}
	}
	if t.delay < 0 {
		return &timeline.ConfigurationError{
			Subject: t.property,
			Reason:  "animation track delay must be non-negative",
		}
	}
	if !knownProperties[t.property] {
		return &timeline.ConfigurationError{
			Subject: t.property,
			Reason:  "unsupported animation target",
		}
	}
	if !knownEasings[t.easing] {
		return &timeline.ConfigurationError{
			Subject: t.property,
			Reason:  "unsupported easing " + string(t.easing),
		}
	}
	switch t.repeat {
	case RepeatNone, RepeatLoop, RepeatPingPong:
	default:
		return &timeline.ConfigurationError{
			Subject: t.property,
			Reason:  "unsupported repeat policy " + string(t.repeat),
		}
	}
	return nil
}

// Target returns the animated property name.
func (t *Track) Target() string { return t.property }

// From returns the start value.
func (t *Track) From() float64 { return t.from }

// To returns the end value.
func (t *Track) To() float64 { return t.to }

// Duration returns the track duration in seconds.
func (t *Track) Duration() float64 { return t.duration }

// WithEasing returns a copy of the track using the given easing.
func (t *Track) WithEasing(e Easing) (*Track, error) {
	c := *t
	c.easing = e
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// WithRepeat returns a copy of the track using the given repeat policy.
func (t *Track) WithRepeat(r Repeat) (*Track, error) {
	c := *t
	c.repeat = r
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// WithDelay returns a copy of the track starting delay seconds after
// the entity does.
func (t *Track) WithDelay(delay float64) (*Track, error) {
	c := *t
	c.delay = delay
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
