package timeline

import (
	"image/color"

	"github.com/google/uuid"
)

// Kind tags an entity as one of the closed set of element kinds.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// IsVisual reports whether entities of this kind carry visual properties.
func (k Kind) IsVisual() bool {
	return k != KindAudio
}

// PropertyTrack is the evaluator contract an animation track satisfies.
// Evaluation must be pure: the same elapsed time always yields the same
// value.
type PropertyTrack interface {
	Target() string
	Eval(elapsedSeconds float64) float64
}

// BorderSpec describes an entity border. Pixel rendering is external;
// the compositor only carries the values through.
type BorderSpec struct {
	Color color.RGBA `yaml:"color"`
	Width int        `yaml:"width"`
}

// BackgroundSpec describes an entity background box.
type BackgroundSpec struct {
	Color   color.RGBA `yaml:"color"`
	Alpha   uint8      `yaml:"alpha"`
	Padding int        `yaml:"padding"`
}

// Properties is the mutable property set of an entity. Only a subset
// applies per kind; the resolver copies just the applicable fields into
// the frame plan.
type Properties struct {
	X            float64         `yaml:"x"`
	Y            float64         `yaml:"y"`
	Width        float64         `yaml:"width,omitempty"`
	Height       float64         `yaml:"height,omitempty"`
	Scale        float64         `yaml:"scale"`
	Rotation     float64         `yaml:"rotation"`
	Opacity      float64         `yaml:"opacity"`
	CornerRadius float64         `yaml:"cornerRadius,omitempty"`
	Border       *BorderSpec     `yaml:"border,omitempty"`
	Background   *BackgroundSpec `yaml:"background,omitempty"`
	Volume       float64         `yaml:"volume,omitempty"`
	Muted        bool            `yaml:"muted,omitempty"`
}

// Entity is a timed visual or audio unit placed in a scene. Identity is
// fixed at creation; properties are configured through the fluent
// methods until the owning timeline is finalized, after which the
// entity is frozen.
type Entity struct {
	id       string
	kind     Kind
	sourceID string

	start         float64
	duration      float64
	untilSceneEnd bool
	bgm           bool
	allowOverlap  bool

	fadeIn  float64
	fadeOut float64

	props  Properties
	tracks []PropertyTrack

	frozen bool
	err    error
}

// NewEntity creates an entity of the given kind. sourceID identifies
// the external media or content for the renderer/mixer; the compositor
// never opens it. Visual entities without an explicit duration run
// until their scene ends.
func NewEntity(kind Kind, sourceID string) *Entity {
	return &Entity{
		id:            uuid.NewString(),
		kind:          kind,
		sourceID:      sourceID,
		untilSceneEnd: true,
		props: Properties{
			Scale:   1.0,
			Opacity: 1.0,
			Volume:  1.0,
		},
	}
}

func (e *Entity) ID() string { return e.id }

func (e *Entity) Kind() Kind { return e.kind }

func (e *Entity) SourceID() string { return e.sourceID }

func (e *Entity) Start() float64 { return e.start }

// Duration returns the explicit duration and whether one was set.
// Entities without one run until the scene ends.
func (e *Entity) Duration() (float64, bool) {
	return e.duration, !e.untilSceneEnd
}

func (e *Entity) IsBGM() bool { return e.bgm }

func (e *Entity) OverlapAllowed() bool { return e.allowOverlap }

func (e *Entity) FadeWindows() (in, out float64) {
	return e.fadeIn, e.fadeOut
}

// Err returns the first configuration error recorded during fluent
// setup, if any. Scene.Add surfaces it.
func (e *Entity) Err() error { return e.err }

// BaseProperties returns a copy of the entity's un-animated properties.
func (e *Entity) BaseProperties() Properties { return e.props }

// Tracks returns the attached animation tracks in registration order.
func (e *Entity) Tracks() []PropertyTrack { return e.tracks }

func (e *Entity) mutable(op string) {
	if e.frozen {
		panic(&StateError{Op: op, Reason: "entity is frozen after finalize"})
	}
}

func (e *Entity) fail(err *ConfigurationError) *Entity {
	if e.err == nil {
		e.err = err
	}
	return e
}

func (e *Entity) freeze() { e.frozen = true }

// StartAt sets the scene-relative start offset in seconds.
func (e *Entity) StartAt(t float64) *Entity {
	e.mutable("StartAt")
	if t < 0 {
		return e.fail(configErrf(e.id, "start offset must be non-negative, got %f", t))
	}
	e.start = t
	return e
}

// SetDuration sets an explicit duration in seconds. Zero-length
// entities are legal: they are never active.
func (e *Entity) SetDuration(d float64) *Entity {
	e.mutable("SetDuration")
	if d < 0 {
		return e.fail(configErrf(e.id, "duration must be non-negative, got %f", d))
	}
	e.duration = d
	e.untilSceneEnd = false
	return e
}

// Position sets the top-left position of a visual entity.
func (e *Entity) Position(x, y float64) *Entity {
	e.mutable("Position")
	e.props.X = x
	e.props.Y = y
	return e
}

// SetSize sets the intrinsic box of a visual entity.
func (e *Entity) SetSize(w, h float64) *Entity {
	e.mutable("SetSize")
	if w < 0 || h < 0 {
		return e.fail(configErrf(e.id, "size must be non-negative, got %fx%f", w, h))
	}
	e.props.Width = w
	e.props.Height = h
	return e
}

// SetScale sets the uniform scale factor.
func (e *Entity) SetScale(s float64) *Entity {
	e.mutable("SetScale")
	if s < 0 {
		return e.fail(configErrf(e.id, "scale must be non-negative, got %f", s))
	}
	e.props.Scale = s
	return e
}

// SetRotation sets the rotation in degrees.
func (e *Entity) SetRotation(deg float64) *Entity {
	e.mutable("SetRotation")
	e.props.Rotation = deg
	return e
}

// SetOpacity sets the opacity in [0,1].
func (e *Entity) SetOpacity(o float64) *Entity {
	e.mutable("SetOpacity")
	if o < 0 || o > 1 {
		return e.fail(configErrf(e.id, "opacity must be within [0,1], got %f", o))
	}
	e.props.Opacity = o
	return e
}

// SetCornerRadius sets the rounded-corner radius in pixels.
func (e *Entity) SetCornerRadius(r float64) *Entity {
	e.mutable("SetCornerRadius")
	if r < 0 {
		return e.fail(configErrf(e.id, "corner radius must be non-negative, got %f", r))
	}
	e.props.CornerRadius = r
	return e
}

// SetBorder sets the border color and width.
func (e *Entity) SetBorder(c color.RGBA, width int) *Entity {
	e.mutable("SetBorder")
	if width < 0 {
		return e.fail(configErrf(e.id, "border width must be non-negative, got %d", width))
	}
	e.props.Border = &BorderSpec{Color: c, Width: width}
	return e
}

// SetBackground sets the background box color, alpha and padding.
func (e *Entity) SetBackground(c color.RGBA, alpha uint8, padding int) *Entity {
	e.mutable("SetBackground")
	if padding < 0 {
		return e.fail(configErrf(e.id, "background padding must be non-negative, got %d", padding))
	}
	e.props.Background = &BackgroundSpec{Color: c, Alpha: alpha, Padding: padding}
	return e
}

// SetVolume sets the static gain in [0,1] for audio-bearing entities.
func (e *Entity) SetVolume(v float64) *Entity {
	e.mutable("SetVolume")
	if v < 0 || v > 1 {
		return e.fail(configErrf(e.id, "volume must be within [0,1], got %f", v))
	}
	e.props.Volume = v
	return e
}

// Mute silences the entity without touching its static volume.
func (e *Entity) Mute() *Entity {
	e.mutable("Mute")
	e.props.Muted = true
	return e
}

// FadeIn ramps the gain from zero over d seconds from the entity start.
func (e *Entity) FadeIn(d float64) *Entity {
	e.mutable("FadeIn")
	if d < 0 {
		return e.fail(configErrf(e.id, "fade-in must be non-negative, got %f", d))
	}
	e.fadeIn = d
	return e
}

// FadeOut ramps the gain to zero over the final d seconds.
func (e *Entity) FadeOut(d float64) *Entity {
	e.mutable("FadeOut")
	if d < 0 {
		return e.fail(configErrf(e.id, "fade-out must be non-negative, got %f", d))
	}
	e.fadeOut = d
	return e
}

// SetLoopUntilSceneEnd marks an audio entity as BGM: it is looped or
// truncated to exactly the scene duration and never extends it.
func (e *Entity) SetLoopUntilSceneEnd(on bool) *Entity {
	e.mutable("SetLoopUntilSceneEnd")
	if e.kind != KindAudio {
		return e.fail(configErrf(e.id, "loop-until-scene-end applies to audio entities only"))
	}
	e.bgm = on
	return e
}

// AllowOverlap declares that multiple in-flight instances of this
// entity's source are intentional, suppressing the mix planner's
// overlap conflict check for it.
func (e *Entity) AllowOverlap() *Entity {
	e.mutable("AllowOverlap")
	e.allowOverlap = true
	return e
}

// Animate attaches an animation track. Multiple tracks on the same
// property are resolved last-registered-wins.
func (e *Entity) Animate(t PropertyTrack) *Entity {
	e.mutable("Animate")
	if t == nil {
		return e.fail(configErrf(e.id, "nil animation track"))
	}
	e.tracks = append(e.tracks, t)
	return e
}
