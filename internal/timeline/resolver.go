package timeline

// ResolvedEntity is one entity's state at a resolved instant, as handed
// to the external renderer.
type ResolvedEntity struct {
	ID      string     `yaml:"id"`
	Kind    Kind       `yaml:"kind"`
	ZOrder  int        `yaml:"zOrder"`
	SceneID string     `yaml:"sceneId,omitempty"`
	Props   Properties `yaml:"props"`
}

// Resolve returns the active entities of the scene at scene-relative
// time t with animation applied, in insertion (z) order. Output
// ordering is a hard invariant: compositing depends on it. Times
// outside [0, sceneDuration) resolve to an empty list.
func Resolve(s *Scene, t float64) []ResolvedEntity {
	if t < 0 || t >= s.Duration() {
		return nil
	}

	var out []ResolvedEntity
	for z, e := range s.entities {
		from, to := s.EntityWindow(e)
		if t < from || t >= to {
			continue
		}
		out = append(out, ResolvedEntity{
			ID:     e.ID(),
			Kind:   e.Kind(),
			ZOrder: z,
			Props:  resolveProperties(e, t-from),
		})
	}
	return out
}

// resolveProperties overlays animation output on the base properties at
// entity-relative elapsed time. Tracks are applied in registration
// order, so a later track on the same property wins.
func resolveProperties(e *Entity, elapsed float64) Properties {
	p := e.BaseProperties()
	for _, tr := range e.Tracks() {
		v := tr.Eval(elapsed)
		switch tr.Target() {
		case "x":
			p.X = v
		case "y":
			p.Y = v
		case "scale":
			p.Scale = v
		case "rotation":
			p.Rotation = v
		case "opacity":
			p.Opacity = v
		case "volume":
			p.Volume = v
		}
	}
	return filterByKind(e.Kind(), p)
}

// filterByKind keeps only the properties applicable to the entity kind.
// The switch is exhaustive over the closed kind set.
func filterByKind(k Kind, p Properties) Properties {
	switch k {
	case KindText, KindImage:
		p.Volume = 0
		p.Muted = false
		return p
	case KindVideo:
		// Video carries both a visual and an audio surface.
		return p
	case KindAudio:
		return Properties{Volume: p.Volume, Muted: p.Muted}
	default:
		return p
	}
}
