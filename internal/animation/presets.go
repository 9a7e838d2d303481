package animation

// Presets for the common entrance/exit moves. Invalid parameters (a
// non-positive duration, a negative delay) are construction errors and
// panic, matching the MustAdd convention for fatal setup mistakes.

func must(t *Track, err error) *Track {
	if err != nil {
		panic(err)
	}
	return t
}

// FadeIn animates opacity 0 -> 1 over duration seconds after delay.
func FadeIn(duration, delay float64) *Track {
	t := must(NewTrack(PropOpacity, 0, 1, duration))
	t = must(t.WithDelay(delay))
	return must(t.WithEasing(EasingOut))
}

// FadeOut animates opacity 1 -> 0 over duration seconds after delay.
func FadeOut(duration, delay float64) *Track {
	t := must(NewTrack(PropOpacity, 1, 0, duration))
	t = must(t.WithDelay(delay))
	return must(t.WithEasing(EasingIn))
}

// SlideInX animates the x position from offscreen to the target over
// duration seconds.
func SlideInX(fromX, toX, duration float64) *Track {
	t := must(NewTrack(PropX, fromX, toX, duration))
	return must(t.WithEasing(EasingInOut))
}

// SlideInY animates the y position from offscreen to the target over
// duration seconds.
func SlideInY(fromY, toY, duration float64) *Track {
	t := must(NewTrack(PropY, fromY, toY, duration))
	return must(t.WithEasing(EasingInOut))
}

// Pulse loops the scale between lo and hi forever.
func Pulse(lo, hi, duration float64) *Track {
	t := must(NewTrack(PropScale, lo, hi, duration))
	t = must(t.WithEasing(EasingInOut))
	return must(t.WithRepeat(RepeatPingPong))
}

// BounceIn drops the scale into place with a bounce.
func BounceIn(duration float64) *Track {
	t := must(NewTrack(PropScale, 0, 1, duration))
	return must(t.WithEasing(EasingBounce))
}
