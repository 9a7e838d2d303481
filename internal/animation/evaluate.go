package animation

import "math"

// Eval returns the track's value at entity-relative elapsed time in
// seconds. Pure and deterministic: repeated calls with the same elapsed
// time yield the same value, supporting re-renders and seek.
//
// Before the track starts (elapsed below the delay) the start value is
// returned. After the declared end, RepeatNone clamps to the end value,
// RepeatLoop wraps modulo the duration and RepeatPingPong reflects on
// alternate cycles.
func (t *Track) Eval(elapsed float64) float64 {
	local := elapsed - t.delay
	if local <= 0 {
		return t.from
	}

	switch t.repeat {
	case RepeatLoop:
		local = math.Mod(local, t.duration)
	case RepeatPingPong:
		cycle := math.Mod(local, 2*t.duration)
		if cycle > t.duration {
			cycle = 2*t.duration - cycle
		}
		local = cycle
	default:
		if local >= t.duration {
			return t.to
		}
	}

	progress := local / t.duration
	eased := ease(t.easing, progress)
	return t.from + (t.to-t.from)*eased
}

// ease maps normalized progress in [0,1] to eased progress.
func ease(e Easing, p float64) float64 {
	switch e {
	case EasingIn:
		return p * p * p
	case EasingOut:
		q := 1 - p
		return 1 - q*q*q
	case EasingInOut:
		return easeInOutCubic(p)
	case EasingBounce:
		return easeOutBounce(p)
	default:
		return p
	}
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

func easeOutBounce(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75

	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
