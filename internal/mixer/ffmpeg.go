package mixer

import (
	"fmt"
	"strings"

	"github.com/ivlev/videoplan/internal/audioplan"
)

// BuildFilterGraph translates an audio mix plan into an FFmpeg
// filter_complex string. Input index i in the graph corresponds to
// directive i; the mixed result is labeled [aout]. Running ffmpeg is
// the caller's job.
func BuildFilterGraph(directives []audioplan.Directive) string {
	if len(directives) == 0 {
		return ""
	}

	var chains []string
	var mixInputs []string

	for i, d := range directives {
		chain := buildChain(i, d)
		chains = append(chains, chain)
		mixInputs = append(mixInputs, fmt.Sprintf("[a%d]", i))
	}

	mix := fmt.Sprintf("%samix=inputs=%d:normalize=0[aout]",
		strings.Join(mixInputs, ""), len(directives))

	return strings.Join(chains, ";") + ";" + mix
}

// buildChain produces the per-directive filter chain: trim, loop,
// truncate to the planned total, gain/fades, then delay to the absolute
// start.
func buildChain(index int, d audioplan.Directive) string {
	parts := []string{
		fmt.Sprintf("atrim=start=%.6f:end=%.6f", d.TrimIn, d.TrimOut),
		"asetpts=PTS-STARTPTS",
	}

	if d.LoopCount > 0 {
		// aloop counts extra repeats, matching the directive's
		// LoopCount convention. size must cover one full pass.
		parts = append(parts, fmt.Sprintf("aloop=loop=%d:size=2147483647", d.LoopCount))
	}

	// The final loop pass may overrun the planned duration; cut it.
	parts = append(parts, fmt.Sprintf("atrim=end=%.6f", d.TotalDuration))
	parts = append(parts, "asetpts=PTS-STARTPTS")

	parts = append(parts, gainFilters(d)...)

	if d.StartSeconds > 0 {
		ms := int(d.StartSeconds * 1000)
		parts = append(parts, fmt.Sprintf("adelay=%d:all=1", ms))
	}

	return fmt.Sprintf("[%d:a]%s[a%d]", index, strings.Join(parts, ","), index)
}

// gainFilters derives volume/afade filters from the directive's gain
// envelope. The envelope is piecewise linear; a leading rise from zero
// becomes a fade-in, a trailing fall to zero a fade-out, and the
// plateau the static volume.
func gainFilters(d audioplan.Directive) []string {
	env := d.Gain
	if len(env) == 0 {
		return nil
	}

	peak := 0.0
	for _, p := range env {
		if p.Gain > peak {
			peak = p.Gain
		}
	}
	if peak == 0 {
		return []string{"volume=0"}
	}

	var filters []string
	if peak != 1.0 {
		filters = append(filters, fmt.Sprintf("volume=%.6f", peak))
	}

	if env[0].Gain == 0 && len(env) > 1 {
		fadeIn := env[1].At - env[0].At
		if fadeIn > 0 {
			filters = append(filters, fmt.Sprintf("afade=t=in:st=0:d=%.6f", fadeIn))
		}
	}

	last := env[len(env)-1]
	if last.Gain == 0 && len(env) > 1 {
		prev := env[len(env)-2]
		fadeOut := last.At - prev.At
		if fadeOut > 0 {
			filters = append(filters, fmt.Sprintf("afade=t=out:st=%.6f:d=%.6f", prev.At, fadeOut))
		}
	}

	return filters
}
