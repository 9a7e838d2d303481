package audioplan

import (
	"errors"
	"math"
	"testing"

	"github.com/ivlev/videoplan/internal/timeline"
)

func buildMaster(t *testing.T, scenes ...*timeline.Scene) *timeline.MasterTimeline {
	t.Helper()
	master := timeline.NewMasterTimeline()
	if err := master.Add(scenes...); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := master.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	return master
}

func visual(duration float64) *timeline.Entity {
	return timeline.NewEntity(timeline.KindImage, "img").SetDuration(duration)
}

func TestPlanRequiresFinalize(t *testing.T) {
	master := timeline.NewMasterTimeline()
	_, err := Plan(master)
	var stateErr *timeline.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("Plan before finalize err = %v, want StateError", err)
	}
}

func TestBGMTruncation(t *testing.T) {
	// Natural 7s BGM in a 5s scene: exactly one directive, cut at the
	// scene end, no loop.
	scene := timeline.NewScene().MustAdd(
		visual(5),
		timeline.NewEntity(timeline.KindAudio, "bgm.mp3").SetDuration(7).SetLoopUntilSceneEnd(true),
	)
	master := buildMaster(t, scene)

	directives, err := Plan(master)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(directives) != 1 {
		t.Fatalf("got %d directives, want 1", len(directives))
	}
	d := directives[0]
	if d.TotalDuration != 5 {
		t.Errorf("totalDuration = %f, want 5", d.TotalDuration)
	}
	if d.LoopCount != 0 {
		t.Errorf("loopCount = %d, want 0", d.LoopCount)
	}
	if d.TrimIn != 0 || d.TrimOut != 5 {
		t.Errorf("trim = [%f, %f], want [0, 5]", d.TrimIn, d.TrimOut)
	}
}

func TestBGMLooping(t *testing.T) {
	// Natural 3s BGM in a 10s scene: looped coverage of exactly 10s.
	scene := timeline.NewScene().MustAdd(
		visual(10),
		timeline.NewEntity(timeline.KindAudio, "bgm.mp3").SetDuration(3).SetLoopUntilSceneEnd(true),
	)
	master := buildMaster(t, scene)

	directives, err := Plan(master)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(directives) != 1 {
		t.Fatalf("got %d directives, want 1", len(directives))
	}
	d := directives[0]
	if d.TotalDuration != 10 {
		t.Errorf("totalDuration = %f, want 10 (not 9, not 12)", d.TotalDuration)
	}
	if d.LoopCount != 3 {
		t.Errorf("loopCount = %d, want 3 (four passes, last truncated)", d.LoopCount)
	}
	if d.TrimOut != 3 {
		t.Errorf("trimOut = %f, want natural length 3", d.TrimOut)
	}
	// Coverage check: passes cover at least the window, truncation
	// brings it back to exactly the window.
	covered := float64(d.LoopCount+1) * d.TrimOut
	if covered < d.TotalDuration {
		t.Errorf("loops cover %f, less than window %f", covered, d.TotalDuration)
	}
}

func TestBGMExactMultipleLoops(t *testing.T) {
	scene := timeline.NewScene().MustAdd(
		visual(9),
		timeline.NewEntity(timeline.KindAudio, "bgm.mp3").SetDuration(3).SetLoopUntilSceneEnd(true),
	)
	master := buildMaster(t, scene)

	directives, _ := Plan(master)
	d := directives[0]
	if d.LoopCount != 2 {
		t.Errorf("loopCount = %d, want 2 for a 3s source in a 9s scene", d.LoopCount)
	}
	if d.TotalDuration != 9 {
		t.Errorf("totalDuration = %f, want 9", d.TotalDuration)
	}
}

func TestBGMOnlySceneEmitsNothing(t *testing.T) {
	scene := timeline.NewScene().MustAdd(
		timeline.NewEntity(timeline.KindAudio, "bgm.mp3").SetDuration(5).SetLoopUntilSceneEnd(true),
	)
	master := buildMaster(t, scene)

	directives, err := Plan(master)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(directives) != 0 {
		t.Errorf("got %d directives, want 0 for a zero-duration scene", len(directives))
	}
}

func TestPlainAudioKeepsNaturalDuration(t *testing.T) {
	// A 3s effect inside an 8s scene plays its own 3s, no loop.
	scene := timeline.NewScene().MustAdd(
		visual(8),
		timeline.NewEntity(timeline.KindAudio, "effect.mp3").StartAt(2).SetDuration(3),
	)
	scene.StartAt(10)
	master := buildMaster(t, scene)

	directives, err := Plan(master)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	d := directives[0]
	if d.StartSeconds != 12 {
		t.Errorf("absolute start = %f, want 12 (scene 10 + entity 2)", d.StartSeconds)
	}
	if d.TotalDuration != 3 || d.LoopCount != 0 {
		t.Errorf("got total=%f loop=%d, want 3 and 0", d.TotalDuration, d.LoopCount)
	}
}

func TestPlanOrderFollowsDeclaration(t *testing.T) {
	s1 := timeline.NewScene().MustAdd(
		visual(4),
		timeline.NewEntity(timeline.KindAudio, "one.mp3").SetDuration(2),
	)
	s2 := timeline.NewScene().MustAdd(
		visual(4),
		timeline.NewEntity(timeline.KindAudio, "two.mp3").SetDuration(2),
	)
	s2.StartAt(4)
	master := buildMaster(t, s1, s2)

	directives, err := Plan(master)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(directives) != 2 {
		t.Fatalf("got %d directives, want 2", len(directives))
	}
	if directives[0].SourceID != "one.mp3" || directives[1].SourceID != "two.mp3" {
		t.Error("directives not in scene declaration order")
	}
}

func TestGainEnvelopeConstant(t *testing.T) {
	scene := timeline.NewScene().MustAdd(
		visual(5),
		timeline.NewEntity(timeline.KindAudio, "a.mp3").SetDuration(5).SetVolume(0.3),
	)
	master := buildMaster(t, scene)

	directives, _ := Plan(master)
	env := directives[0].Gain
	if len(env) != 1 || env[0].At != 0 || env[0].Gain != 0.3 {
		t.Errorf("constant envelope = %v, want single point {0, 0.3}", env)
	}
}

func TestGainEnvelopeMuted(t *testing.T) {
	scene := timeline.NewScene().MustAdd(
		visual(5),
		timeline.NewEntity(timeline.KindAudio, "a.mp3").SetDuration(5).SetVolume(0.8).Mute(),
	)
	master := buildMaster(t, scene)

	directives, _ := Plan(master)
	env := directives[0].Gain
	if len(env) != 1 || env[0].Gain != 0 {
		t.Errorf("muted envelope = %v, want single zero point", env)
	}
}

func TestGainEnvelopeFades(t *testing.T) {
	scene := timeline.NewScene().MustAdd(
		visual(10),
		timeline.NewEntity(timeline.KindAudio, "a.mp3").SetDuration(10).
			SetVolume(1.0).FadeIn(2).FadeOut(3),
	)
	master := buildMaster(t, scene)

	directives, _ := Plan(master)
	env := directives[0].Gain

	check := func(at, want float64) {
		t.Helper()
		got, ok := envGainAt(env, at)
		if !ok {
			t.Fatalf("no envelope point at %f: %v", at, env)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("gain at %f = %f, want %f", at, got, want)
		}
	}
	check(0, 0)
	check(2, 1)  // fade-in complete
	check(7, 1)  // fade-out begins
	check(10, 0) // silent at the end
}

func TestGainEnvelopeOverlappingFades(t *testing.T) {
	// 2s clip with 2s fade-in and 2s fade-out: ramps overlap over the
	// whole clip and blend instead of erroring.
	scene := timeline.NewScene().MustAdd(
		visual(2),
		timeline.NewEntity(timeline.KindAudio, "a.mp3").SetDuration(2).
			SetVolume(1.0).FadeIn(2).FadeOut(2),
	)
	master := buildMaster(t, scene)

	directives, err := Plan(master)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	env := directives[0].Gain

	// Endpoints silent, crossing point at t=1 with gain 0.5.
	if g, _ := envGainAt(env, 0); g != 0 {
		t.Errorf("gain at 0 = %f, want 0", g)
	}
	if g, _ := envGainAt(env, 2); g != 0 {
		t.Errorf("gain at 2 = %f, want 0", g)
	}
	if g, ok := envGainAt(env, 1); !ok || math.Abs(g-0.5) > 1e-9 {
		t.Errorf("gain at crossing = %f, want 0.5", g)
	}
}

func TestFadeClampedToEffectiveDuration(t *testing.T) {
	// 3s clip with a 10s fade-out: the fade is clamped to the clip.
	scene := timeline.NewScene().MustAdd(
		visual(3),
		timeline.NewEntity(timeline.KindAudio, "a.mp3").SetDuration(3).
			SetVolume(1.0).FadeOut(10),
	)
	master := buildMaster(t, scene)

	directives, _ := Plan(master)
	env := directives[0].Gain
	for _, p := range env {
		if p.At < 0 || p.At > 3 {
			t.Errorf("envelope point %v outside [0, 3]", p)
		}
	}
	if g, _ := envGainAt(env, 3); g != 0 {
		t.Errorf("gain at clip end = %f, want 0", g)
	}
}

func TestConflictDetection(t *testing.T) {
	scene := timeline.NewScene().MustAdd(
		visual(10),
		timeline.NewEntity(timeline.KindAudio, "same.mp3").StartAt(0).SetDuration(5),
		timeline.NewEntity(timeline.KindAudio, "same.mp3").StartAt(3).SetDuration(5),
	)
	master := buildMaster(t, scene)

	directives, err := Plan(master)
	var planErr *PlanningError
	if !errors.As(err, &planErr) {
		t.Fatalf("Plan err = %v, want PlanningError", err)
	}
	if planErr.A.SourceID != "same.mp3" || planErr.B.SourceID != "same.mp3" {
		t.Error("PlanningError does not identify the conflicting pair")
	}
	// The plan is still produced alongside the error.
	if len(directives) != 2 {
		t.Errorf("got %d directives alongside the conflict, want 2", len(directives))
	}
}

func TestConflictSuppressedByAllowOverlap(t *testing.T) {
	scene := timeline.NewScene().MustAdd(
		visual(10),
		timeline.NewEntity(timeline.KindAudio, "same.mp3").StartAt(0).SetDuration(5).AllowOverlap(),
		timeline.NewEntity(timeline.KindAudio, "same.mp3").StartAt(3).SetDuration(5).AllowOverlap(),
	)
	master := buildMaster(t, scene)

	if _, err := Plan(master); err != nil {
		t.Fatalf("Plan failed despite AllowOverlap: %v", err)
	}
}

func TestNonOverlappingSameSourceIsFine(t *testing.T) {
	scene := timeline.NewScene().MustAdd(
		visual(12),
		timeline.NewEntity(timeline.KindAudio, "chime.mp3").StartAt(0).SetDuration(2),
		timeline.NewEntity(timeline.KindAudio, "chime.mp3").StartAt(5).SetDuration(2),
	)
	master := buildMaster(t, scene)

	if _, err := Plan(master); err != nil {
		t.Fatalf("Plan failed on non-overlapping reuse: %v", err)
	}
}

func TestPlanEntityPhases(t *testing.T) {
	scene := timeline.NewScene().MustAdd(visual(5))

	tests := []struct {
		name   string
		entity *timeline.Entity
		want   phase
	}{
		{
			name:   "bgm longer than scene is truncated",
			entity: timeline.NewEntity(timeline.KindAudio, "long.mp3").SetDuration(7).SetLoopUntilSceneEnd(true),
			want:   phaseTruncated,
		},
		{
			name:   "bgm with a partial final pass is truncated",
			entity: timeline.NewEntity(timeline.KindAudio, "loop.mp3").SetDuration(3).SetLoopUntilSceneEnd(true),
			want:   phaseTruncated,
		},
		{
			name:   "bgm loops completing exactly run to completion",
			entity: timeline.NewEntity(timeline.KindAudio, "exact.mp3").SetDuration(2.5).SetLoopUntilSceneEnd(true),
			want:   phaseCompleted,
		},
		{
			name:   "plain audio runs to completion",
			entity: timeline.NewEntity(timeline.KindAudio, "fx.mp3").SetDuration(2),
			want:   phaseCompleted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, st, ok := planEntity(scene, tt.entity)
			if !ok {
				t.Fatal("planEntity skipped a playable entity")
			}
			if st != tt.want {
				t.Errorf("phase = %s, want %s", st, tt.want)
			}
		})
	}

	// Zero-length window: nothing to play.
	empty := timeline.NewScene().MustAdd(
		timeline.NewEntity(timeline.KindAudio, "bgm.mp3").SetDuration(4).SetLoopUntilSceneEnd(true),
	)
	_, st, ok := planEntity(empty, empty.Entities()[0])
	if ok || st != phaseIdle {
		t.Errorf("zero window gave ok=%v phase=%s, want skipped and idle", ok, st)
	}
}

// envGainAt finds the envelope gain at an exact breakpoint.
func envGainAt(env []GainPoint, at float64) (float64, bool) {
	for _, p := range env {
		if math.Abs(p.At-at) < 1e-9 {
			return p.Gain, true
		}
	}
	return 0, false
}
