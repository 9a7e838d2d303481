package render

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/videoplan/internal/timeline"
)

// FrameConsumer receives completed frame plans. The external
// GPU/encoding step implements this.
type FrameConsumer interface {
	Consume(ctx context.Context, frame FramePlan) error
}

// Loop streams frame plans to a consumer, computing frame N+1 while the
// consumer works on frame N. Plan computation has no data dependency on
// rendering, so one frame of pipelining is always safe.
type Loop struct {
	Master *timeline.MasterTimeline
	FPS    int
}

// Run computes every frame of the timeline and hands each to the
// consumer in order. Cancellation is cooperative: the context is
// checked between frames and no partial frame is ever delivered.
func (l *Loop) Run(ctx context.Context, consumer FrameConsumer) error {
	if l.FPS <= 0 {
		return &timeline.ConfigurationError{Subject: "fps", Reason: "frame rate must be positive"}
	}
	if !l.Master.IsFinalized() {
		return &timeline.StateError{Op: "render.Loop.Run", Reason: "timeline not finalized"}
	}

	count := FrameCount(l.Master, l.FPS)

	// Capacity 1 keeps the producer exactly one frame ahead.
	frames := make(chan FramePlan, 1)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(frames)
		for i := 0; i < count; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fp, err := PlanFrame(l.Master, i, l.FPS)
			if err != nil {
				return fmt.Errorf("planning frame %d: %w", i, err)
			}
			select {
			case frames <- fp:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		for fp := range frames {
			if err := consumer.Consume(ctx, fp); err != nil {
				return fmt.Errorf("consuming frame %d: %w", fp.FrameIndex, err)
			}
		}
		return nil
	})

	return g.Wait()
}
