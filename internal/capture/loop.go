package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/hsl-camera/internal/detection"
)

// DefaultInterval is the processing cadence used when Loop.Interval is zero.
const DefaultInterval = 100 * time.Millisecond

// RangeSource supplies the HSL range for the next run.
type RangeSource interface {
	Snapshot() detection.HSLRange
}

// Loop re-runs the pipeline on a fixed timer.
//
// On every tick it pulls one frame from Source, takes a snapshot of the
// range, runs Pipeline and hands the result to Sink. Ticks where the source
// is idle are skipped. A failing frame is logged and does not stop the loop.
type Loop struct {
	Source   Source
	Sink     Sink
	Pipeline *detection.Pipeline
	Ranges   RangeSource
	Interval time.Duration

	seq     atomic.Uint64
	skipped atomic.Uint64
	failed  atomic.Uint64
}

// LoopStats is a snapshot of loop counters.
type LoopStats struct {
	Processed uint64 // frames delivered to the sink
	Skipped   uint64 // ticks with no frame available
	Failed    uint64 // frames that errored in the source, pipeline or sink
}

// Stats returns the current counters.
func (l *Loop) Stats() LoopStats {
	return LoopStats{
		Processed: l.seq.Load(),
		Skipped:   l.skipped.Load(),
		Failed:    l.failed.Load(),
	}
}

// Run processes frames until ctx is cancelled or the source reports io.EOF.
// Cancellation is not an error; Run returns nil in both cases.
func (l *Loop) Run(ctx context.Context) error {
	if l.Source == nil || l.Sink == nil || l.Pipeline == nil || l.Ranges == nil {
		return fmt.Errorf("capture loop is missing a source, sink, pipeline or range source")
	}

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	logrus.WithFields(logrus.Fields{
		"function": "Loop.Run",
		"interval": interval,
	}).Info("Capture loop started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logStopped("context cancelled")
			return nil
		case <-ticker.C:
			if err := l.Step(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					l.logStopped("source exhausted")
					return nil
				}
				if ctx.Err() != nil {
					l.logStopped("context cancelled")
					return nil
				}
			}
		}
	}
}

// Step performs a single tick: fetch, process, deliver.
//
// It returns io.EOF when the source is exhausted. Idle sources are not an
// error. Other failures are counted, logged and returned.
func (l *Loop) Step(ctx context.Context) error {
	frame, err := l.Source.Next(ctx)
	switch {
	case errors.Is(err, ErrNoFrame):
		l.skipped.Add(1)
		return nil
	case errors.Is(err, io.EOF):
		return err
	case err != nil:
		return l.fail("source", err)
	}

	rng := l.Ranges.Snapshot()
	start := time.Now()
	res, err := l.Pipeline.RunWithMask(frame, rng)
	if err != nil {
		return l.fail("pipeline", err)
	}

	out := Output{
		ID:          uuid.NewString(),
		Seq:         l.seq.Load() + 1,
		Frame:       res.Frame,
		Coverage:    res.Mask.Coverage(),
		ProcessedAt: time.Now(),
	}
	if err := l.Sink.Put(out); err != nil {
		return l.fail("sink", err)
	}
	l.seq.Add(1)

	logrus.WithFields(logrus.Fields{
		"function": "Loop.Step",
		"seq":      out.Seq,
		"id":       out.ID,
		"width":    frame.Width,
		"height":   frame.Height,
		"coverage": out.Coverage,
		"elapsed":  time.Since(start),
	}).Trace("Frame processed")

	return nil
}

func (l *Loop) fail(stage string, err error) error {
	l.failed.Add(1)
	logrus.WithFields(logrus.Fields{
		"function": "Loop.Step",
		"stage":    stage,
		"error":    err.Error(),
	}).Warn("Frame processing failed")
	return fmt.Errorf("%s: %w", stage, err)
}

func (l *Loop) logStopped(reason string) {
	st := l.Stats()
	logrus.WithFields(logrus.Fields{
		"function":  "Loop.Run",
		"reason":    reason,
		"processed": st.Processed,
		"skipped":   st.Skipped,
		"failed":    st.Failed,
	}).Info("Capture loop stopped")
}
