package capture

import (
	"context"
	"fmt"
	"time"

	"neuromotion/internal/scoring"
)

// CaptureSeconds is the length of the tap test countdown.
const CaptureSeconds = 10

// minSubmitIntervals is the fewest intervals accepted for scoring after
// the warm-up interval is dropped.
const minSubmitIntervals = 3

// TapScorer is the scoring call the tap capture delegates to.
type TapScorer interface {
	SubmitTaps(ctx context.Context, intervals []int64) (*scoring.SubScore, error)
}

type TapState string

const (
	TapIdle     TapState = "idle"
	TapRunning  TapState = "running"
	TapFinished TapState = "finished"
	TapError    TapState = "error"
)

// TapCapture records inter-tap intervals during a fixed countdown window.
// The countdown is advanced by Tick, one call per second; tests drive it
// synchronously. When the countdown expires the capture freezes itself,
// dropping the first interval as a warm-up outlier, and the frozen list is
// then submitted with Submit. A failed freeze or submission parks the
// capture in TapError, which reverts to TapIdle after a few ticks.
type TapCapture struct {
	scorer TapScorer
	clock  func() time.Time

	state     TapState
	remaining int
	taps      int
	intervals []int64
	lastTap   time.Time

	frozen    []int64
	lastErr   error
	errTicks  int
	submitted bool
}

// NewTapCapture builds an idle capture. A nil clock falls back to
// time.Now.
func NewTapCapture(scorer TapScorer, clock func() time.Time) *TapCapture {
	if clock == nil {
		clock = time.Now
	}
	return &TapCapture{
		scorer: scorer,
		clock:  clock,
		state:  TapIdle,
	}
}

// Start begins a fresh countdown. Any intervals from a previous run are
// discarded.
func (t *TapCapture) Start() error {
	if t.state != TapIdle {
		return &ValidationError{Field: "tap capture", Reason: fmt.Sprintf("cannot start while %s", t.state)}
	}
	t.state = TapRunning
	t.remaining = CaptureSeconds
	t.taps = 0
	t.intervals = nil
	t.frozen = nil
	t.lastErr = nil
	t.submitted = false
	return nil
}

// RegisterTap records the interval since the previous tap. The first tap
// only anchors the reference point; intervals are deltas between
// consecutive taps. Taps outside the running window are ignored.
func (t *TapCapture) RegisterTap() {
	if t.state != TapRunning || t.remaining <= 0 {
		return
	}
	now := t.clock()
	if t.taps > 0 {
		delta := now.Sub(t.lastTap).Milliseconds()
		if delta < 0 {
			delta = 0
		}
		t.intervals = append(t.intervals, delta)
	}
	t.taps++
	t.lastTap = now
}

// Tick advances the countdown by one second. On expiry the capture
// freezes exactly once. In the error state Tick counts down the revert
// delay and then resets to idle.
func (t *TapCapture) Tick() {
	switch t.state {
	case TapRunning:
		if t.remaining > 0 {
			t.remaining--
		}
		if t.remaining == 0 {
			t.freeze()
		}
	case TapError:
		if t.errTicks > 0 {
			t.errTicks--
		}
		if t.errTicks == 0 {
			t.reset()
		}
	}
}

// Finish ends the capture early, freezing whatever was recorded. Calling
// it after expiry already froze the capture is a no-op.
func (t *TapCapture) Finish() error {
	switch t.state {
	case TapFinished:
		return nil
	case TapRunning:
		return t.freeze()
	default:
		return &ValidationError{Field: "tap capture", Reason: fmt.Sprintf("cannot finish while %s", t.state)}
	}
}

// freeze validates the recorded intervals and fixes the submission list.
// The first interval is always dropped as a warm-up outlier.
func (t *TapCapture) freeze() error {
	trimmed := trimWarmup(t.intervals)
	if len(trimmed) < minSubmitIntervals {
		err := &InsufficientDataError{Need: minSubmitIntervals, Got: len(trimmed)}
		t.fail(err)
		return err
	}
	t.frozen = trimmed
	t.state = TapFinished
	return nil
}

// Submit sends the frozen interval list for scoring. A service failure
// parks the capture in the error state so the user can retry after the
// revert.
func (t *TapCapture) Submit(ctx context.Context) (*scoring.SubScore, error) {
	if t.state != TapFinished {
		return nil, &ValidationError{Field: "tap capture", Reason: fmt.Sprintf("cannot submit while %s", t.state)}
	}
	if t.submitted {
		return nil, &ValidationError{Field: "tap capture", Reason: "already submitted"}
	}
	result, err := t.scorer.SubmitTaps(ctx, t.SubmitIntervals())
	if err != nil {
		t.fail(err)
		return nil, err
	}
	t.submitted = true
	return result, nil
}

func (t *TapCapture) fail(err error) {
	t.state = TapError
	t.lastErr = err
	t.errTicks = errorRevertTicks
}

func (t *TapCapture) reset() {
	t.state = TapIdle
	t.remaining = 0
	t.taps = 0
	t.intervals = nil
	t.frozen = nil
	t.lastErr = nil
	t.submitted = false
}

func (t *TapCapture) State() TapState { return t.state }

// Remaining is the countdown in whole seconds.
func (t *TapCapture) Remaining() int { return t.remaining }

func (t *TapCapture) TapCount() int { return t.taps }

// Err is the failure that put the capture in the error state, nil
// otherwise.
func (t *TapCapture) Err() error { return t.lastErr }

// RawIntervals returns a copy of every recorded interval, warm-up
// included.
func (t *TapCapture) RawIntervals() []int64 {
	out := make([]int64, len(t.intervals))
	copy(out, t.intervals)
	return out
}

// SubmitIntervals returns a copy of the frozen submission list, nil
// before the capture finishes.
func (t *TapCapture) SubmitIntervals() []int64 {
	if t.frozen == nil {
		return nil
	}
	out := make([]int64, len(t.frozen))
	copy(out, t.frozen)
	return out
}

func trimWarmup(intervals []int64) []int64 {
	if len(intervals) <= 1 {
		return nil
	}
	out := make([]int64, len(intervals)-1)
	copy(out, intervals[1:])
	return out
}
