// Package wizard sequences the three instrument captures, accumulates
// their sub-scores, and drives the final aggregation. Transitions are
// strictly forward; only Restart goes back. The wizard itself makes no
// network calls beyond delegating to the aggregator.
package wizard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"neuromotion/internal/models"
	"neuromotion/internal/scoring"
)

type State string

const (
	StateLanding     State = "landing"
	StateSurvey      State = "survey"
	StateTapTest     State = "tap_test"
	StateSpiral      State = "spiral"
	StateAggregating State = "aggregating"
	StateResults     State = "results"
	StateHistory     State = "history"
)

// stepFor maps each instrument to the state that must be active when its
// result arrives.
var stepFor = map[scoring.Kind]State{
	scoring.KindSurvey: StateSurvey,
	scoring.KindTaps:   StateTapTest,
	scoring.KindSpiral: StateSpiral,
}

var nextState = map[State]State{
	StateSurvey:  StateTapTest,
	StateTapTest: StateSpiral,
	StateSpiral:  StateAggregating,
}

// Aggregator is the scoring call the wizard delegates to once all three
// sub-scores are present.
type Aggregator interface {
	Aggregate(ctx context.Context, surveyScore, tapScore, spiralScore float64) (*models.Session, error)
}

// AggregationError reports a failed final aggregation. The collected
// sub-scores stay intact in the wizard, so the run is not lost, but the
// only way forward is Restart.
type AggregationError struct {
	Err error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed: %v", e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

// Wizard owns the per-session result map. It is driven from a single
// goroutine; captures hand it one sub-score per instrument, in order.
type Wizard struct {
	aggregator Aggregator
	log        *zap.Logger

	state   State
	results map[scoring.Kind]*scoring.SubScore
	session *models.Session
}

func New(aggregator Aggregator, log *zap.Logger) *Wizard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Wizard{
		aggregator: aggregator,
		log:        log,
		state:      StateLanding,
		results:    make(map[scoring.Kind]*scoring.SubScore),
	}
}

// Begin starts a fresh run, clearing any prior run's results.
func (w *Wizard) Begin() error {
	if w.state != StateLanding {
		return fmt.Errorf("cannot begin an assessment while in %s", w.state)
	}
	w.results = make(map[scoring.Kind]*scoring.SubScore)
	w.session = nil
	w.state = StateSurvey
	w.log.Info("Assessment started")
	return nil
}

// Advance stores one instrument's sub-score and moves to the next step.
// The result's kind must match the active step, which also rules out a
// second result for an instrument already passed. Storing the third
// result triggers aggregation.
func (w *Wizard) Advance(ctx context.Context, result *scoring.SubScore) error {
	if result == nil {
		return fmt.Errorf("cannot advance on a nil result")
	}
	expected, ok := stepFor[result.Kind]
	if !ok {
		return fmt.Errorf("unknown instrument kind %q", result.Kind)
	}
	if w.state != expected {
		return fmt.Errorf("cannot accept a %s result while in %s", result.Kind, w.state)
	}

	w.results[result.Kind] = result
	w.state = nextState[expected]
	w.log.Debug("Step completed",
		zap.String("instrument", string(result.Kind)),
		zap.Float64("score", result.Score))

	if w.state == StateAggregating {
		return w.completeAll(ctx)
	}
	return nil
}

// completeAll runs once the third sub-score is stored. On failure the
// wizard stays in the aggregating state with the sub-scores preserved.
func (w *Wizard) completeAll(ctx context.Context) error {
	survey := w.results[scoring.KindSurvey]
	taps := w.results[scoring.KindTaps]
	spiral := w.results[scoring.KindSpiral]

	session, err := w.aggregator.Aggregate(ctx, survey.Score, taps.Score, spiral.Score)
	if err != nil {
		w.log.Error("Aggregation failed", zap.Error(err))
		return &AggregationError{Err: err}
	}

	w.session = session
	w.state = StateResults
	w.log.Info("Assessment complete",
		zap.Uint("session_id", session.ID),
		zap.Float64("overall_risk", session.OverallRisk),
		zap.String("risk_level", string(session.RiskLevel)))
	return nil
}

// Restart abandons the current run and returns to the landing state.
func (w *Wizard) Restart() {
	w.results = make(map[scoring.Kind]*scoring.SubScore)
	w.session = nil
	w.state = StateLanding
	w.log.Info("Assessment restarted")
}

// EnterHistory switches to the history view. It is reachable from any
// state; accumulated results survive the detour but a run cannot be
// resumed afterwards, since ExitHistory lands back on the landing state.
func (w *Wizard) EnterHistory() error {
	if w.state == StateHistory {
		return fmt.Errorf("already in history")
	}
	w.state = StateHistory
	return nil
}

// ExitHistory returns to the landing state.
func (w *Wizard) ExitHistory() error {
	if w.state != StateHistory {
		return fmt.Errorf("cannot exit history while in %s", w.state)
	}
	w.state = StateLanding
	return nil
}

func (w *Wizard) State() State { return w.state }

// SubScores returns a copy of the accumulated results keyed by
// instrument.
func (w *Wizard) SubScores() map[scoring.Kind]*scoring.SubScore {
	out := make(map[scoring.Kind]*scoring.SubScore, len(w.results))
	for kind, result := range w.results {
		out[kind] = result
	}
	return out
}

// Session returns the finalized session, nil until aggregation succeeds.
func (w *Wizard) Session() *models.Session { return w.session }
