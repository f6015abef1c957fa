// Package capture implements the three instrument captures of an
// assessment: the symptom survey, the timed tap test, and the spiral
// drawing. Each capture validates its input locally and hands a
// well-formed payload to the scoring client. None of them retry on
// their own; a failed submission puts the capture in an error state
// that reverts to the instructional state after a fixed number of
// ticks.
package capture

// errorRevertTicks is how many ticks a capture stays in its error state
// before reverting to the instructional state.
const errorRevertTicks = 3
