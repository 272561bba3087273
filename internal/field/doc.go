// Package field implements the living color field: a background color that
// drifts between near-black, baseline gray and near-white as a pure function
// of wall-clock time.
//
// Two engines live here:
//
//   - [Scheduler]: the deterministic walk. Colors and leg durations are drawn
//     from a seeded LCG keyed by day of year and transition index, so any
//     number of independent viewers started at different moments converge on
//     the same trajectory without shared state.
//   - [Hover]: a session-local walk started by pointer hover. It draws from
//     an ordinary random source and makes no reproducibility promise.
//
// Neither engine reads a clock. Every call takes "now" explicitly, and
// progress is computed from absolute timestamps, so a host that stops
// ticking for minutes (a hidden tab, a suspended terminal) picks up exactly
// where the trajectory says it should be.
//
// # Modes
//
// The scheduler is a small state machine:
//
//	Living -> PinnedWhite -> ReturningToGray -> Living
//
// Entering PinnedWhite or ReturningToGray captures the color on screen as
// the start of a short eased leg. Leaving ReturningToGray restarts the walk
// from baseline gray with a freshly generated target.
//
// # Thread Safety
//
// Scheduler and Hover are NOT thread-safe. They are owned by a single tick
// loop.
package field
