package recorder

import "time"

// Timeline converts wall-clock timestamps plus accumulated pause intervals
// into the elapsed recording duration. It has no locking of its own; the
// controller serializes access.
type Timeline struct {
	startedAt   time.Time
	pausedAccum time.Duration
	lastPauseAt time.Time // zero when not currently paused
}

// NewTimeline starts the clock at now.
func NewTimeline(now time.Time) *Timeline {
	return &Timeline{startedAt: now}
}

// Pause records the start of a pause interval. Pausing while already paused
// is a no-op.
func (t *Timeline) Pause(now time.Time) {
	if !t.lastPauseAt.IsZero() {
		return
	}
	t.lastPauseAt = now
}

// Resume folds the open pause interval into the accumulator. Resuming while
// not paused is a no-op.
func (t *Timeline) Resume(now time.Time) {
	if t.lastPauseAt.IsZero() {
		return
	}
	t.pausedAccum += now.Sub(t.lastPauseAt)
	t.lastPauseAt = time.Time{}
}

// Paused reports whether a pause interval is currently open.
func (t *Timeline) Paused() bool {
	return !t.lastPauseAt.IsZero()
}

// Finalize closes any open pause interval exactly once, so that stopping
// while paused does not double-count the interval.
func (t *Timeline) Finalize(now time.Time) {
	t.Resume(now)
}

// Elapsed returns the recording time at now: wall time since start minus
// accumulated pauses minus any open pause. Never negative; while a pause is
// open the value stays constant.
func (t *Timeline) Elapsed(now time.Time) time.Duration {
	e := now.Sub(t.startedAt) - t.pausedAccum
	if !t.lastPauseAt.IsZero() {
		e -= now.Sub(t.lastPauseAt)
	}
	if e < 0 {
		return 0
	}
	return e
}
