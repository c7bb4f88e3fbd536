package search

import (
	"time"

	"github.com/talonchess/talon/internal/board"
)

// TimeManager computes soft/hard search deadlines from UCI time controls,
// generalizing the branch-factor heuristic with a node-fraction soft stop:
// the search may keep going past the soft deadline only while it is still
// making progress (a fail-low/fail-high re-search, or a best-move change),
// but never past the hard deadline.
type TimeManager struct {
	start    time.Time
	soft     time.Duration
	hard     time.Duration
	hardOnly bool
}

// NewTimeManager derives a time budget from Limits for the side to move.
func NewTimeManager(l Limits, us board.Color) *TimeManager {
	now := time.Now()
	if l.MoveTime > 0 {
		return &TimeManager{start: now, soft: l.MoveTime, hard: l.MoveTime, hardOnly: true}
	}
	if l.Infinite || (l.WTime == 0 && l.BTime == 0 && l.MoveTime == 0) {
		return &TimeManager{start: now, soft: time.Hour, hard: time.Hour}
	}

	remaining, inc := l.WTime, l.WInc
	if us == board.Black {
		remaining, inc = l.BTime, l.BInc
	}

	movesToGo := l.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}

	alloc := remaining/time.Duration(movesToGo) + inc*3/4
	if alloc > remaining-100*time.Millisecond {
		alloc = remaining - 100*time.Millisecond
	}
	if alloc < time.Millisecond {
		alloc = time.Millisecond
	}

	return &TimeManager{
		start: now,
		soft:  alloc * 6 / 10,
		hard:  alloc * 3,
	}
}

// Elapsed returns the time since the search started.
func (tm *TimeManager) Elapsed() time.Duration { return time.Since(tm.start) }

// ShouldStopSoft reports whether the search has passed its soft deadline,
// the point at which iterative deepening should not start a new depth.
func (tm *TimeManager) ShouldStopSoft() bool { return tm.Elapsed() >= tm.soft }

// ShouldStopHard reports whether the search has passed its hard deadline,
// the point at which the current search must abort mid-iteration.
func (tm *TimeManager) ShouldStopHard() bool { return tm.Elapsed() >= tm.hard }
