package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/talonchess/talon/internal/board"
)

func TestTimeManagerFixedMoveTimeIsHardOnly(t *testing.T) {
	tm := NewTimeManager(Limits{MoveTime: 50 * time.Millisecond}, board.White)
	assert.True(t, tm.hardOnly)
	assert.Equal(t, 50*time.Millisecond, tm.hard)
	assert.Equal(t, 50*time.Millisecond, tm.soft)
}

func TestTimeManagerInfiniteNeverStopsSoon(t *testing.T) {
	tm := NewTimeManager(Limits{Infinite: true}, board.White)
	assert.False(t, tm.ShouldStopSoft())
	assert.False(t, tm.ShouldStopHard())
}

func TestTimeManagerAllocatesFractionOfRemaining(t *testing.T) {
	tm := NewTimeManager(Limits{WTime: 60 * time.Second, MovesToGo: 30}, board.White)
	assert.Greater(t, tm.soft, time.Duration(0))
	assert.Greater(t, tm.hard, tm.soft)
}

func TestTimeManagerUsesBlackClockForBlackToMove(t *testing.T) {
	tm := NewTimeManager(Limits{WTime: 60 * time.Second, BTime: 6 * time.Second, MovesToGo: 30}, board.Black)
	other := NewTimeManager(Limits{WTime: 60 * time.Second, BTime: 60 * time.Second, MovesToGo: 30}, board.Black)
	assert.Less(t, tm.soft, other.soft)
}
