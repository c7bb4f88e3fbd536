package uci

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/talonchess/talon/internal/board"
	"github.com/talonchess/talon/internal/search"
)

// stdoutLogger renders search.Info as UCI "info" lines on stdout, and mirrors
// a compact summary to a structured zap logger for diagnostics that a human
// operator (not a GUI) might want to tail.
type stdoutLogger struct {
	diag  *zap.Logger
	start time.Time
	buf   bytes.Buffer
}

func newStdoutLogger(diag *zap.Logger) *stdoutLogger {
	return &stdoutLogger{diag: diag}
}

func (l *stdoutLogger) BeginSearch() {
	l.start = time.Now()
	l.diag.Debug("search started")
}

func (l *stdoutLogger) PrintInfo(info search.Info) {
	l.buf.Reset()
	fmt.Fprintf(&l.buf, "info depth %d seldepth %d ", info.Depth, info.SelDepth)
	if info.Mate {
		fmt.Fprintf(&l.buf, "score mate %d ", mateDistance(info.Score))
	} else {
		fmt.Fprintf(&l.buf, "score cp %d ", info.Score)
	}

	millis := uint64(info.Time / time.Millisecond)
	nps := uint64(0)
	if info.Time > 0 {
		nps = info.Nodes * uint64(time.Second) / uint64(info.Time)
	}
	fmt.Fprintf(&l.buf, "nodes %d time %d nps %d ", info.Nodes, millis, nps)

	fmt.Fprint(&l.buf, "pv")
	for _, m := range info.PV {
		fmt.Fprintf(&l.buf, " %s", m.String())
	}
	l.buf.WriteByte('\n')

	os.Stdout.Write(l.buf.Bytes())
	l.diag.Debug("depth complete",
		zap.Int("depth", info.Depth),
		zap.Int("score", info.Score),
		zap.Uint64("nodes", info.Nodes),
	)
}

func (l *stdoutLogger) EndSearch(best, ponder board.Move) {
	if best == board.NullMove {
		fmt.Println("bestmove (none)")
		return
	}
	if ponder != board.NullMove {
		fmt.Printf("bestmove %s ponder %s\n", best.String(), ponder.String())
		return
	}
	fmt.Printf("bestmove %s\n", best.String())
}

// mateDistance converts an internal mate score to the UCI "moves to mate"
// convention, positive for the side to move delivering mate.
func mateDistance(score int) int {
	if score > 0 {
		return (search.ScoreMate - score + 1) / 2
	}
	return -(search.ScoreMate + score) / 2
}
