package search

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/talonchess/talon/internal/board"
	"github.com/talonchess/talon/internal/nnue"
	"github.com/talonchess/talon/internal/tt"
)

// Pool is a Lazy-SMP search coordinator: every worker runs its own
// iterative-deepening loop over its own position copy and history tables,
// reading and writing one shared transposition table, and the first
// worker's result at the greatest completed depth is reported as the
// pool's answer.
type Pool struct {
	table   *tt.Table
	net     *nnue.Network
	opts    Options
	stopped atomic.Bool
	log     Logger
	nodes   atomic.Uint64
}

// NewPool builds a pool with the given options and a freshly loaded
// network. The table is sized from opts.HashMB.
func NewPool(opts Options, log Logger) *Pool {
	if log == nil {
		log = NopLogger{}
	}
	return &Pool{
		table: tt.New(opts.HashMB),
		net:   nnue.Load(),
		opts:  opts,
		log:   log,
	}
}

// Stop requests every in-flight search to abort as soon as possible.
func (p *Pool) Stop() { p.stopped.Store(true) }

// NewGame clears the shared table and history between games.
func (p *Pool) NewGame() { p.table.Clear() }

// Nodes returns the total node count summed across every worker in the most
// recently completed Search call.
func (p *Pool) Nodes() uint64 { return p.nodes.Load() }

// SetThreads changes the worker count used by subsequent Search calls.
func (p *Pool) SetThreads(n int) {
	if n < 1 {
		n = 1
	}
	p.opts.Threads = n
}

// SetMultiPV changes the MultiPV option used by subsequent Search calls.
func (p *Pool) SetMultiPV(n int) { p.opts.MultiPV = n }

// Resize rebuilds the shared transposition table at the given size,
// discarding its contents.
func (p *Pool) Resize(hashMB int) {
	p.opts.HashMB = hashMB
	p.table = tt.New(hashMB)
}

// Options returns the pool's current tunables.
func (p *Pool) Options() Options { return p.opts }

// Search runs a Lazy-SMP search from root across opts.Threads workers and
// returns the best move found.
func (p *Pool) Search(ctx context.Context, root *board.Position, limits Limits) board.Move {
	p.stopped.Store(false)
	p.table.NewGeneration()

	tm := NewTimeManager(limits, root.SideToMove())
	maxDepth := limits.Depth
	if maxDepth == 0 {
		maxDepth = MaxPly - 1
	}

	threads := p.opts.Threads
	if threads < 1 {
		threads = 1
	}

	p.log.BeginSearch()

	results := make([]struct {
		move  board.Move
		score int
		nodes uint64
	}, threads)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < threads; i++ {
		i := i
		g.Go(func() error {
			pos := clonePosition(root)
			td := NewThreadData(i, pos, p.net, p.table, &p.stopped)
			if limits.Nodes > 0 {
				td.nodeCap = limits.Nodes
			}

			var onInfo func(Info)
			if i == 0 {
				onInfo = p.log.PrintInfo
			}
			move, score := iterativeDeepen(td, maxDepth, tm, onInfo)
			results[i].move, results[i].score = move, score
			results[i].nodes = td.Nodes()
			return nil
		})
	}

	go p.watchClock(gctx, tm, limits)
	_ = g.Wait()

	var totalNodes uint64
	for _, r := range results {
		totalNodes += r.nodes
	}
	p.nodes.Store(totalNodes)

	best := results[0].move
	p.log.EndSearch(best, board.NullMove)
	return best
}

// watchClock polls the time manager and the caller's context, setting the
// pool-wide stop flag once either fires. Node-limited and infinite
// searches rely solely on ctx cancellation and the per-thread node cap.
func (p *Pool) watchClock(ctx context.Context, tm *TimeManager, limits Limits) {
	if limits.Infinite {
		<-ctx.Done()
		p.Stop()
		return
	}
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.Stop()
			return
		case <-ticker.C:
			if tm.ShouldStopHard() {
				p.Stop()
				return
			}
		}
	}
}

// clonePosition returns an independent copy of pos so each worker can make
// moves without racing the others; board.Position holds no pointers shared
// across copies once its backing slice is duplicated.
func clonePosition(pos *board.Position) *board.Position {
	return pos.Clone()
}
