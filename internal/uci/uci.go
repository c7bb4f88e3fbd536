// Package uci implements the text protocol described at
// http://wbec-ridderkerk.nl/html/UCIProtocol.html, translating GUI commands
// read from stdin into internal/search.Pool calls and writing "info" and
// "bestmove" lines to stdout.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/talonchess/talon/internal/board"
	"github.com/talonchess/talon/internal/search"
)

// errQuit unwinds Run's command loop on "quit".
var errQuit = errors.New("uci: quit")

const (
	name          = "talon"
	author        = "talonchess"
	maxMultiPV    = 16
	defaultHashMB = 16
)

// Engine holds the protocol session state: the current position, the search
// pool, and the in-flight search (if any).
type Engine struct {
	pool *search.Pool
	diag *zap.Logger

	pos *board.Position

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

// New builds an Engine with a freshly constructed search pool seeded from
// opts (zero-value Options falls back to search.DefaultOptions).
func New(diag *zap.Logger, opts search.Options) *Engine {
	if diag == nil {
		diag = zap.NewNop()
	}
	if opts == (search.Options{}) {
		opts = search.DefaultOptions()
	}
	e := &Engine{diag: diag}
	e.pool = search.NewPool(opts, newStdoutLogger(diag))
	pos, _ := board.ParseFEN(board.StartFEN)
	e.pos = pos
	return e
}

// Run reads commands from r until "quit" or EOF.
func (e *Engine) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := e.Execute(scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			e.diag.Warn("command failed", zap.Error(err))
		}
	}
	return scanner.Err()
}

var reCmd = regexp.MustCompile(`^[[:word:]]+\b`)

// Execute runs a single protocol line.
func (e *Engine) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd := reCmd.FindString(line)
	if cmd == "" {
		return fmt.Errorf("uci: invalid command line %q", line)
	}

	switch cmd {
	case "uci":
		return e.uci()
	case "isready":
		fmt.Println("readyok")
		return nil
	case "quit":
		return errQuit
	case "stop":
		return e.stop()
	case "ponderhit":
		return nil
	case "ucinewgame":
		e.pool.NewGame()
		return nil
	case "position":
		return e.position(line)
	case "go":
		return e.goCmd(line)
	case "setoption":
		return e.setoption(line)
	case "debug":
		return nil
	default:
		return fmt.Errorf("uci: unhandled command %q", cmd)
	}
}

func (e *Engine) uci() error {
	fmt.Printf("id name %s\n", name)
	fmt.Printf("id author %s\n", author)
	fmt.Println()
	fmt.Printf("option name Hash type spin default %d min 1 max 65536\n", defaultHashMB)
	fmt.Printf("option name Threads type spin default 1 min 1 max 256\n")
	fmt.Printf("option name MultiPV type spin default 1 min 1 max %d\n", maxMultiPV)
	fmt.Println("option name Clear Hash type button")
	fmt.Println("option name Ponder type check default false")
	fmt.Println("uciok")
	return nil
}

func (e *Engine) position(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("uci: position requires an argument")
	}

	var pos *board.Position
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		pos, err = board.ParseFEN(board.StartFEN)
		i = 1
	case "fen":
		j := 1
		for j < len(args) && args[j] != "moves" {
			j++
		}
		pos, err = board.ParseFEN(strings.Join(args[1:j], " "))
		i = j
	default:
		return fmt.Errorf("uci: unknown position argument %q", args[0])
	}
	if err != nil {
		return err
	}

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("uci: expected 'moves', got %q", args[i])
		}
		for _, ms := range args[i+1:] {
			m, err := pos.ParseUCIMove(ms)
			if err != nil {
				return err
			}
			pos.DoMove(m)
		}
	}

	e.mu.Lock()
	e.pos = pos
	e.mu.Unlock()
	return nil
}

var validGoCommands = map[string]bool{
	"searchmoves": true, "ponder": true, "wtime": true, "btime": true,
	"winc": true, "binc": true, "movestogo": true, "depth": true,
	"nodes": true, "mate": true, "movetime": true, "infinite": true,
}

func (e *Engine) goCmd(line string) error {
	var limits search.Limits

	args := strings.Fields(line)[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "searchmoves":
			for i+1 < len(args) && !validGoCommands[args[i+1]] {
				i++
			}
		case "ponder":
			// Pondering is accepted syntactically; search proceeds under
			// normal time control once "go" is issued without it.
		case "infinite":
			limits.Infinite = true
		case "wtime":
			i++
			limits.WTime = millis(args[i])
		case "btime":
			i++
			limits.BTime = millis(args[i])
		case "winc":
			i++
			limits.WInc = millis(args[i])
		case "binc":
			i++
			limits.BInc = millis(args[i])
		case "movestogo":
			i++
			limits.MovesToGo, _ = strconv.Atoi(args[i])
		case "movetime":
			i++
			limits.MoveTime = millis(args[i])
		case "depth":
			i++
			limits.Depth, _ = strconv.Atoi(args[i])
		case "nodes":
			i++
			n, _ := strconv.ParseUint(args[i], 10, 64)
			limits.Nodes = n
		case "mate":
			i++
		default:
			return fmt.Errorf("uci: invalid go argument %q", args[i])
		}
	}

	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return fmt.Errorf("uci: search already running")
	}
	pos := e.pos
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.running = true
	e.mu.Unlock()

	go func() {
		e.pool.Search(ctx, pos, limits)
		e.mu.Lock()
		e.running = false
		e.cancel = nil
		e.mu.Unlock()
	}()
	return nil
}

func millis(s string) time.Duration {
	n, _ := strconv.Atoi(s)
	return time.Duration(n) * time.Millisecond
}

func (e *Engine) stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
	return nil
}

var reOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (e *Engine) setoption(line string) error {
	option := reOption.FindStringSubmatch(line)
	if option == nil {
		return fmt.Errorf("uci: invalid setoption line %q", line)
	}

	switch option[1] {
	case "Clear Hash":
		e.pool.NewGame()
		return nil
	case "Ponder":
		return nil
	}

	if len(option) < 4 || option[3] == "" {
		return fmt.Errorf("uci: missing setoption value for %q", option[1])
	}
	value := option[3]

	switch option[1] {
	case "Hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		e.pool.Resize(mb)
		return nil
	case "Threads":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		e.pool.SetThreads(n)
		return nil
	case "MultiPV":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if n < 1 || n > maxMultiPV {
			return fmt.Errorf("uci: MultiPV must be between 1 and %d", maxMultiPV)
		}
		e.pool.SetMultiPV(n)
		return nil
	default:
		return fmt.Errorf("uci: unhandled option %q", option[1])
	}
}
