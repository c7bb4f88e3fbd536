// Command talon is a UCI chess engine: a bitboard move generator, a PVS
// search with a quantized NNUE evaluator, and a Lazy-SMP thread pool, driven
// over stdin/stdout by the UCI text protocol.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"go.uber.org/zap"

	"github.com/talonchess/talon/internal/bench"
	"github.com/talonchess/talon/internal/config"
	"github.com/talonchess/talon/internal/search"
	"github.com/talonchess/talon/internal/uci"
)

var (
	buildVersion = "(devel)"

	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	version    = flag.Bool("version", false, "only print version and exit")
	configPath = flag.String("config", "", "path to talon.toml")
	benchDepth = flag.Int("bench", 0, "run the fixed bench suite to this depth and exit (0 disables)")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("talon %s, %s %s/%s\n", buildVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return
	}

	if *benchDepth > 0 {
		result := bench.Run(*benchDepth)
		fmt.Printf("nodes %d\n", result.Nodes)
		fmt.Printf("  nps %d\n", result.NPS)
		return
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "talon:", err)
			os.Exit(1)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	diag := newDiagLogger()
	defer diag.Sync()

	opts := search.DefaultOptions()
	if *configPath != "" {
		if f, err := config.Load(*configPath); err != nil {
			diag.Warn("failed to load config, using defaults", zap.String("path", *configPath), zap.Error(err))
		} else {
			opts = f.Options()
		}
	}

	engine := uci.New(diag, opts)
	if err := engine.Run(os.Stdin); err != nil {
		diag.Error("uci loop exited with error", zap.Error(err))
		os.Exit(1)
	}
}

// newDiagLogger builds a logger that writes structured diagnostics to
// stderr, so nothing interleaves with the UCI protocol stream on stdout.
func newDiagLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
