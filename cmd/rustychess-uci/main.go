// Command rustychess-uci is a debug entrypoint: a thin REPL over the
// engine for manual inspection (position/go/perft/d), not a full UCI
// protocol implementation — see internal/uci for the supported commands.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/danielpang35/rustychess/internal/engine"
	"github.com/danielpang35/rustychess/internal/uci"
)

var (
	hashMB     = flag.Int("hash", 64, "transposition table size in MB")
	nnuePath   = flag.String("nnue", "", "path to NNUE weights file (random weights if empty)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	eng := engine.NewEngine(*hashMB)
	if *nnuePath != "" {
		if err := eng.LoadNNUE(*nnuePath); err != nil {
			log.Printf("NNUE not loaded: %v (using untrained weights)", err)
		}
	}

	repl := uci.New(eng, os.Stdout)
	repl.Run(os.Stdin)
}
