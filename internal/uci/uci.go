// Package uci implements the debug command loop used by the
// rustychess-uci entrypoint. UCI move strings are converted by
// internal/board (Move.UCI and ParseUCIMove); this package does not
// re-export them.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danielpang35/rustychess/internal/board"
	"github.com/danielpang35/rustychess/internal/engine"
)

// REPL is a minimal interactive command loop over an engine, in the
// teacher's own style of a plain switch-on-command-name loop rather than a
// full UCI protocol implementation: "position", "go depth", "perft", and
// "d" are the only commands a driver of this engine needs.
type REPL struct {
	engine *engine.Engine
	out    io.Writer
}

// New creates a debug REPL wrapping eng, writing output to out.
func New(eng *engine.Engine, out io.Writer) *REPL {
	return &REPL{engine: eng, out: out}
}

// Run reads commands from in until EOF or "quit".
func (r *REPL) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit":
			return
		case "ucinewgame":
			r.engine.NewGame()
		case "position":
			r.handlePosition(args)
		case "go":
			r.handleGo(args)
		case "perft":
			r.handlePerft(args)
		case "d":
			fmt.Fprintln(r.out, r.engine.Board().String())
		default:
			fmt.Fprintf(r.out, "unknown command: %s\n", cmd)
		}
	}
}

func (r *REPL) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}
	if args[0] == "startpos" {
		if err := r.engine.SetPosition(board.StartFEN); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		args = args[1:]
	} else if args[0] == "fen" {
		args = args[1:]
		end := len(args)
		for i, a := range args {
			if a == "moves" {
				end = i
				break
			}
		}
		fen := strings.Join(args[:end], " ")
		if err := r.engine.SetPosition(fen); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
			return
		}
		args = args[end:]
	}

	if len(args) > 0 && args[0] == "moves" {
		for _, uciMove := range args[1:] {
			m, err := board.ParseUCIMove(uciMove, r.engine.Board())
			if err != nil {
				fmt.Fprintf(r.out, "error: %v\n", err)
				return
			}
			r.engine.Push(m)
		}
	}
}

func (r *REPL) handleGo(args []string) {
	depth := 6
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "depth" {
			if d, err := strconv.Atoi(args[i+1]); err == nil {
				depth = d
			}
		}
	}
	move, score := r.engine.Search(depth)
	fmt.Fprintf(r.out, "bestmove %s score %s\n", move.UCI(), engine.ScoreToString(score))
}

func (r *REPL) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}
	fmt.Fprintf(r.out, "perft(%d) = %d\n", depth, r.engine.Perft(depth))
}
