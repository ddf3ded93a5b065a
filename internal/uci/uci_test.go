package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/danielpang35/rustychess/internal/engine"
)

func TestREPLPerftCommand(t *testing.T) {
	var out bytes.Buffer
	r := New(engine.NewEngine(1), &out)
	r.Run(strings.NewReader("perft 3\nquit\n"))

	if !strings.Contains(out.String(), "perft(3) = 8902") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestREPLPositionWithMoves(t *testing.T) {
	var out bytes.Buffer
	r := New(engine.NewEngine(1), &out)
	r.Run(strings.NewReader("position startpos moves e2e4 e7e5\nd\nquit\n"))

	if !strings.Contains(out.String(), "Side to move: White") {
		t.Errorf("expected white to move after e4 e5, got: %q", out.String())
	}
}

func TestREPLGoReturnsBestMove(t *testing.T) {
	var out bytes.Buffer
	r := New(engine.NewEngine(1), &out)
	r.Run(strings.NewReader("position startpos\ngo depth 2\nquit\n"))

	if !strings.Contains(out.String(), "bestmove") {
		t.Errorf("expected a bestmove line, got: %q", out.String())
	}
}
