package engine

import (
	"testing"

	"github.com/danielpang35/rustychess/internal/board"
)

func TestEnginePerftStartPosition(t *testing.T) {
	e := NewEngine(1)
	cases := map[int]uint64{1: 20, 2: 400, 3: 8902}
	for depth, want := range cases {
		got := e.Perft(depth)
		if got != want {
			t.Errorf("perft(%d) = %d, want %d", depth, got, want)
		}
	}
}

func TestEngineSetPositionRebuildsAccumulators(t *testing.T) {
	e := NewEngine(1)
	if err := e.SetPosition("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	if e.Board().GenerateLegalMoves().Len() == 0 {
		t.Fatal("expected legal moves from kiwipete position")
	}
	b := e.Board()
	if b.AccWhite != e.net.Refresh(b, board.White) || b.AccBlack != e.net.Refresh(b, board.Black) {
		t.Fatal("SetPosition did not rebuild the NNUE accumulators for the new position")
	}
}

func TestEngineNewGameResetsBoard(t *testing.T) {
	e := NewEngine(1)
	e.SetPosition("7k/8/6K1/8/8/8/8/8 w - - 0 1")
	e.NewGame()
	if e.Perft(1) != 20 {
		t.Errorf("NewGame did not reset to the starting position")
	}
}

func TestScoreToStringFormatsMate(t *testing.T) {
	if got := ScoreToString(mateBase - 1); got != "mate 1" {
		t.Errorf("ScoreToString(mate in 1) = %q", got)
	}
	if got := ScoreToString(50); got != "cp 50" {
		t.Errorf("ScoreToString(50) = %q", got)
	}
}

func TestEngineSearchReturnsLegalMove(t *testing.T) {
	e := NewEngine(1)
	move, _ := e.Search(2)
	if !e.Board().GenerateLegalMoves().Contains(move) {
		t.Fatalf("engine search returned illegal move %s", move.UCI())
	}
}
