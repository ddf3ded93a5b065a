package engine

import (
	"testing"

	"github.com/danielpang35/rustychess/internal/board"
)

func TestTTProbeMiss(t *testing.T) {
	tt := NewTranspositionTable(1)
	if _, ok := tt.Probe(0xdeadbeef); ok {
		t.Fatal("expected miss on empty table")
	}
}

func TestTTStoreAndProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	m := board.NewMove(board.E2, board.E4)
	tt.Store(12345, 6, 50, TTExact, m)

	e, ok := tt.Probe(12345)
	if !ok {
		t.Fatal("expected hit")
	}
	if e.BestMove != m || e.Depth != 6 || int(e.Score) != 50 || e.Flag != TTExact {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestTTReplacementPrefersDeeper(t *testing.T) {
	tt := NewTranspositionTable(1)
	m1 := board.NewMove(board.E2, board.E4)
	m2 := board.NewMove(board.D2, board.D4)

	tt.Store(1, 4, 10, TTUpperBound, m1)
	tt.Store(1, 2, 20, TTUpperBound, m2) // shallower, same key: should not overwrite

	e, _ := tt.Probe(1)
	if e.BestMove != m1 || e.Depth != 4 {
		t.Errorf("shallower store clobbered deeper entry: %+v", e)
	}

	tt.Store(1, 5, 30, TTUpperBound, m2) // deeper: should overwrite
	e, _ = tt.Probe(1)
	if e.BestMove != m2 || e.Depth != 5 {
		t.Errorf("deeper store did not replace: %+v", e)
	}
}

func TestTTExactAlwaysOverwritesSameKey(t *testing.T) {
	tt := NewTranspositionTable(1)
	m1 := board.NewMove(board.E2, board.E4)
	m2 := board.NewMove(board.D2, board.D4)

	tt.Store(7, 10, 10, TTUpperBound, m1)
	tt.Store(7, 1, 99, TTExact, m2) // shallow but EXACT: must still overwrite

	e, _ := tt.Probe(7)
	if e.BestMove != m2 || e.Flag != TTExact || int(e.Score) != 99 {
		t.Errorf("EXACT store did not override shallower bound: %+v", e)
	}
}

func TestTTClearResetsOccupancy(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(1, 1, 1, TTExact, board.NoMove)
	tt.Clear()
	if _, ok := tt.Probe(1); ok {
		t.Fatal("expected miss after Clear")
	}
	if tt.HashFull() != 0 {
		t.Errorf("HashFull after Clear = %d, want 0", tt.HashFull())
	}
}

func TestMateScoreNormalizationRoundTrips(t *testing.T) {
	for _, ply := range []int{0, 1, 5, 20} {
		mateScore := mateBase - 3 // mate in 3 from the proving ply
		stored := AdjustScoreToTT(mateScore, ply)
		got := AdjustScoreFromTT(stored, ply)
		if got != mateScore {
			t.Errorf("ply %d: round trip = %d, want %d", ply, got, mateScore)
		}
	}
}

func TestMateScoreNormalizationComparableAcrossPlies(t *testing.T) {
	// A mate found at ply 10 stored in the TT, then probed again at ply 3,
	// should read back as "mate in N from ply 3", not the original ply.
	mateAtTen := mateBase - 10
	stored := AdjustScoreToTT(mateAtTen, 10)
	atThree := AdjustScoreFromTT(stored, 3)
	if atThree <= MateWindow {
		t.Fatalf("expected mate score to remain above MateWindow, got %d", atThree)
	}
}
