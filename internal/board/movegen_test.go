package board

import "testing"

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// White king on e1 double-checked by a rook on e8 and a knight on d3.
	b, err := ParseFEN("4r3/8/8/8/8/3n4/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if b.Checkers.PopCount() < 2 {
		t.Fatalf("expected double check, got %d checkers", b.Checkers.PopCount())
	}
	moves := b.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).From() != E1 {
			t.Errorf("double check must only yield king moves, got %s", moves.Get(i).UCI())
		}
	}
}

func TestPinnedPieceCannotLeaveLine(t *testing.T) {
	// White king e1, white bishop e2 pinned by black rook e8.
	b, err := ParseFEN("4r3/8/8/8/8/8/4B3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := b.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() == E2 && m.To() != E3 && m.To() != E4 && m.To() != E5 && m.To() != E6 && m.To() != E7 && m.To() != E8 {
			t.Errorf("pinned bishop escaped the pin line with move %s", m.UCI())
		}
	}
}

func TestSingleCheckMustBlockCaptureOrMoveKing(t *testing.T) {
	// White king e1 in check from a rook on e8; white has a knight that can
	// block on e4 and a bishop that cannot help (its only diagonal is shut
	// by its own pawn on g2).
	b, err := ParseFEN("4r3/8/8/8/8/2N5/6P1/4K2B w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := b.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() == H1 {
			t.Errorf("bishop on h1 has no way to address the check, got %s", m.UCI())
		}
	}
}
