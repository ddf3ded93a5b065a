package engine

import (
	"testing"

	"github.com/danielpang35/rustychess/internal/board"
)

func TestOrderMovesPutsTTMoveFirst(t *testing.T) {
	b := board.NewBoard()
	ml := b.GenerateLegalMoves()
	tt := ml.Get(ml.Len() - 1)

	o := NewMoveOrderer()
	o.OrderMoves(b, ml, tt, 0)

	if ml.Get(0) != tt {
		t.Fatalf("TT move not ordered first: got %s, want %s", ml.Get(0).UCI(), tt.UCI())
	}
}

func TestOrderMovesCapturesBeforeQuiets(t *testing.T) {
	b, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	ml := b.GenerateLegalMoves()
	o := NewMoveOrderer()
	o.OrderMoves(b, ml, board.NoMove, 0)

	sawQuiet := false
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.IsQuiet() {
			sawQuiet = true
			continue
		}
		if sawQuiet {
			t.Fatalf("capture/promotion %s ordered after a quiet move", m.UCI())
		}
	}
}

func TestUpdateKillersShiftsAndSkipsDuplicates(t *testing.T) {
	o := NewMoveOrderer()
	m1 := board.NewMove(board.E2, board.E4)
	m2 := board.NewMove(board.D2, board.D4)

	o.UpdateKillers(3, m1)
	o.UpdateKillers(3, m2)
	if o.killers[3][0] != m2 || o.killers[3][1] != m1 {
		t.Fatalf("killers = %v, %v", o.killers[3][0], o.killers[3][1])
	}

	o.UpdateKillers(3, m2)
	if o.killers[3][0] != m2 || o.killers[3][1] != m1 {
		t.Fatal("duplicate killer insertion should be a no-op")
	}
}

func TestUpdateHistoryAccumulatesByDepthSquared(t *testing.T) {
	o := NewMoveOrderer()
	m := board.NewMove(board.G1, board.F3)
	o.UpdateHistory(m, 4)
	if o.historyOf(m) != 16 {
		t.Errorf("history = %d, want 16", o.historyOf(m))
	}
	o.UpdateHistory(m, 3)
	if o.historyOf(m) != 25 {
		t.Errorf("history = %d, want 25", o.historyOf(m))
	}
}
