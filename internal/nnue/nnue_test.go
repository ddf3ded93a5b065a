package nnue

import (
	"bytes"
	"testing"

	"github.com/danielpang35/rustychess/internal/board"
)

func TestWeightsRoundTrip(t *testing.T) {
	n := NewNetwork()
	n.InitRandom(7)

	var buf bytes.Buffer
	if err := n.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	original := append([]byte(nil), buf.Bytes()...)

	loaded := NewNetwork()
	if err := loaded.Load(bytes.NewReader(original)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var reserialized bytes.Buffer
	if err := loaded.Save(&reserialized); err != nil {
		t.Fatalf("Save (re-serialize): %v", err)
	}
	if !bytes.Equal(original, reserialized.Bytes()) {
		t.Error("re-serialized weights are not byte-identical to the original")
	}
}

func TestWeightsRoundTripWithFastHead(t *testing.T) {
	n := NewNetwork()
	n.InitRandom(11)
	n.HasFastHead = true
	n.ScaleFastOut = 64
	n.FastOutW = make([]int16, 2*int(n.Hidden))
	for i := range n.FastOutW {
		n.FastOutW[i] = int16(i % 17)
	}
	n.FastOutB = 42

	var buf bytes.Buffer
	if err := n.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := NewNetwork()
	if err := loaded.Load(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.HasFastHead {
		t.Fatal("fast head not detected on load")
	}
	if loaded.ScaleFastOut != 64 || loaded.FastOutB != 42 {
		t.Errorf("fast head fields mismatch: scale=%d bias=%d", loaded.ScaleFastOut, loaded.FastOutB)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	n := NewNetwork()
	if err := n.Load(bytes.NewReader([]byte("GARBAGE!!!!"))); err == nil {
		t.Error("expected error for bad magic")
	}
}

func TestLoadRejectsBadVersion(t *testing.T) {
	n := NewNetwork()
	var buf bytes.Buffer
	buf.WriteString("NNUE")
	buf.Write([]byte{99, 0, 0, 0})
	if err := n.Load(bytes.NewReader(buf.Bytes())); err == nil {
		t.Error("expected error for bad version")
	}
}

func TestFeatureIndexDistinctForDistinctPieces(t *testing.T) {
	wp := board.NewPiece(board.Pawn, board.White)
	bp := board.NewPiece(board.Pawn, board.Black)
	king := board.E1

	a := FeatureIndex(king, wp, board.E4)
	b := FeatureIndex(king, bp, board.E4)
	c := FeatureIndex(king, wp, board.E5)
	if a == b || a == c || b == c {
		t.Error("distinct (piece, square) pairs must map to distinct features")
	}
	if a == 0 || b == 0 || c == 0 {
		t.Error("feature index 0 is the reserved pad row and must never be produced")
	}
}

func TestAttachMaintainsAccumulatorsAcrossMoves(t *testing.T) {
	n := NewNetwork()
	n.InitRandom(3)

	b, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	Attach(b, n)

	moves := b.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := b.Push(m)

		wantWhite := n.Refresh(b, board.White)
		wantBlack := n.Refresh(b, board.Black)
		if b.AccWhite != wantWhite {
			t.Errorf("move %s: white accumulator diverged from from-scratch rebuild", m.UCI())
		}
		if b.AccBlack != wantBlack {
			t.Errorf("move %s: black accumulator diverged from from-scratch rebuild", m.UCI())
		}

		b.Pop(undo)
	}
}
