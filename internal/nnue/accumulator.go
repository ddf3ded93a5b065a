package nnue

import "github.com/danielpang35/rustychess/internal/board"

// Refresh rebuilds the accumulator for one perspective from scratch, summing
// the embedding row for every piece on the board into a copy of the bias.
// Board.Push calls this whenever the perspective's own king moves, since a
// king move re-indexes every feature.
func (n *Network) Refresh(b *board.Board, side board.Color) board.Accumulator {
	var acc board.Accumulator
	for i := range acc {
		acc[i] = n.B1[i]
	}

	kingSq := b.KingSquare[side]
	for c := board.White; c <= board.Black; c++ {
		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := b.PieceBB(c, pt)
			for bb != 0 {
				sq := bb.PopLSB()
				n.addRow(&acc, FeatureIndex(kingSq, board.NewPiece(pt, c), sq))
			}
		}
	}
	return acc
}

// AddFeature adds the embedding row for piece p standing on sq, as seen by
// the king on kingSq, into acc.
func (n *Network) AddFeature(acc *board.Accumulator, perspective board.Color, kingSq board.Square, p board.Piece, sq board.Square) {
	n.addRow(acc, FeatureIndex(kingSq, p, sq))
}

// RemoveFeature subtracts the embedding row added by a prior AddFeature call
// with the same arguments.
func (n *Network) RemoveFeature(acc *board.Accumulator, perspective board.Color, kingSq board.Square, p board.Piece, sq board.Square) {
	n.subRow(acc, FeatureIndex(kingSq, p, sq))
}

func (n *Network) addRow(acc *board.Accumulator, feat int) {
	hidden := int(n.Hidden)
	row := n.Emb[feat*hidden : (feat+1)*hidden]
	for i, w := range row {
		acc[i] += int32(w)
	}
}

func (n *Network) subRow(acc *board.Accumulator, feat int) {
	hidden := int(n.Hidden)
	row := n.Emb[feat*hidden : (feat+1)*hidden]
	for i, w := range row {
		acc[i] -= int32(w)
	}
}
