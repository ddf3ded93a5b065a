package nnue

import "github.com/danielpang35/rustychess/internal/board"

// pieceKinds spans every colored piece kind, kings included: white pawn..king
// then black pawn..king, matching board.Piece.Index().
const pieceKinds = 12

// NumFeatures is the feature-table row count, with index 0 reserved as an
// unused pad row.
const NumFeatures = 64*pieceKinds*64 + 1

// FeatureIndex computes the HalfKP-style feature row for a piece as seen
// from the perspective of the king on kingSq. feat(p) = (king_sq*12 +
// piece_idx)*64 + piece_sq + 1.
func FeatureIndex(kingSq board.Square, p board.Piece, pieceSq board.Square) int {
	return (int(kingSq)*pieceKinds+p.Index())*64 + int(pieceSq) + 1
}
