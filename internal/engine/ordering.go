package engine

import (
	"sort"

	"github.com/danielpang35/rustychess/internal/board"
)

// MaxPly bounds the killer and PV arrays. Quiescence recursion is bounded
// separately, by maxQPly in search.go.
const MaxPly = 128

// pieceOrderValue gives the move-ordering weight for a piece type, matching
// §4.7.4's P 100 / N 320 / B 330 / R 500 / Q 900 / K 20000 table. It is kept
// separate from board.PieceValue so move ordering can diverge from
// evaluation material weights without touching the evaluator.
var pieceOrderValue = [7]int{0, 100, 320, 330, 500, 900, 20000}

// MoveOrderer holds the killer and history tables that persist across
// iterative-deepening iterations and, optionally, across moves played in a
// session (cleared only on NewGame/SetPosition per §9).
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [64][64]int32
	nodes   uint64
}

// NewMoveOrderer creates an empty orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Reset clears killers and history, for NewGame/SetPosition.
func (o *MoveOrderer) Reset() {
	*o = MoveOrderer{}
}

// UpdateKillers inserts a quiet move that caused a beta cutoff at ply,
// shifting the previous first killer down, skipping duplicates.
func (o *MoveOrderer) UpdateKillers(ply int, m board.Move) {
	if !m.IsQuiet() {
		return
	}
	if o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// UpdateHistory bumps the history score for a quiet move that caused a
// cutoff at the given depth, decaying the whole table periodically so
// scores stay bounded across a long search.
func (o *MoveOrderer) UpdateHistory(m board.Move, depth int) {
	o.nodes++
	if o.nodes%16384 == 0 {
		for f := range o.history {
			for t := range o.history[f] {
				o.history[f][t] >>= 1
			}
		}
	}
	o.history[m.From()][m.To()] += int32(depth * depth)
}

func (o *MoveOrderer) historyOf(m board.Move) int32 {
	return o.history[m.From()][m.To()]
}

// moveScore ranks a move for ordering purposes, higher first.
func (o *MoveOrderer) moveScore(b *board.Board, m, ttMove board.Move, ply int) int64 {
	if m == ttMove {
		return 1 << 40
	}
	if m.IsCapture() {
		captured := capturedPieceValue(b, m)
		promo := 0
		if m.IsPromotion() {
			promo = pieceOrderValue[m.Promotion()]
		}
		mover := pieceOrderValue[b.PieceAt(m.From()).Type()]
		return int64(1<<30) + int64(100*captured+10*promo-mover)
	}
	if m.IsPromotion() {
		return int64(1<<30) + int64(10*pieceOrderValue[m.Promotion()])
	}
	if ply < MaxPly {
		if m == o.killers[ply][0] {
			return 1 << 20
		}
		if m == o.killers[ply][1] {
			return 1<<20 - 1
		}
	}
	return int64(o.historyOf(m))
}

func capturedPieceValue(b *board.Board, m board.Move) int {
	if m.IsEnPassant() {
		return pieceOrderValue[board.Pawn]
	}
	captured := b.PieceAt(m.To())
	if captured.IsNone() {
		return 0
	}
	return pieceOrderValue[captured.Type()]
}

// OrderMoves sorts ml in place: TT move first, then captures/promotions by
// MVV/LVA, then killers, then quiets by descending history.
func (o *MoveOrderer) OrderMoves(b *board.Board, ml *board.MoveList, ttMove board.Move, ply int) {
	n := ml.Len()
	scores := make([]int64, n)
	for i := 0; i < n; i++ {
		scores[i] = o.moveScore(b, ml.Get(i), ttMove, ply)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, c int) bool { return scores[idx[a]] > scores[idx[c]] })

	ordered := make([]board.Move, n)
	for i, j := range idx {
		ordered[i] = ml.Get(j)
	}
	for i := 0; i < n; i++ {
		ml.Set(i, ordered[i])
	}
}
