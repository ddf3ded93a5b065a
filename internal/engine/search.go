package engine

import (
	"github.com/danielpang35/rustychess/internal/board"
)

// Infinity bounds the aspiration window on the first iterative-deepening
// pass and any re-search that widens all the way out.
const Infinity = 1 << 20

// Evaluator scores a position from the side-to-move's perspective, in
// centipawns. *nnue.Network satisfies this.
type Evaluator interface {
	Evaluate(b *board.Board) int
}

// Searcher runs a single iterative-deepening search from a board. It owns
// the TT, killer table, and history table exclusively for the duration of
// the search and across iterative-deepening iterations, per §5's
// single-threaded, cooperative scheduling model.
type Searcher struct {
	board *board.Board
	eval  Evaluator
	tt    *TranspositionTable
	order *MoveOrderer

	nodes      uint64
	researches uint64
	pv         [MaxPly + 1][MaxPly + 1]board.Move
	pvLen      [MaxPly + 1]int
}

// NewSearcher builds a searcher over b, reusing tt and order across calls
// so later searches benefit from a warm cache (§9).
func NewSearcher(b *board.Board, eval Evaluator, tt *TranspositionTable, order *MoveOrderer) *Searcher {
	return &Searcher{board: b, eval: eval, tt: tt, order: order}
}

// Nodes returns the number of nodes visited by the most recent search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// PV returns the principal variation found by the most recent search.
func (s *Searcher) PV() []board.Move {
	return append([]board.Move(nil), s.pv[0][:s.pvLen[0]]...)
}

// SearchIterative implements §4.7.1: iterative deepening with a narrowing
// aspiration window, re-searching with a widened bound on the first fail in
// either direction each iteration.
func (s *Searcher) SearchIterative(maxDepth int) (board.Move, int) {
	s.nodes = 0
	var bestMove board.Move
	prevScore := 0

	for depth := 1; depth <= maxDepth; depth++ {
		alpha, beta := -Infinity, Infinity
		if depth > 1 {
			alpha, beta = prevScore-25, prevScore+25
		}

		score, move := s.searchRoot(depth, alpha, beta)
		if score <= alpha && depth > 1 {
			s.researches++
			score, move = s.searchRoot(depth, -Infinity, beta)
		} else if score >= beta && depth > 1 {
			s.researches++
			score, move = s.searchRoot(depth, alpha, Infinity)
		}

		prevScore = score
		if move != board.NoMove {
			bestMove = move
		}
	}

	return bestMove, prevScore
}

// searchRoot implements §4.7.2: the PVS root search over the legal move
// list, with the previous iteration's PV move searched first.
func (s *Searcher) searchRoot(depth, alpha, beta int) (int, board.Move) {
	b := s.board
	ml := b.GenerateLegalMoves()
	if ml.Len() == 0 {
		if b.InCheck() {
			return -mateBase, board.NoMove
		}
		return 0, board.NoMove
	}

	pvMove := board.NoMove
	if s.pvLen[0] > 0 {
		pvMove = s.pv[0][0]
	}
	s.order.OrderMoves(b, ml, pvMove, 0)

	best := board.NoMove
	bestScore := -Infinity
	origAlpha := alpha

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := b.Push(m)

		var score int
		if i == 0 {
			score = -s.negamax(depth-1, 1, -beta, -alpha)
		} else {
			score = -s.negamax(depth-1, 1, -(alpha + 1), -alpha)
			if score > alpha && score < beta {
				s.researches++
				score = -s.negamax(depth-1, 1, -beta, -alpha)
			}
		}

		b.Pop(undo)

		if score > bestScore {
			bestScore = score
			best = m
			s.setPV(0, m, 1)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	if best != board.NoMove {
		flag := TTExact
		if bestScore <= origAlpha {
			flag = TTUpperBound
		} else if bestScore >= beta {
			flag = TTLowerBound
		}
		s.tt.Store(b.Hash, depth, AdjustScoreToTT(bestScore, 0), flag, best)
	}

	return bestScore, best
}

func (s *Searcher) setPV(ply int, m board.Move, childPly int) {
	s.pv[ply][0] = m
	n := s.pvLen[childPly]
	copy(s.pv[ply][1:], s.pv[childPly][:n])
	s.pvLen[ply] = n + 1
}

// negamax implements §4.7.3.
func (s *Searcher) negamax(depth, ply, alpha, beta int) int {
	s.nodes++
	b := s.board

	ttMove := board.NoMove
	if entry, ok := s.tt.Probe(b.Hash); ok {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score >= beta {
					return score
				}
			case TTUpperBound:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(alpha, beta, ply, 0)
	}

	ml := b.GenerateLegalMoves()
	if ml.Len() == 0 {
		if b.InCheck() {
			return -(mateBase - ply)
		}
		return 0
	}

	inCheck := b.InCheck()
	if inCheck && depth < 15 {
		depth++
	}

	s.order.OrderMoves(b, ml, ttMove, ply)

	origAlpha := alpha
	best := board.NoMove
	bestScore := -Infinity

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := b.Push(m)
		givesCheck := b.InCheck()

		var score int
		if depth >= 4 && !inCheck && m.IsQuiet() && i >= 4 && !givesCheck {
			score = -s.negamax(depth-2, ply+1, -(alpha + 1), -alpha)
			if score > alpha {
				score = -s.negamax(depth-1, ply+1, -beta, -alpha)
			}
		} else {
			score = -s.negamax(depth-1, ply+1, -beta, -alpha)
		}

		b.Pop(undo)

		if score > bestScore {
			bestScore = score
			best = m
			if ply+1 <= MaxPly {
				s.setPV(ply, m, ply+1)
			}
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if m.IsQuiet() {
				s.order.UpdateKillers(ply, m)
				s.order.UpdateHistory(m, depth)
			}
			s.tt.Store(b.Hash, depth, AdjustScoreToTT(beta, ply), TTLowerBound, m)
			return beta
		}
	}

	flag := TTUpperBound
	if alpha > origAlpha {
		flag = TTExact
	}
	s.tt.Store(b.Hash, depth, AdjustScoreToTT(alpha, ply), flag, best)
	return alpha
}

const maxQPly = 8

// quiescence implements §4.7.5, fail-hard throughout per §9's
// standardization.
func (s *Searcher) quiescence(alpha, beta, ply, qply int) int {
	s.nodes++
	b := s.board

	if qply >= maxQPly {
		return s.eval.Evaluate(b)
	}

	inCheck := b.InCheck()
	var standPat int
	if !inCheck {
		standPat = s.eval.Evaluate(b)
		if standPat+900 < alpha {
			return alpha
		}
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var ml *board.MoveList
	if inCheck {
		ml = b.GenerateLegalMoves()
	} else {
		ml = b.GenerateCaptures()
	}

	if ml.Len() == 0 {
		if inCheck {
			return -(mateBase - ply)
		}
		return alpha
	}

	s.order.OrderMoves(b, ml, board.NoMove, MaxPly-1)

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)

		if !inCheck {
			gain := capturedPieceValue(s.board, m)
			if m.IsEnPassant() {
				gain = 100
			}
			if m.IsPromotion() {
				promoGain := pieceOrderValue[m.Promotion()] - 100
				if promoGain > 0 {
					gain += promoGain
				}
			}
			if standPat+gain+50 <= alpha {
				continue
			}

			if qply >= 1 && m.IsCapture() && !m.IsPromotion() {
				moverValue := pieceOrderValue[b.PieceAt(m.From()).Type()]
				capturedValue := capturedPieceValue(s.board, m)
				if moverValue > capturedValue+120 && isBadCapture(b, m) {
					continue
				}
			}
		}

		undo := b.Push(m)
		score := -s.quiescence(-beta, -alpha, ply+1, qply+1)
		b.Pop(undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// isBadCapture reports whether the destination square of m remains
// defended by the opponent after the capture, per §4.7.5's bad-capture
// filter: the resulting occupancy is computed by toggling from/to (and
// removing the pawn captured en passant, if applicable) rather than running a full static
// exchange evaluation.
func isBadCapture(b *board.Board, m board.Move) bool {
	them := b.SideToMove.Other()

	occ := b.AllOccupied
	occ &^= board.SquareBB(m.From())
	occ |= board.SquareBB(m.To())
	if m.IsEnPassant() {
		capSq := board.NewSquare(m.To().File(), m.From().Rank())
		occ &^= board.SquareBB(capSq)
	}

	return b.AttackersByColor(m.To(), them, occ) != 0
}
