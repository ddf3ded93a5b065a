// Package engine implements the search: transposition table, move ordering,
// iterative-deepening alpha-beta, and the facade gluing them to a board and
// an NNUE network.
package engine

import "github.com/danielpang35/rustychess/internal/board"

// MaterialEvaluator is a material-count Evaluator for searches run without
// an NNUE network; Engine itself always evaluates with its network and never
// falls back to it. It is intentionally minimal: the evaluator of record is the
// NNUE network (§4.5); this exists only so a Searcher can be constructed and
// exercised (tests, perft-adjacent tooling) without requiring a network.
type MaterialEvaluator struct{}

// Evaluate returns the material balance from the side-to-move's perspective.
func (MaterialEvaluator) Evaluate(b *board.Board) int {
	score := b.Material()
	if b.SideToMove == board.Black {
		return -score
	}
	return score
}
