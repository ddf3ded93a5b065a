// Package nnue implements NNUE (Efficiently Updatable Neural Network) evaluation.
package nnue

import "github.com/danielpang35/rustychess/internal/board"

// LoadNetwork reads a network from a weights file. If path is empty it
// returns a network with small deterministic random weights, for use where
// no trained network is available yet.
func LoadNetwork(path string) (*Network, error) {
	n := NewNetwork()
	if path == "" {
		n.InitRandom(12345)
		return n, nil
	}
	if err := n.LoadWeights(path); err != nil {
		return nil, err
	}
	return n, nil
}

// Attach wires the network onto a board as its NNUE hook and rebuilds both
// accumulators from scratch. Call this once after constructing or loading a
// board that should be evaluated with NNUE.
func Attach(b *board.Board, n *Network) {
	b.NNUE = n
	b.AccWhite = n.Refresh(b, board.White)
	b.AccBlack = n.Refresh(b, board.Black)
}

// Evaluate returns the centipawn evaluation of b from the side-to-move's
// perspective, using its already-maintained accumulators.
func (n *Network) Evaluate(b *board.Board) int {
	if b.SideToMove == board.White {
		return n.Forward(b.AccWhite, b.AccBlack)
	}
	return n.Forward(b.AccBlack, b.AccWhite)
}
