package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/danielpang35/rustychess/internal/board"
	"github.com/danielpang35/rustychess/internal/nnue"
)

// SearchInfo reports the outcome of one depth of iterative deepening, for
// logging/UCI-style output.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	PV    []board.Move
}

// Engine is the single-threaded facade described in §5: it owns the board,
// the NNUE network, the transposition table, and the move-ordering tables,
// and runs searches to completion with no cancellation.
type Engine struct {
	board *board.Board
	net   *nnue.Network
	tt    *TranspositionTable
	order *MoveOrderer

	Debug bool
}

// NewEngine creates an engine with a transposition table of the given size
// in megabytes and a freshly initialized (untrained) NNUE network attached
// to the starting position. Callers that have a trained network should call
// LoadNNUE afterward.
func NewEngine(hashMB int) *Engine {
	b := board.NewBoard()
	net, _ := nnue.LoadNetwork("")
	nnue.Attach(b, net)

	return &Engine{
		board: b,
		net:   net,
		tt:    NewTranspositionTable(hashMB),
		order: NewMoveOrderer(),
	}
}

// LoadNNUE replaces the engine's network with one loaded from path and
// rebuilds the board's accumulators against it.
func (e *Engine) LoadNNUE(path string) error {
	net, err := nnue.LoadNetwork(path)
	if err != nil {
		return fmt.Errorf("load NNUE: %w", err)
	}
	e.net = net
	nnue.Attach(e.board, net)
	return nil
}

// NewGame resets the board to the starting position and clears killer and
// history tables, per §9's guidance on when to drop warm search state.
func (e *Engine) NewGame() {
	e.SetPosition(board.StartFEN)
	e.order.Reset()
	e.tt.Clear()
}

// SetPosition loads fen as the current position, reattaching the NNUE
// network so its accumulators are rebuilt from scratch, and clears killer
// and history tables per §9.
func (e *Engine) SetPosition(fen string) error {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return fmt.Errorf("set position: %w", err)
	}
	e.board = b
	nnue.Attach(e.board, e.net)
	e.order.Reset()
	return nil
}

// Board returns the engine's current position.
func (e *Engine) Board() *board.Board {
	return e.board
}

// Push plays a move on the engine's board, keeping NNUE accumulators
// consistent. It does not touch killer/history/TT state, so the next search
// still benefits from the warm cache per §9.
func (e *Engine) Push(m board.Move) board.Undo {
	return e.board.Push(m)
}

// Pop undoes a move previously played with Push.
func (e *Engine) Pop(undo board.Undo) {
	e.board.Pop(undo)
}

// Search runs one iterative-deepening search to maxDepth against the
// engine's current board and network, logging a summary line when Debug is
// set. SearchIterative already walks depth 1..maxDepth internally, so this
// calls it exactly once; calling it again per depth would redo every
// shallower iteration from scratch for no benefit.
func (e *Engine) Search(maxDepth int) (board.Move, int) {
	s := NewSearcher(e.board, e.net, e.tt, e.order)
	start := time.Now()

	move, score := s.SearchIterative(maxDepth)
	if e.Debug {
		log.Printf("info depth %d score cp %d nodes %d time %s pv %s",
			maxDepth, score, s.Nodes(), time.Since(start), pvString(s.PV()))
	}
	return move, score
}

// Evaluate returns the static NNUE evaluation of the engine's current
// position from the side-to-move's perspective.
func (e *Engine) Evaluate() int {
	return e.net.Evaluate(e.board)
}

// Perft counts leaf nodes at depth for the engine's current position,
// exercising move generation and make/unmake without search or evaluation.
func (e *Engine) Perft(depth int) uint64 {
	return perft(e.board, depth)
}

func perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	ml := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(ml.Len())
	}
	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		undo := b.Push(ml.Get(i))
		nodes += perft(b, depth-1)
		b.Pop(undo)
	}
	return nodes
}

// ScoreToString renders a centipawn/mate score the way a UCI "info score"
// line would, converting scores beyond MateWindow to "mate N".
func ScoreToString(score int) string {
	if score > MateWindow {
		pliesToMate := mateBase - score
		return fmt.Sprintf("mate %d", (pliesToMate+1)/2)
	}
	if score < -MateWindow {
		pliesToMate := mateBase + score
		return fmt.Sprintf("mate -%d", (pliesToMate+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

func pvString(pv []board.Move) string {
	s := ""
	for i, m := range pv {
		if i > 0 {
			s += " "
		}
		s += m.UCI()
	}
	return s
}
