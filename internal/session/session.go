package session

import (
	"github.com/danielpang35/rustychess/internal/board"
	"github.com/danielpang35/rustychess/internal/engine"
)

// EngineSearchDepth is the fixed depth the session server searches at when
// it is the engine's turn to move, both on its own first move (§6.4
// NewGame with playerside=1) and in reply to the player.
const EngineSearchDepth = 5

// Session drives one game: one engine instance, one "thinking" flag, and
// the legal-move list the client's next PlayMove.id is resolved against.
//
// §5 describes a dedicated worker task blocking the search so a real I/O
// loop stays responsive while thinking is true. This type implements the
// state machine and message sequencing; it runs the engine search inline
// rather than on a separate goroutine, since the engine itself guarantees
// every search completes (no cancellation, §5) and the dedicated-worker
// split is a transport-level concern this package does not prescribe.
type Session struct {
	eng        *engine.Engine
	thinking   bool
	legalMoves []board.Move
}

// New creates a session over a fresh engine with the given hash table size.
func New(hashMB int) *Session {
	return &Session{eng: engine.NewEngine(hashMB)}
}

// Handle processes one client message and returns the server messages it
// produces, in order.
func (s *Session) Handle(msg ClientMessage) []ServerMessage {
	switch msg.Type {
	case "NewGame":
		return s.handleNewGame(msg)
	case "SetPosition":
		return s.handleSetPosition(msg)
	case "PlayMove":
		return s.handlePlayMove(msg)
	default:
		return []ServerMessage{newError("unknown message type %q", msg.Type)}
	}
}

func (s *Session) handleNewGame(msg ClientMessage) []ServerMessage {
	s.eng.NewGame()
	s.thinking = false
	s.refreshLegalMoves()

	if msg.PlayerSide == 1 {
		return s.engineReplies()
	}
	return []ServerMessage{s.stateMessage("")}
}

func (s *Session) handleSetPosition(msg ClientMessage) []ServerMessage {
	if s.thinking {
		return []ServerMessage{newError("position rejected: engine is thinking")}
	}
	if err := s.eng.SetPosition(msg.FEN); err != nil {
		return []ServerMessage{newError("invalid position: %v", err)}
	}
	s.refreshLegalMoves()
	return []ServerMessage{s.stateMessage("")}
}

func (s *Session) handlePlayMove(msg ClientMessage) []ServerMessage {
	if s.thinking {
		return []ServerMessage{newError("move rejected: engine is thinking")}
	}
	if int(msg.ID) >= len(s.legalMoves) {
		return []ServerMessage{MoveResultMessage{Type: "MoveResult", OK: false, Reason: "no such legal move id"}}
	}

	m := s.legalMoves[msg.ID]
	s.eng.Push(m)
	s.refreshLegalMoves()

	out := []ServerMessage{MoveResultMessage{Type: "MoveResult", OK: true}}
	return append(out, s.engineReplies()...)
}

// engineReplies emits a thinking=true snapshot, runs the search, applies
// the engine's move, and emits the settled thinking=false snapshot — the
// two-message sequence §5 describes for an engine turn.
func (s *Session) engineReplies() []ServerMessage {
	if s.eng.Board().GenerateLegalMoves().Len() == 0 {
		return []ServerMessage{s.stateMessage("")}
	}

	s.thinking = true
	thinkingMsg := s.stateMessage("")

	move, _ := s.eng.Search(EngineSearchDepth)
	s.eng.Push(move)
	s.thinking = false
	s.refreshLegalMoves()

	return []ServerMessage{thinkingMsg, s.stateMessage(move.UCI())}
}

func (s *Session) refreshLegalMoves() {
	ml := s.eng.Board().GenerateLegalMoves()
	s.legalMoves = make([]board.Move, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		s.legalMoves[i] = ml.Get(i)
	}
}

func (s *Session) stateMessage(bestMove string) StateMessage {
	b := s.eng.Board()

	var cells [64]string
	for sq := board.A1; sq <= board.H8; sq++ {
		cells[sq] = pieceLetter(b.PieceAt(sq))
	}

	legal := make([]LegalMove, len(s.legalMoves))
	for i, m := range s.legalMoves {
		lm := LegalMove{ID: i, From: m.From().String(), To: m.To().String()}
		if m.IsPromotion() {
			lm.Promo = string(m.UCI()[4])
		}
		legal[i] = lm
	}

	turn := "w"
	if b.SideToMove == board.Black {
		turn = "b"
	}

	return StateMessage{
		Type:       "State",
		Board:      cells,
		Turn:       turn,
		LegalMoves: legal,
		Thinking:   s.thinking,
		Eval:       s.eng.Evaluate(),
		BestMove:   bestMove,
	}
}
