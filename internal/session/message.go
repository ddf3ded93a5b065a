// Package session implements the JSON message schema and handler for the
// external game-session server described by §6.4: client requests
// (NewGame, SetPosition, PlayMove) turn into server responses (State,
// MoveResult, Error) over whatever transport the caller wires up (stdio,
// websocket, etc. — none is prescribed, so this package only implements the
// message shapes and the state machine, not a transport).
package session

import (
	"fmt"

	"github.com/danielpang35/rustychess/internal/board"
)

// ClientMessage is the envelope for every client→server message; Type
// selects which of the payload fields is populated.
type ClientMessage struct {
	Type string `json:"type"`

	// NewGame
	PlayerSide int `json:"playerside,omitempty"`

	// SetPosition
	FEN string `json:"fen,omitempty"`

	// PlayMove
	ID uint16 `json:"id,omitempty"`
}

// LegalMove describes one entry of a State message's legal_moves array.
// ID matches its index in the array, per §6.4.
type LegalMove struct {
	ID    int    `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Promo string `json:"promo,omitempty"`
}

// StateMessage is the authoritative snapshot sent after every accepted
// request and after the engine completes its reply.
type StateMessage struct {
	Type       string      `json:"type"`
	Board      [64]string  `json:"board"`
	Turn       string      `json:"turn"`
	LegalMoves []LegalMove `json:"legal_moves"`
	Thinking   bool        `json:"thinking"`
	Eval       int         `json:"eval"`
	BestMove   string      `json:"best_move,omitempty"`
}

// MoveResultMessage acknowledges a PlayMove request.
type MoveResultMessage struct {
	Type   string `json:"type"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// ErrorMessage reports a malformed request or illegal state transition.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ServerMessage is implemented by every outbound message type, tagged so a
// transport layer can type-switch on it before marshaling.
type ServerMessage interface {
	messageType() string
}

func (StateMessage) messageType() string      { return "State" }
func (MoveResultMessage) messageType() string { return "MoveResult" }
func (ErrorMessage) messageType() string      { return "Error" }

func newError(format string, args ...any) ErrorMessage {
	return ErrorMessage{Type: "Error", Message: fmt.Sprintf(format, args...)}
}

// pieceLetter renders a board cell as the spec's 12-letter/dot alphabet.
func pieceLetter(p board.Piece) string {
	if p.IsNone() {
		return "."
	}
	return p.String()
}
