package session

import "testing"

func TestNewGamePlayerWhiteReturnsSingleState(t *testing.T) {
	s := New(1)
	msgs := s.Handle(ClientMessage{Type: "NewGame", PlayerSide: 0})
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	st, ok := msgs[0].(StateMessage)
	if !ok {
		t.Fatalf("expected StateMessage, got %T", msgs[0])
	}
	if st.Turn != "w" || len(st.LegalMoves) != 20 {
		t.Errorf("unexpected initial state: turn=%s moves=%d", st.Turn, len(st.LegalMoves))
	}
}

func TestNewGamePlayerBlackTriggersEngineReply(t *testing.T) {
	s := New(1)
	msgs := s.Handle(ClientMessage{Type: "NewGame", PlayerSide: 1})
	if len(msgs) != 2 {
		t.Fatalf("expected [thinking=true, thinking=false], got %d messages", len(msgs))
	}
	first := msgs[0].(StateMessage)
	second := msgs[1].(StateMessage)
	if !first.Thinking {
		t.Error("expected first state to have thinking=true")
	}
	if second.Thinking {
		t.Error("expected second state to have thinking=false")
	}
	if second.BestMove == "" {
		t.Error("expected engine's move to be reported")
	}
}

func TestPlayMoveByIndex(t *testing.T) {
	s := New(1)
	s.Handle(ClientMessage{Type: "NewGame"})

	msgs := s.Handle(ClientMessage{Type: "PlayMove", ID: 0})
	result, ok := msgs[0].(MoveResultMessage)
	if !ok || !result.OK {
		t.Fatalf("expected successful MoveResult, got %+v", msgs[0])
	}
	// Followed by the engine's own two-state reply sequence.
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages (MoveResult + 2 State), got %d", len(msgs))
	}
}

func TestPlayMoveInvalidIDRejected(t *testing.T) {
	s := New(1)
	s.Handle(ClientMessage{Type: "NewGame"})

	msgs := s.Handle(ClientMessage{Type: "PlayMove", ID: 9999})
	result, ok := msgs[0].(MoveResultMessage)
	if !ok || result.OK {
		t.Fatalf("expected a rejected MoveResult, got %+v", msgs[0])
	}
}

func TestSetPositionRejectedWhileThinking(t *testing.T) {
	s := New(1)
	s.thinking = true
	msgs := s.Handle(ClientMessage{Type: "SetPosition", FEN: "startpos"})
	if _, ok := msgs[0].(ErrorMessage); !ok {
		t.Fatalf("expected Error while thinking, got %T", msgs[0])
	}
}

func TestUnknownMessageTypeIsError(t *testing.T) {
	s := New(1)
	msgs := s.Handle(ClientMessage{Type: "Bogus"})
	if _, ok := msgs[0].(ErrorMessage); !ok {
		t.Fatalf("expected Error, got %T", msgs[0])
	}
}
