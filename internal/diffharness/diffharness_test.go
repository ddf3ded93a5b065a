package diffharness

import "testing"

func TestEngineReferenceAgreesWithItself(t *testing.T) {
	corpus := BuildCorpus(50, 7)
	sum, err := Run(corpus, EngineReference{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Checked != len(corpus) {
		t.Errorf("checked = %d, want %d", sum.Checked, len(corpus))
	}
	if sum.Passed != sum.Checked {
		t.Errorf("passed %d/%d, mismatches: %+v", sum.Passed, sum.Checked, sum.Mismatches)
	}
}

func TestRandomWalkFENsAreParseable(t *testing.T) {
	fens := RandomWalkFENs(20, 30, 42)
	if len(fens) != 20 {
		t.Fatalf("got %d fens, want 20", len(fens))
	}
	for _, fen := range fens {
		if _, err := (EngineReference{}).LegalMoves(fen); err != nil {
			t.Errorf("fen %q not parseable: %v", fen, err)
		}
	}
}

func TestEdgeCaseFENsIncludedInCorpus(t *testing.T) {
	corpus := BuildCorpus(0, 1)
	if len(corpus) != len(EdgeCaseFENs) {
		t.Fatalf("expected only edge cases with n=0, got %d", len(corpus))
	}
}
