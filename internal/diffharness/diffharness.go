// Package diffharness implements the differential move-generation test
// harness described by §6.5 and supplemented from the original Rust
// source's src/diff/{corpus,harness,report}.rs: a corpus of positions, a
// pluggable reference move-generator, and a pass/fail report comparing the
// engine's generated UCI move set against the reference's.
package diffharness

import (
	"fmt"
	"sort"

	"github.com/danielpang35/rustychess/internal/board"
)

// Reference produces the legal UCI move set for a FEN, the way §6.5
// describes querying an external engine via "position fen ... go perft 1".
// No live external engine is available in this environment; EngineReference
// (below) wires the repository's own perft-validated generator as a self-differential
// default, with this interface as the seam for a real UCI engine.
type Reference interface {
	LegalMoves(fen string) ([]string, error)
}

// EngineReference implements Reference using this repository's own move
// generator.
type EngineReference struct{}

// LegalMoves implements Reference.
func (EngineReference) LegalMoves(fen string) ([]string, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen: %w", err)
	}
	ml := b.GenerateLegalMoves()
	moves := make([]string, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		moves[i] = ml.Get(i).UCI()
	}
	sort.Strings(moves)
	return moves, nil
}

// Mismatch records one position where the engine's move set diverged from
// the reference's.
type Mismatch struct {
	FEN            string
	EngineMoves    []string
	ReferenceMoves []string
}

// Summary mirrors report.rs's pass/fail/mismatch counters.
type Summary struct {
	Checked    int
	Passed     int
	Mismatches []Mismatch
}

// Run checks every FEN in corpus against reference, using the engine's own
// generator as the candidate under test.
func Run(corpus []string, reference Reference) (Summary, error) {
	var sum Summary
	for _, fen := range corpus {
		sum.Checked++

		got, err := EngineReference{}.LegalMoves(fen)
		if err != nil {
			return sum, fmt.Errorf("engine generate %q: %w", fen, err)
		}
		want, err := reference.LegalMoves(fen)
		if err != nil {
			return sum, fmt.Errorf("reference generate %q: %w", fen, err)
		}

		if equalMoveSets(got, want) {
			sum.Passed++
			continue
		}
		sum.Mismatches = append(sum.Mismatches, Mismatch{FEN: fen, EngineMoves: got, ReferenceMoves: want})
	}
	return sum, nil
}

func equalMoveSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
