package diffharness

import "github.com/danielpang35/rustychess/internal/board"

// EdgeCaseFENs are the scenario B-E fixtures named explicitly in §8's
// end-to-end scenarios, prepended to every generated corpus so the
// harness always exercises castling-through-check, en passant pins,
// promotion-set sizing, and checkmate detection.
var EdgeCaseFENs = []string{
	"r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1", // scenario B: castling legality with attacked f1
	"8/8/8/K2Pp2r/8/8/8/8 w - e6 0 1",        // scenario C: EP pin
	"4k3/P7/8/8/8/8/8/4K3 w - - 0 1",         // scenario D: promotion set size
	"7k/6Q1/6K1/8/8/8/8/8 b - - 0 1",         // scenario E: checkmate detection
}

// rngState is a seeded xorshift64* generator, matching the style
// internal/board/zobrist.go already uses for deterministic pseudo-random
// sequences, kept separate so the two PRNGs can't be confused with each
// other's state.
type rngState uint64

func (r *rngState) next() uint64 {
	x := uint64(*r)
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	*r = rngState(x)
	return x * 2685821657736338717
}

// RandomWalkFENs generates n positions reached by random legal walks from
// the starting position, for the ≥1000-position corpus §8.7 requires.
// walkLength bounds how many plies each walk plays before its resulting
// position is recorded.
func RandomWalkFENs(n, walkLength int, seed uint64) []string { //nolint:revive // explicit params read clearly at call sites
	rng := rngState(seed)
	fens := make([]string, 0, n)

	for len(fens) < n {
		b := board.NewBoard()
		for ply := 0; ply < walkLength; ply++ {
			ml := b.GenerateLegalMoves()
			if ml.Len() == 0 {
				break
			}
			idx := int(rng.next() % uint64(ml.Len()))
			b.Push(ml.Get(idx))
		}
		fens = append(fens, b.ToFEN())
	}

	return fens
}

// BuildCorpus assembles the fixed edge-case fixtures plus n random-walk
// positions into the corpus Run consumes.
func BuildCorpus(n int, seed uint64) []string {
	corpus := append([]string(nil), EdgeCaseFENs...)
	return append(corpus, RandomWalkFENs(n, 40, seed)...)
}
