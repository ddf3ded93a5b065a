package board

// Zobrist hash keys for position hashing, generated with a seeded PRNG so
// keys are reproducible across runs and across platforms.
var (
	zPieceSq [12][64]uint64 // indexed by Piece.Index()
	zEPFile  [8]uint64
	zCastle  [16]uint64
	zSide    uint64
)

func init() {
	initZobrist()
}

// prng is an xorshift64* generator used only to seed the Zobrist tables.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for idx := 0; idx < 12; idx++ {
		for sq := A1; sq <= H8; sq++ {
			zPieceSq[idx][sq] = rng.next()
		}
	}

	for file := 0; file < 8; file++ {
		zEPFile[file] = rng.next()
	}

	for i := 0; i < 16; i++ {
		zCastle[i] = rng.next()
	}

	zSide = rng.next()
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(p Piece, sq Square) uint64 {
	return zPieceSq[p.Index()][sq]
}

// ZobristEnPassant returns the Zobrist key for an en passant file.
func ZobristEnPassant(file int) uint64 {
	return zEPFile[file]
}

// ZobristCastling returns the Zobrist key for a castling rights combination.
func ZobristCastling(cr CastlingRights) uint64 {
	return zCastle[cr]
}

// ZobristSideToMove returns the Zobrist key XORed in when it is black's turn.
func ZobristSideToMove() uint64 {
	return zSide
}
