package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: flag
//
// Castling moves are encoded as (king source, rook source) rather than
// (king source, king destination): From() is the king's square and To() is
// the square of the rook it castles with. UCI() translates this into the
// conventional two-square king move when printing.
type Move uint16

// Move flags, packed into bits 12-15.
const (
	FlagQuiet        uint16 = 0
	FlagDoublePush   uint16 = 1
	FlagCastleKing   uint16 = 2
	FlagCastleQueen  uint16 = 3
	FlagCapture      uint16 = 4
	FlagEnPassant    uint16 = 5
	flagPromoBase    uint16 = 8 // promoN=8 promoB=9 promoR=10 promoQ=11
	flagPromoCapture uint16 = 12
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

func encode(from, to Square, flag uint16) Move {
	return Move(from) | Move(to)<<6 | Move(flag)<<12
}

// NewMove creates a quiet move.
func NewMove(from, to Square) Move {
	return encode(from, to, FlagQuiet)
}

// NewDoublePush creates a two-square pawn push.
func NewDoublePush(from, to Square) Move {
	return encode(from, to, FlagDoublePush)
}

// NewCapture creates a normal capture move.
func NewCapture(from, to Square) Move {
	return encode(from, to, FlagCapture)
}

// promoFlagOffset maps a promotion piece type to its 0..3 slot.
func promoFlagOffset(promo PieceType) uint16 {
	switch promo {
	case Knight:
		return 0
	case Bishop:
		return 1
	case Rook:
		return 2
	case Queen:
		return 3
	default:
		return 3
	}
}

func promoFromOffset(off uint16) PieceType {
	switch off {
	case 0:
		return Knight
	case 1:
		return Bishop
	case 2:
		return Rook
	default:
		return Queen
	}
}

// NewPromotion creates a non-capturing promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return encode(from, to, flagPromoBase+promoFlagOffset(promo))
}

// NewPromotionCapture creates a capturing promotion move.
func NewPromotionCapture(from, to Square, promo PieceType) Move {
	return encode(from, to, flagPromoCapture+promoFlagOffset(promo))
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return encode(from, to, FlagEnPassant)
}

// NewCastleKing creates a kingside castling move. from is the king's
// square, rookFrom is the square of the rook it castles with.
func NewCastleKing(from, rookFrom Square) Move {
	return encode(from, rookFrom, FlagCastleKing)
}

// NewCastleQueen creates a queenside castling move. from is the king's
// square, rookFrom is the square of the rook it castles with.
func NewCastleQueen(from, rookFrom Square) Move {
	return encode(from, rookFrom, FlagCastleQueen)
}

// From returns the origin square (the king's square for castling moves).
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square (the rook's source square for
// castling moves).
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Flag returns the move's 4-bit flag.
func (m Move) Flag() uint16 {
	return uint16(m>>12) & 0xF
}

// IsDoublePush returns true if this is a two-square pawn push.
func (m Move) IsDoublePush() bool {
	return m.Flag() == FlagDoublePush
}

// IsCastleKing returns true if this is a kingside castle.
func (m Move) IsCastleKing() bool {
	return m.Flag() == FlagCastleKing
}

// IsCastleQueen returns true if this is a queenside castle.
func (m Move) IsCastleQueen() bool {
	return m.Flag() == FlagCastleQueen
}

// IsCastling returns true if this move castles in either direction.
func (m Move) IsCastling() bool {
	return m.IsCastleKing() || m.IsCastleQueen()
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsPromotion returns true if this move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Flag() >= flagPromoBase
}

// Promotion returns the promotion piece type. Only valid if IsPromotion().
func (m Move) Promotion() PieceType {
	f := m.Flag()
	if f >= flagPromoCapture {
		return promoFromOffset(f - flagPromoCapture)
	}
	return promoFromOffset(f - flagPromoBase)
}

// IsCapture returns true if this move removes an enemy piece from the
// board, including en passant.
func (m Move) IsCapture() bool {
	f := m.Flag()
	return f == FlagCapture || f == FlagEnPassant || f >= flagPromoCapture
}

// IsQuiet returns true if this move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// kingCastleDest returns the king's destination square for a castling move,
// derived from the king's source square and castling direction.
func kingCastleDest(kingFrom Square, kingside bool) Square {
	rank := kingFrom.Rank()
	if kingside {
		return NewSquare(6, rank)
	}
	return NewSquare(2, rank)
}

// UCI returns the UCI wire format of the move (e.g. "e2e4", "e7e8q"). For
// castling moves this translates the internal (king, rook) encoding into
// the conventional two-square king move UCI expects.
func (m Move) UCI() string {
	if m == NoMove {
		return "0000"
	}

	if m.IsCastling() {
		dest := kingCastleDest(m.From(), m.IsCastleKing())
		return m.From().String() + dest.String()
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		promoChars := []byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[promoFlagOffset(m.Promotion())])
	}
	return s
}

// String is an alias for UCI, used for debug printing.
func (m Move) String() string {
	return m.UCI()
}

// ParseUCIMove parses a UCI move string against the given position,
// reconstructing the internal castling and en passant encoding.
func ParseUCIMove(s string, pos *Board) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece.IsNone() {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}

	var promo PieceType
	hasPromo := false
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		hasPromo = true
	}

	pt := piece.Type()
	captured := pos.PieceAt(to)

	if pt == King && abs(int(to)-int(from)) == 2 {
		kingside := to.File() > from.File()
		rookFrom := pos.CastleRookSquare(pos.SideToMove, kingside)
		if kingside {
			return NewCastleKing(from, rookFrom), nil
		}
		return NewCastleQueen(from, rookFrom), nil
	}

	if pt == Pawn && to == pos.EnPassant && to.File() != from.File() {
		return NewEnPassant(from, to), nil
	}

	if hasPromo {
		if !captured.IsNone() {
			return NewPromotionCapture(from, to, promo), nil
		}
		return NewPromotion(from, to, promo), nil
	}

	if pt == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		return NewDoublePush(from, to), nil
	}

	if !captured.IsNone() {
		return NewCapture(from, to), nil
	}

	return NewMove(from, to), nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
