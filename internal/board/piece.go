package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece. Zero means no piece,
// matching the packed encoding used by Piece.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if int(pt) >= len(chars) {
		return ' '
	}
	return chars[pt]
}

// PieceValue gives the material value of each piece type in centipawns,
// indexed by PieceType (slot 0 unused).
var PieceValue = [7]int{0, 100, 320, 330, 500, 900, 20000}

// Piece packs a color and a piece type into a single byte: bit 3 holds the
// color (0 white, 1 black) and bits 0..2 hold the type (0 none, 1 pawn,
// 2 knight, 3 bishop, 4 rook, 5 queen, 6 king).
type Piece uint8

const (
	colorShift = 3
	typeMask   = 0x7
)

const (
	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteRook   Piece = Piece(Rook)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = Piece(Pawn) | Piece(Black)<<colorShift
	BlackKnight Piece = Piece(Knight) | Piece(Black)<<colorShift
	BlackBishop Piece = Piece(Bishop) | Piece(Black)<<colorShift
	BlackRook   Piece = Piece(Rook) | Piece(Black)<<colorShift
	BlackQueen  Piece = Piece(Queen) | Piece(Black)<<colorShift
	BlackKing   Piece = Piece(King) | Piece(Black)<<colorShift
	NoPiece     Piece = Piece(NoPieceType)
)

// NewPiece packs a PieceType and Color into a Piece.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<colorShift
}

// Type extracts the PieceType from the low 3 bits.
func (p Piece) Type() PieceType {
	return PieceType(p & typeMask)
}

// Color extracts the Color from bit 3. Undefined for NoPiece.
func (p Piece) Color() Color {
	return Color((p >> colorShift) & 1)
}

// IsNone reports whether p carries no piece type.
func (p Piece) IsNone() bool {
	return p.Type() == NoPieceType
}

// Index returns the 0..11 piece index used to address bitboard arrays and
// NNUE feature tables: white pieces 0..5 (pawn..king), black pieces 6..11.
func (p Piece) Index() int {
	return int(p.Color())*6 + int(p.Type()) - 1
}

// PieceFromIndex is the inverse of Index.
func PieceFromIndex(idx int) Piece {
	c := Color(idx / 6)
	pt := PieceType(idx%6 + 1)
	return NewPiece(pt, c)
}

// String returns the FEN character for the piece, uppercase for white and
// lowercase for black.
func (p Piece) String() string {
	if p.IsNone() {
		return " "
	}
	chars := "PNBRQKpnbrqk"
	return string(chars[p.Index()])
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
