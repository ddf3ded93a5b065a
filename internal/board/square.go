package board

import "fmt"

// Square is a board square numbered 0-63 in little-endian rank-file order
// (a1=0, h1=7, a8=56, h8=63), matching Bitboard's bit numbering.
type Square uint8

// NoSquare is the sentinel for "no such square" (en passant target unset,
// LSB()/PopLSB() on an empty Bitboard).
const NoSquare Square = 64

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// File returns the square's file, 0 (a) through 7 (h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the square's rank, 0 (rank 1) through 7 (rank 8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// NewSquare builds a Square from a 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// String renders sq in algebraic notation ("e4"), or "-" for NoSquare.
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// ParseSquare parses algebraic notation ("e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}
	return NewSquare(file, rank), nil
}
