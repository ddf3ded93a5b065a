package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Board.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	b := &Board{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	b.KingSquare[White] = NoSquare
	b.KingSquare[Black] = NoSquare

	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		b.SideToMove = White
	case "b":
		b.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	if err := parseCastlingRights(b, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		b.EnPassant = sq
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("invalid half-move clock: %s", parts[4])
		}
		b.HalfMoveClock = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, fmt.Errorf("invalid full-move number: %s", parts[5])
		}
		b.FullMoveNumber = fmn
	}

	b.updateOccupied()
	b.findKings()
	b.Hash = b.ComputeHash()
	b.UpdateCheckers()

	return b, nil
}

func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
			} else {
				piece := PieceFromChar(byte(c))
				if piece.IsNone() {
					return fmt.Errorf("invalid piece character: %c", c)
				}
				sq := NewSquare(file, rank)
				b.setPiece(piece, sq)
				file++
			}
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

func parseCastlingRights(b *Board, castling string) error {
	if castling == "-" {
		b.CastlingRights = NoCastling
		return nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			b.CastlingRights |= WhiteKingSideCastle
		case 'Q':
			b.CastlingRights |= WhiteQueenSideCastle
		case 'k':
			b.CastlingRights |= BlackKingSideCastle
		case 'q':
			b.CastlingRights |= BlackQueenSideCastle
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}
	}

	return nil
}

// ToFEN returns the FEN representation of the board.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := b.PieceAt(sq)
			if piece.IsNone() {
				empty++
			} else {
				if empty > 0 {
					sb.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				sb.WriteString(piece.String())
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.CastlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(b.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullMoveNumber))

	return sb.String()
}

// ComputeHash computes the Zobrist hash for the board from scratch.
func (b *Board) ComputeHash() uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := b.Pieces[c][typeIdx(pt)]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= ZobristPiece(NewPiece(pt, c), sq)
			}
		}
	}

	if b.SideToMove == Black {
		hash ^= ZobristSideToMove()
	}

	hash ^= ZobristCastling(b.CastlingRights)

	if b.EnPassant != NoSquare {
		hash ^= ZobristEnPassant(b.EnPassant.File())
	}

	return hash
}
