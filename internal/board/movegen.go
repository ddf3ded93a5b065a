package board

// Undo carries exactly what Pop needs to restore a position after Push,
// rather than a full copy of board state. NNUE accumulators are snapshotted
// in full here because a king move forces a full accumulator rebuild for
// the mover's own perspective, which is cheaper to snapshot-and-restore
// than to invert incrementally.
type Undo struct {
	Move           Move
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	Checkers       Bitboard
	Captured       Piece
	CapturedSquare Square
	AccWhite       Accumulator
	AccBlack       Accumulator
}

func isSlider(pt PieceType) bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

// GenerateLegalMoves produces every fully legal move for the side to move,
// using checkers and pins to restrict pseudo-legal candidates directly
// rather than generating then simulating make/unmake.
func (b *Board) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	b.generateMoves(ml, false)
	return ml
}

// GenerateCaptures produces every legal capture and promotion, for use by
// quiescence search.
func (b *Board) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	b.generateMoves(ml, true)
	return ml
}

func (b *Board) generateMoves(ml *MoveList, capturesOnly bool) {
	us := b.SideToMove
	them := us.Other()
	ksq := b.KingSquare[us]
	checkers := b.Checkers
	numCheckers := checkers.PopCount()

	if numCheckers >= 2 {
		b.generateKingMoves(ml, us, them, ksq, capturesOnly)
		return
	}

	checkMask := Universe
	if numCheckers == 1 {
		checkerSq := checkers.LSB()
		checkMask = checkers
		if isSlider(b.PieceAt(checkerSq).Type()) {
			checkMask |= Between(ksq, checkerSq)
		}
	}

	pinned, _ := b.pinnedAndPinners()

	b.generatePawnMoves(ml, us, ksq, checkMask, pinned, capturesOnly)
	b.generateKnightMoves(ml, us, ksq, checkMask, pinned, capturesOnly)
	b.generateSliderMoves(ml, us, Bishop, ksq, checkMask, pinned, capturesOnly)
	b.generateSliderMoves(ml, us, Rook, ksq, checkMask, pinned, capturesOnly)
	b.generateSliderMoves(ml, us, Queen, ksq, checkMask, pinned, capturesOnly)
	b.generateKingMoves(ml, us, them, ksq, capturesOnly)

	if numCheckers == 0 && !capturesOnly {
		b.generateCastlingMoves(ml, us)
	}
}

func (b *Board) generatePawnMoves(ml *MoveList, us Color, ksq Square, checkMask, pinned Bitboard, capturesOnly bool) {
	them := us.Other()
	pawns := b.PieceBB(us, Pawn)
	enemies := b.Occupied[them]
	occupied := b.AllOccupied
	empty := ^occupied

	var pushDir int
	var promoRankIdx int
	if us == White {
		pushDir = 8
		promoRankIdx = 7
	} else {
		pushDir = -8
		promoRankIdx = 0
	}

	legalMask := func(from, to Square) bool {
		m := checkMask
		if pinned.IsSet(from) {
			m &= Line(ksq, from)
		}
		return m.IsSet(to)
	}

	emitQuiet := func(from, to Square) {
		if !legalMask(from, to) {
			return
		}
		if to.Rank() == promoRankIdx {
			ml.Add(NewPromotion(from, to, Queen))
			ml.Add(NewPromotion(from, to, Rook))
			ml.Add(NewPromotion(from, to, Bishop))
			ml.Add(NewPromotion(from, to, Knight))
			return
		}
		if !capturesOnly {
			ml.Add(NewMove(from, to))
		}
	}

	emitCapture := func(from, to Square) {
		if !legalMask(from, to) {
			return
		}
		if to.Rank() == promoRankIdx {
			ml.Add(NewPromotionCapture(from, to, Queen))
			ml.Add(NewPromotionCapture(from, to, Rook))
			ml.Add(NewPromotionCapture(from, to, Bishop))
			ml.Add(NewPromotionCapture(from, to, Knight))
			return
		}
		ml.Add(NewCapture(from, to))
	}

	var push1, push2, attackL, attackR Bitboard
	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
	}

	for push1 != 0 {
		to := push1.PopLSB()
		from := Square(int(to) - pushDir)
		emitQuiet(from, to)
	}
	for push2 != 0 {
		to := push2.PopLSB()
		from := Square(int(to) - 2*pushDir)
		if legalMask(from, to) && !capturesOnly {
			ml.Add(NewDoublePush(from, to))
		}
	}
	for attackL != 0 {
		to := attackL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		emitCapture(from, to)
	}
	for attackR != 0 {
		to := attackR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		emitCapture(from, to)
	}

	if b.EnPassant != NoSquare {
		epBB := SquareBB(b.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			from := epAttackers.PopLSB()
			to := b.EnPassant
			capSq := b.epCapturedSquare(to)
			if !legalMask(from, to) && !checkMask.IsSet(capSq) {
				continue
			}
			if b.isEnPassantLegal(from, to) {
				ml.Add(NewEnPassant(from, to))
			}
		}
	}
}

func (b *Board) epCapturedSquare(to Square) Square {
	if b.SideToMove == White {
		return to - 8
	}
	return to + 8
}

// isEnPassantLegal simulates the capture on a scratch occupancy bitboard to
// detect the rare case where removing both pawns exposes the king to a
// rook or queen along the rank.
func (b *Board) isEnPassantLegal(from, to Square) bool {
	us := b.SideToMove
	them := us.Other()
	capturedSq := b.epCapturedSquare(to)

	occ := b.AllOccupied
	occ &^= SquareBB(from)
	occ &^= SquareBB(capturedSq)
	occ |= SquareBB(to)

	ksq := b.KingSquare[us]
	attackers := (RookAttacks(ksq, occ) & (b.PieceBB(them, Rook) | b.PieceBB(them, Queen))) |
		(BishopAttacks(ksq, occ) & (b.PieceBB(them, Bishop) | b.PieceBB(them, Queen)))
	return attackers == 0
}

func (b *Board) generateKnightMoves(ml *MoveList, us Color, ksq Square, checkMask, pinned Bitboard, capturesOnly bool) {
	enemies := b.Occupied[us.Other()]
	knights := b.PieceBB(us, Knight)
	for knights != 0 {
		from := knights.PopLSB()
		if pinned.IsSet(from) {
			continue // a pinned knight never has a legal move
		}
		targets := KnightAttacks(from) &^ b.Occupied[us] & checkMask
		if capturesOnly {
			targets &= enemies
		}
		for targets != 0 {
			to := targets.PopLSB()
			if enemies.IsSet(to) {
				ml.Add(NewCapture(from, to))
			} else {
				ml.Add(NewMove(from, to))
			}
		}
	}
}

func (b *Board) generateSliderMoves(ml *MoveList, us Color, pt PieceType, ksq Square, checkMask, pinned Bitboard, capturesOnly bool) {
	pieces := b.PieceBB(us, pt)
	occupied := b.AllOccupied
	enemies := b.Occupied[us.Other()]

	for pieces != 0 {
		from := pieces.PopLSB()

		var attacks Bitboard
		switch pt {
		case Bishop:
			attacks = BishopAttacks(from, occupied)
		case Rook:
			attacks = RookAttacks(from, occupied)
		default:
			attacks = QueenAttacks(from, occupied)
		}
		attacks &^= b.Occupied[us]
		attacks &= checkMask

		if pinned.IsSet(from) {
			attacks &= Line(ksq, from)
		}
		if capturesOnly {
			attacks &= enemies
		}

		for attacks != 0 {
			to := attacks.PopLSB()
			if enemies.IsSet(to) {
				ml.Add(NewCapture(from, to))
			} else {
				ml.Add(NewMove(from, to))
			}
		}
	}
}

func (b *Board) generateKingMoves(ml *MoveList, us, them Color, ksq Square, capturesOnly bool) {
	enemies := b.Occupied[them]
	attacks := KingAttacks(ksq) &^ b.Occupied[us]
	if capturesOnly {
		attacks &= enemies
	}
	for attacks != 0 {
		to := attacks.PopLSB()
		if b.attacksIgnoringKing(to, them, ksq) {
			continue
		}
		if enemies.IsSet(to) {
			ml.Add(NewCapture(ksq, to))
		} else {
			ml.Add(NewMove(ksq, to))
		}
	}
}

func (b *Board) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()

	if us == White {
		if b.CastlingRights&WhiteKingSideCastle != 0 {
			if b.AllOccupied&(SquareBB(F1)|SquareBB(G1)) == 0 {
				if !b.IsSquareAttacked(E1, them) && !b.IsSquareAttacked(F1, them) && !b.IsSquareAttacked(G1, them) {
					ml.Add(NewCastleKing(E1, b.CastleRookSquare(White, true)))
				}
			}
		}
		if b.CastlingRights&WhiteQueenSideCastle != 0 {
			if b.AllOccupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 {
				if !b.IsSquareAttacked(E1, them) && !b.IsSquareAttacked(D1, them) && !b.IsSquareAttacked(C1, them) {
					ml.Add(NewCastleQueen(E1, b.CastleRookSquare(White, false)))
				}
			}
		}
	} else {
		if b.CastlingRights&BlackKingSideCastle != 0 {
			if b.AllOccupied&(SquareBB(F8)|SquareBB(G8)) == 0 {
				if !b.IsSquareAttacked(E8, them) && !b.IsSquareAttacked(F8, them) && !b.IsSquareAttacked(G8, them) {
					ml.Add(NewCastleKing(E8, b.CastleRookSquare(Black, true)))
				}
			}
		}
		if b.CastlingRights&BlackQueenSideCastle != 0 {
			if b.AllOccupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 {
				if !b.IsSquareAttacked(E8, them) && !b.IsSquareAttacked(D8, them) && !b.IsSquareAttacked(C8, them) {
					ml.Add(NewCastleQueen(E8, b.CastleRookSquare(Black, false)))
				}
			}
		}
	}
}

// accumulatorOf returns the accumulator slot for perspective c.
func (b *Board) accumulatorOf(c Color) *Accumulator {
	if c == White {
		return &b.AccWhite
	}
	return &b.AccBlack
}

// nnueUpdate applies an add or remove feature update to the requested
// perspectives, a no-op if no NNUE hook is wired up.
func (b *Board) nnueUpdate(sides []Color, add bool, p Piece, sq Square) {
	if b.NNUE == nil {
		return
	}
	for _, side := range sides {
		acc := b.accumulatorOf(side)
		if add {
			b.NNUE.AddFeature(acc, side, b.KingSquare[side], p, sq)
		} else {
			b.NNUE.RemoveFeature(acc, side, b.KingSquare[side], p, sq)
		}
	}
}

// Push applies a move to the board and returns the Undo record needed to
// reverse it with Pop.
func (b *Board) Push(m Move) Undo {
	us := b.SideToMove
	them := us.Other()
	from := m.From()
	piece := b.PieceAt(from)
	pt := piece.Type()

	var to Square
	if m.IsCastling() {
		to = kingCastleDest(from, m.IsCastleKing())
	} else {
		to = m.To()
	}

	undo := Undo{
		Move:           m,
		CastlingRights: b.CastlingRights,
		EnPassant:      b.EnPassant,
		HalfMoveClock:  b.HalfMoveClock,
		Hash:           b.Hash,
		Checkers:       b.Checkers,
		Captured:       NoPiece,
		CapturedSquare: NoSquare,
		AccWhite:       b.AccWhite,
		AccBlack:       b.AccBlack,
	}

	kingMoved := pt == King
	sides := []Color{White, Black}
	if kingMoved {
		sides = []Color{them}
	}

	b.Hash ^= ZobristSideToMove()
	b.Hash ^= ZobristCastling(b.CastlingRights)
	if b.EnPassant != NoSquare {
		b.Hash ^= ZobristEnPassant(b.EnPassant.File())
	}
	b.EnPassant = NoSquare

	if m.IsEnPassant() {
		capturedSq := b.epCapturedSquare(to)
		captured := b.removePiece(capturedSq)
		undo.Captured = captured
		undo.CapturedSquare = capturedSq
		b.Hash ^= ZobristPiece(captured, capturedSq)
		b.nnueUpdate(sides, false, captured, capturedSq)
	} else if !m.IsCastling() {
		if captured := b.PieceAt(to); !captured.IsNone() {
			b.removePiece(to)
			undo.Captured = captured
			undo.CapturedSquare = to
			b.Hash ^= ZobristPiece(captured, to)
			b.nnueUpdate(sides, false, captured, to)
		}
	}

	if m.IsCastling() {
		rookFrom := m.To()
		var rookTo Square
		if m.IsCastleKing() {
			rookTo = NewSquare(5, from.Rank())
		} else {
			rookTo = NewSquare(3, from.Rank())
		}
		rookPiece := NewPiece(Rook, us)

		b.movePiece(from, to)
		b.Hash ^= ZobristPiece(piece, from)
		b.Hash ^= ZobristPiece(piece, to)
		b.nnueUpdate(sides, false, piece, from)
		b.nnueUpdate(sides, true, piece, to)

		b.movePiece(rookFrom, rookTo)
		b.Hash ^= ZobristPiece(rookPiece, rookFrom)
		b.Hash ^= ZobristPiece(rookPiece, rookTo)
		b.nnueUpdate(sides, false, rookPiece, rookFrom)
		b.nnueUpdate(sides, true, rookPiece, rookTo)
	} else {
		b.movePiece(from, to)
		b.Hash ^= ZobristPiece(piece, from)
		b.Hash ^= ZobristPiece(piece, to)
		b.nnueUpdate(sides, false, piece, from)
		b.nnueUpdate(sides, true, piece, to)
	}

	if m.IsPromotion() {
		promoPt := m.Promotion()
		promoPiece := NewPiece(promoPt, us)
		pawnPiece := NewPiece(Pawn, us)

		b.Pieces[us][typeIdx(Pawn)] &^= SquareBB(to)
		b.Pieces[us][typeIdx(promoPt)] |= SquareBB(to)
		b.Hash ^= ZobristPiece(pawnPiece, to)
		b.Hash ^= ZobristPiece(promoPiece, to)
		b.nnueUpdate(sides, false, pawnPiece, to)
		b.nnueUpdate(sides, true, promoPiece, to)
	}

	if pt == King {
		if us == White {
			b.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			b.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if from == A1 || to == A1 {
		b.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		b.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		b.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		b.CastlingRights &^= BlackKingSideCastle
	}
	b.Hash ^= ZobristCastling(b.CastlingRights)

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		epSquare := Square((int(from) + int(to)) / 2)
		b.EnPassant = epSquare
		b.Hash ^= ZobristEnPassant(epSquare.File())
	}

	if pt == Pawn || !undo.Captured.IsNone() {
		b.HalfMoveClock = 0
	} else {
		b.HalfMoveClock++
	}

	if us == Black {
		b.FullMoveNumber++
	}

	b.SideToMove = them
	b.UpdateCheckers()

	if kingMoved && b.NNUE != nil {
		*b.accumulatorOf(us) = b.NNUE.Refresh(b, us)
	}

	return undo
}

// Pop reverses a move previously applied with Push.
func (b *Board) Pop(undo Undo) {
	m := undo.Move
	them := b.SideToMove
	us := them.Other()
	from := m.From()

	var to Square
	if m.IsCastling() {
		to = kingCastleDest(from, m.IsCastleKing())
	} else {
		to = m.To()
	}

	b.CastlingRights = undo.CastlingRights
	b.EnPassant = undo.EnPassant
	b.HalfMoveClock = undo.HalfMoveClock
	b.Hash = undo.Hash
	b.Checkers = undo.Checkers
	b.AccWhite = undo.AccWhite
	b.AccBlack = undo.AccBlack
	b.SideToMove = us

	if us == Black {
		b.FullMoveNumber--
	}

	if m.IsPromotion() {
		promoPt := m.Promotion()
		b.Pieces[us][typeIdx(promoPt)] &^= SquareBB(to)
		b.Pieces[us][typeIdx(Pawn)] |= SquareBB(to)
	}

	b.movePiece(to, from)

	if m.IsCastling() {
		rookFrom := m.To()
		var rookTo Square
		if m.IsCastleKing() {
			rookTo = NewSquare(5, from.Rank())
		} else {
			rookTo = NewSquare(3, from.Rank())
		}
		b.movePiece(rookTo, rookFrom)
	}

	if !undo.Captured.IsNone() {
		if m.IsEnPassant() {
			b.setPiece(undo.Captured, undo.CapturedSquare)
		} else {
			b.setPiece(undo.Captured, to)
		}
	}
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	return b.GenerateLegalMoves().Len() > 0
}

// IsCheckmate returns true if the position is checkmate.
func (b *Board) IsCheckmate() bool {
	return b.InCheck() && !b.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (b *Board) IsStalemate() bool {
	return !b.InCheck() && !b.HasLegalMoves()
}

// IsDraw returns true if the position is drawn by stalemate, the 50-move
// rule, or insufficient material. Repetition is not detected, since it
// requires history beyond a single board.
func (b *Board) IsDraw() bool {
	if b.IsStalemate() {
		return true
	}
	if b.HalfMoveClock >= 100 {
		return true
	}
	return b.IsInsufficientMaterial()
}

// IsInsufficientMaterial returns true if neither side has enough material
// to deliver checkmate.
func (b *Board) IsInsufficientMaterial() bool {
	if b.PieceBB(White, Pawn)|b.PieceBB(Black, Pawn) != 0 ||
		b.PieceBB(White, Rook)|b.PieceBB(Black, Rook) != 0 ||
		b.PieceBB(White, Queen)|b.PieceBB(Black, Queen) != 0 {
		return false
	}

	wMinor := b.PieceBB(White, Knight).PopCount() + b.PieceBB(White, Bishop).PopCount()
	bMinor := b.PieceBB(Black, Knight).PopCount() + b.PieceBB(Black, Bishop).PopCount()

	if wMinor+bMinor == 0 {
		return true
	}
	if wMinor <= 1 && bMinor == 0 {
		return true
	}
	if bMinor <= 1 && wMinor == 0 {
		return true
	}
	return false
}
