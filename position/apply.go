package position

import (
	"github.com/corvidchess/corvid/move"
	"github.com/corvidchess/corvid/piece"
)

// castleRookMove returns the rook's source and destination squares for a
// castling move whose king lands on kingDst.
func castleRookMove(kingDst piece.Square) (src, dst piece.Square) {
	rank := kingDst.Rank()
	if kingDst.File() == 6 { // kingside: king g-file, rook h -> f
		return piece.RankFile(rank, 7), piece.RankFile(rank, 5)
	}
	// queenside: king c-file, rook a -> d
	return piece.RankFile(rank, 0), piece.RankFile(rank, 3)
}

// Apply returns the position that results from playing m, a move that
// must be legal in pos. pos itself is never modified.
func (pos *Position) Apply(m move.Move) Position {
	next := *pos

	src, dst, flags := m.Src(), m.Dst(), m.Flags()
	pi := pos.Get(src)
	us := pos.SideToMove

	next.setCastling(pos.Castling &^ lostCastleRights[src] &^ lostCastleRights[dst])

	irreversible := pi.Type() == piece.Pawn || flags.IsCapture()
	if irreversible {
		next.HalfMoveClock = 0
	} else {
		next.HalfMoveClock = pos.HalfMoveClock + 1
	}
	if us == piece.Black {
		next.FullMoveNumber = pos.FullMoveNumber + 1
	}

	switch {
	case flags == move.EnPassant:
		capSq := piece.RankFile(src.Rank(), dst.File())
		next.Remove(capSq, next.Get(capSq))
		next.Remove(src, pi)
		next.Put(dst, pi)
	case flags.IsPromotion():
		if cap := next.Get(dst); cap != piece.NoPiece {
			next.Remove(dst, cap)
		}
		next.Remove(src, pi)
		next.Put(dst, piece.New(us, flags.PromotedType()))
	case m.IsCastle():
		next.Remove(src, pi)
		next.Put(dst, pi)
		rookSrc, rookDst := castleRookMove(dst)
		rook := next.Get(rookSrc)
		next.Remove(rookSrc, rook)
		next.Put(rookDst, rook)
	default:
		if cap := next.Get(dst); cap != piece.NoPiece {
			next.Remove(dst, cap)
		}
		next.Remove(src, pi)
		next.Put(dst, pi)
	}

	if pi.Type() == piece.Pawn && flags == move.DoublePawnPush {
		next.setEnPassantFile(uint8(dst.File()))
	} else {
		next.setEnPassantFile(piece.NoEnPassantFile)
	}

	next.setSideToMove(us.Opposite())
	next.RecomputeCheckersAndPins()
	return next
}

// Termination classifies why a game at pos (with no legal moves, or drawn
// by clock/repetition) has ended. It is not produced by Apply itself —
// Apply has no notion of "no legal moves exist"; callers combine it with
// movegen's output the way a search driver would.
type Termination uint8

const (
	// NotOver means the game has not ended for any reason this package
	// can determine on its own (draws that depend on move history, such
	// as threefold repetition, are the history package's concern).
	NotOver Termination = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	InsufficientMaterial
)

// TerminationAt classifies pos given whether the side to move has any
// legal move, per spec: checkmate/stalemate precede the clock-based and
// material-based draws, matching how a search driver would check them.
func (pos *Position) TerminationAt(hasLegalMove bool) Termination {
	if !hasLegalMove {
		if pos.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if pos.HalfMoveClock >= 100 {
		return FiftyMoveRule
	}
	if pos.hasInsufficientMaterial() {
		return InsufficientMaterial
	}
	return NotOver
}

// hasInsufficientMaterial reports whether neither side has enough force
// left to deliver checkmate: king-only vs king-only, king+minor vs
// king-only, or king+bishop vs king+bishop with same-colored bishops.
func (pos *Position) hasInsufficientMaterial() bool {
	if pos.ByType[piece.Pawn] != 0 || pos.ByType[piece.Rook] != 0 || pos.ByType[piece.Queen] != 0 {
		return false
	}
	white := pos.minorCount(piece.White)
	black := pos.minorCount(piece.Black)
	if white+black <= 1 {
		return true
	}
	if white == 1 && black == 1 {
		wb := pos.ByPiece(piece.White, piece.Bishop)
		bb := pos.ByPiece(piece.Black, piece.Bishop)
		if wb != 0 && bb != 0 {
			return squareColor(wb.AsSquare()) == squareColor(bb.AsSquare())
		}
	}
	return false
}

func (pos *Position) minorCount(side piece.Side) int {
	return (pos.ByPiece(side, piece.Knight) | pos.ByPiece(side, piece.Bishop)).Count()
}

func squareColor(sq piece.Square) int {
	return (sq.Rank() + sq.File()) & 1
}
