// Package movegen generates fully legal moves from a position: no move it
// returns ever leaves the side to move's own king in check, so callers
// never need a separate legality filter.
//
// Generation is grounded on the reference engine's move_generator.hpp,
// widened from its three MoveGenType variants (its ALL_LEGAL, QUIESCENCE
// and NON_QUIESCENCE) to this package's Kind. Per-piece moves are produced
// by looping squares with Bitboard.Pop rather than the reference's bulk
// shift-the-whole-bitboard approach for pawns, trading a little speed for
// one uniform per-piece shape across every piece type (see DESIGN.md).
package movegen

import (
	"github.com/corvidchess/corvid/attacks"
	"github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/move"
	"github.com/corvidchess/corvid/piece"
	"github.com/corvidchess/corvid/position"
)

// Kind selects which subset of legal moves Generate produces.
type Kind int

const (
	// AllLegal generates every legal move.
	AllLegal Kind = iota
	// Quiescence generates captures and queen/knight promotions only
	// (including capture-promotions of every type), the "noisy" moves a
	// quiescence search would want to consider.
	Quiescence
	// NonQuiescence generates every legal move except captures and
	// queen/knight promotions, complementing Quiescence.
	NonQuiescence
)

// full stands in for "no check/pin restriction": ANDing a candidate
// destination set with it is a no-op.
const full = ^bitboard.Bitboard(0)

// Generate returns every move of kind kind legal in pos for the side to
// move. King moves come first, matching the order check detection in
// Generate itself relies on (a double check only leaves king moves).
func Generate(pos *position.Position, kind Kind) []move.Move {
	var moves []move.Move

	moves = genKingMoves(pos, kind, moves)

	if pos.Checkers.Count() >= 2 {
		return moves
	}

	if kind != Quiescence && pos.Checkers == 0 {
		moves = genCastleMoves(pos, moves)
	}
	moves = genPieceMoves(pos, kind, piece.Queen, moves)
	moves = genPieceMoves(pos, kind, piece.Bishop, moves)
	moves = genPieceMoves(pos, kind, piece.Knight, moves)
	moves = genPieceMoves(pos, kind, piece.Rook, moves)
	moves = genPawnMoves(pos, kind, moves)

	return moves
}

func restrict(kind Kind, targets, enemy bitboard.Bitboard) bitboard.Bitboard {
	switch kind {
	case Quiescence:
		return targets & enemy
	case NonQuiescence:
		return targets &^ enemy
	default:
		return targets
	}
}

func genKingMoves(pos *position.Position, kind Kind, moves []move.Move) []move.Move {
	us, them := pos.SideToMove, pos.SideToMove.Opposite()
	sq := pos.ByPiece(us, piece.King).AsSquare()
	friendly, enemy := pos.ByColor[us], pos.ByColor[them]
	occ := friendly | enemy

	targets := restrict(kind, attacks.King[sq]&^friendly, enemy)
	clearedOcc := occ.Clear(sq)

	for targets != 0 {
		dst := targets.Pop()
		if pos.AttackersTo(dst, them, clearedOcc) != 0 {
			continue
		}
		moves = append(moves, moveTo(sq, dst, enemy))
	}
	return moves
}

func genCastleMoves(pos *position.Position, moves []move.Move) []move.Move {
	us, them := pos.SideToMove, pos.SideToMove.Opposite()
	rank := us.KingHomeRank()
	kingSq := piece.RankFile(rank, 4)
	occ := pos.ByColor[piece.White] | pos.ByColor[piece.Black]

	if pos.Castling&piece.KingSide(us) != 0 {
		fSq, gSq := piece.RankFile(rank, 5), piece.RankFile(rank, 6)
		if !occ.Has(fSq) && !occ.Has(gSq) &&
			!pos.IsAttacked(kingSq, them) && !pos.IsAttacked(fSq, them) && !pos.IsAttacked(gSq, them) {
			moves = append(moves, move.NewCastle(kingSq, gSq))
		}
	}
	if pos.Castling&piece.QueenSide(us) != 0 {
		bSq, cSq, dSq := piece.RankFile(rank, 1), piece.RankFile(rank, 2), piece.RankFile(rank, 3)
		if !occ.Has(bSq) && !occ.Has(cSq) && !occ.Has(dSq) &&
			!pos.IsAttacked(kingSq, them) && !pos.IsAttacked(dSq, them) && !pos.IsAttacked(cSq, them) {
			moves = append(moves, move.NewCastle(kingSq, cSq))
		}
	}
	return moves
}

func genPieceMoves(pos *position.Position, kind Kind, pt piece.PieceType, moves []move.Move) []move.Move {
	us, them := pos.SideToMove, pos.SideToMove.Opposite()
	kingSq := pos.ByPiece(us, piece.King).AsSquare()
	friendly, enemy := pos.ByColor[us], pos.ByColor[them]
	occ := friendly | enemy

	blockMask := full
	if pos.Checkers != 0 {
		blockMask = attacks.Between[kingSq][pos.Checkers.AsSquare()]
	}

	pieces := pos.ByPiece(us, pt)
	for pieces != 0 {
		sq := pieces.Pop()

		var targets bitboard.Bitboard
		switch pt {
		case piece.Queen:
			targets = attacks.Queen(sq, occ)
		case piece.Bishop:
			targets = attacks.Bishop(sq, occ)
		case piece.Rook:
			targets = attacks.Rook(sq, occ)
		case piece.Knight:
			targets = attacks.Knight[sq]
		}
		targets = restrict(kind, targets&^friendly, enemy)
		targets &= blockMask
		if pos.Pinned.Has(sq) {
			targets &= attacks.Aligned[kingSq][sq]
		}

		for targets != 0 {
			dst := targets.Pop()
			moves = append(moves, moveTo(sq, dst, enemy))
		}
	}
	return moves
}

func moveTo(src, dst piece.Square, enemy bitboard.Bitboard) move.Move {
	if enemy.Has(dst) {
		return move.NewCapture(src, dst)
	}
	return move.NewQuiet(src, dst)
}

func genPawnMoves(pos *position.Position, kind Kind, moves []move.Move) []move.Move {
	us, them := pos.SideToMove, pos.SideToMove.Opposite()
	kingSq := pos.ByPiece(us, piece.King).AsSquare()
	friendly, enemy := pos.ByColor[us], pos.ByColor[them]
	occ := friendly | enemy

	blockMask := full
	if pos.Checkers != 0 {
		blockMask = attacks.Between[kingSq][pos.Checkers.AsSquare()]
	}

	dir := 1
	doublePushRank := 3
	backRank := 7
	if us == piece.Black {
		dir = -1
		doublePushRank = 4
		backRank = 0
	}

	pawns := pos.ByPiece(us, piece.Pawn)
	for p := pawns; p != 0; {
		sq := p.Pop()

		alignMask := full
		if pos.Pinned.Has(sq) {
			alignMask = attacks.Aligned[kingSq][sq]
		}
		legal := func(dst piece.Square) bool {
			return blockMask.Has(dst) && alignMask.Has(dst)
		}

		if kind != Quiescence {
			pushRank := sq.Rank() + dir
			pushSq := piece.RankFile(pushRank, sq.File())
			if !occ.Has(pushSq) {
				if pushRank == backRank {
					if legal(pushSq) {
						moves = addPromotions(moves, kind, sq, pushSq, false)
					}
				} else {
					if legal(pushSq) {
						moves = append(moves, move.NewQuiet(sq, pushSq))
					}
					dblRank := sq.Rank() + 2*dir
					if dblRank == doublePushRank {
						dblSq := piece.RankFile(dblRank, sq.File())
						if !occ.Has(dblSq) && legal(dblSq) {
							moves = append(moves, move.NewDoublePawnPush(sq, dblSq))
						}
					}
				}
			}
		}
		if kind == Quiescence {
			pushSq := piece.RankFile(sq.Rank()+dir, sq.File())
			if pushSq.Rank() == backRank && !occ.Has(pushSq) && legal(pushSq) {
				moves = addPromotions(moves, kind, sq, pushSq, false)
			}
		}

		if kind != NonQuiescence {
			for _, df := range [2]int{-1, 1} {
				f := sq.File() + df
				if f < 0 || f > 7 {
					continue
				}
				dst := piece.RankFile(sq.Rank()+dir, f)
				if !enemy.Has(dst) || !legal(dst) {
					continue
				}
				if dst.Rank() == backRank {
					moves = addCapturePromotions(moves, sq, dst)
				} else {
					moves = append(moves, move.NewCapture(sq, dst))
				}
			}
		}
	}

	if kind != NonQuiescence {
		moves = genEnPassant(pos, moves)
	}

	return moves
}

func addPromotions(moves []move.Move, kind Kind, src, dst piece.Square, capture bool) []move.Move {
	if kind != NonQuiescence {
		moves = append(moves, move.NewPromotion(src, dst, capture, piece.Queen))
		moves = append(moves, move.NewPromotion(src, dst, capture, piece.Knight))
	}
	if kind != Quiescence {
		moves = append(moves, move.NewPromotion(src, dst, capture, piece.Rook))
		moves = append(moves, move.NewPromotion(src, dst, capture, piece.Bishop))
	}
	return moves
}

// addCapturePromotions always adds all four promotion types: reached only
// when captures are being generated at all (kind != NonQuiescence), at
// which point a capture-promotion is noisy regardless of kind, matching
// the reference engine's unconditional four-way expansion for this case.
func addCapturePromotions(moves []move.Move, src, dst piece.Square) []move.Move {
	moves = append(moves, move.NewPromotion(src, dst, true, piece.Queen))
	moves = append(moves, move.NewPromotion(src, dst, true, piece.Knight))
	moves = append(moves, move.NewPromotion(src, dst, true, piece.Rook))
	moves = append(moves, move.NewPromotion(src, dst, true, piece.Bishop))
	return moves
}

// genEnPassant handles the en-passant capture, including the classic
// pinned-en-passant edge case: capturing removes both the moving and the
// captured pawn from the same rank, which can expose the king to a
// rook/queen along that rank even though neither pawn was individually
// pinned. The board is rebuilt with both pawns cleared and the capturing
// pawn's new square occupied, then rook/queen and bishop/queen attacks on
// the king are rechecked from scratch.
func genEnPassant(pos *position.Position, moves []move.Move) []move.Move {
	epSq, ok := pos.EnPassantSquare()
	if !ok {
		return moves
	}
	us, them := pos.SideToMove, pos.SideToMove.Opposite()
	kingSq := pos.ByPiece(us, piece.King).AsSquare()
	occ := pos.ByColor[piece.White] | pos.ByColor[piece.Black]

	dir := 1
	if us == piece.Black {
		dir = -1
	}
	capturedSq := piece.RankFile(epSq.Rank()-dir, epSq.File())
	pawnRank := capturedSq.Rank()

	if pos.Checkers != 0 && pos.Checkers.AsSquare() != capturedSq {
		return moves
	}

	for _, df := range [2]int{-1, 1} {
		f := epSq.File() + df
		if f < 0 || f > 7 {
			continue
		}
		sq := piece.RankFile(pawnRank, f)
		if pos.Get(sq) != piece.New(us, piece.Pawn) {
			continue
		}
		if pos.Pinned.Has(sq) && !attacks.Aligned[kingSq][sq].Has(epSq) {
			continue
		}

		cleared := (occ &^ bitboard.Of(sq) &^ bitboard.Of(capturedSq)) | bitboard.Of(epSq)
		diag := attacks.Bishop(kingSq, cleared) & (pos.ByPiece(them, piece.Bishop) | pos.ByPiece(them, piece.Queen))
		orth := attacks.Rook(kingSq, cleared) & (pos.ByPiece(them, piece.Rook) | pos.ByPiece(them, piece.Queen))
		if diag == 0 && orth == 0 {
			moves = append(moves, move.NewEnPassant(sq, epSq))
		}
	}
	return moves
}
