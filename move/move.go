// Package move implements the packed 16-bit move representation: bits
// 0-5 the source square, bits 6-11 the destination square, bits 12-15 a
// flag nibble identifying quiet moves, captures, castling, en-passant and
// the four promotion piece types (with and without capture).
//
// The encoding is grounded on the reference engine's move.hpp/move.cpp,
// the only example in the retrieved corpus using this exact bit layout.
package move

import (
	"fmt"

	"github.com/corvidchess/corvid/piece"
)

// Flags identifies the kind of a move, packed into the high nibble.
type Flags uint16

const (
	Quiet          Flags = 0
	DoublePawnPush Flags = 1
	KingsideCastle Flags = 2
	QueensideCastle Flags = 3
	Capture        Flags = 4
	EnPassant      Flags = 5

	RookPromotion   Flags = 8
	KnightPromotion Flags = 9
	BishopPromotion Flags = 10
	QueenPromotion  Flags = 11

	RookPromotionCapture   Flags = 12
	KnightPromotionCapture Flags = 13
	BishopPromotionCapture Flags = 14
	QueenPromotionCapture  Flags = 15
)

// IsPromotion reports whether f carries a promotion (bit 3 set).
func (f Flags) IsPromotion() bool { return f&8 != 0 }

// IsCapture reports whether f carries a capture, including en-passant and
// capture-promotions (bit 2 set, or the dedicated EnPassant flag).
func (f Flags) IsCapture() bool { return f&4 != 0 }

// PromotedType returns the piece type a promotion flag produces.
// Undefined if !f.IsPromotion().
func (f Flags) PromotedType() piece.PieceType {
	switch f & 3 {
	case 0:
		return piece.Rook
	case 1:
		return piece.Knight
	case 2:
		return piece.Bishop
	default:
		return piece.Queen
	}
}

func promotionFlags(capture bool, pt piece.PieceType) Flags {
	var base Flags
	switch pt {
	case piece.Rook:
		base = RookPromotion
	case piece.Knight:
		base = KnightPromotion
	case piece.Bishop:
		base = BishopPromotion
	default:
		base = QueenPromotion
	}
	if capture {
		base += 4
	}
	return base
}

const (
	srcMask   = 0x003f
	dstShift  = 6
	dstMask   = 0x0fc0
	flagShift = 12
)

// Move packs a source square, destination square and flags into 16 bits.
type Move uint16

// Null is the null move: source and destination coincide, which can never
// happen for a real move.
const Null Move = 0

// New packs a move from its parts.
func New(src, dst piece.Square, flags Flags) Move {
	return Move(uint16(src)&srcMask | uint16(dst)<<dstShift&dstMask | uint16(flags)<<flagShift)
}

// NewQuiet returns a plain, non-capturing, non-special move.
func NewQuiet(src, dst piece.Square) Move { return New(src, dst, Quiet) }

// Src returns the source square.
func (m Move) Src() piece.Square { return piece.Square(m & srcMask) }

// Dst returns the destination square.
func (m Move) Dst() piece.Square { return piece.Square(m & dstMask >> dstShift) }

// Flags returns the move's flag nibble.
func (m Move) Flags() Flags { return Flags(m >> flagShift) }

// IsCapture reports whether m captures a piece, including en-passant.
func (m Move) IsCapture() bool { return m.Flags().IsCapture() }

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m.Flags().IsPromotion() }

// IsCastle reports whether m is a castling move.
func (m Move) IsCastle() bool {
	f := m.Flags()
	return f == KingsideCastle || f == QueensideCastle
}

// IsEnPassant reports whether m is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Flags() == EnPassant }

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool { return m.Src() == m.Dst() }

// NewCapture returns a capturing move with no special behavior.
func NewCapture(src, dst piece.Square) Move { return New(src, dst, Capture) }

// NewDoublePawnPush returns a two-square pawn advance.
func NewDoublePawnPush(src, dst piece.Square) Move { return New(src, dst, DoublePawnPush) }

// NewEnPassant returns an en-passant capture.
func NewEnPassant(src, dst piece.Square) Move { return New(src, dst, EnPassant) }

// NewCastle returns a castling move; side indicates king- or queen-side by
// comparing the destination file, so callers just pass the king's move.
func NewCastle(src, dst piece.Square) Move {
	if dst.File() > src.File() {
		return New(src, dst, KingsideCastle)
	}
	return New(src, dst, QueensideCastle)
}

// NewPromotion returns a (possibly capturing) promotion move.
func NewPromotion(src, dst piece.Square, capture bool, pt piece.PieceType) Move {
	return New(src, dst, promotionFlags(capture, pt))
}

// String renders m in long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.Src().String() + m.Dst().String()
	if m.IsPromotion() {
		s += pieceTypeLetter(m.Flags().PromotedType())
	}
	return s
}

func pieceTypeLetter(pt piece.PieceType) string {
	switch pt {
	case piece.Rook:
		return "r"
	case piece.Knight:
		return "n"
	case piece.Bishop:
		return "b"
	case piece.Queen:
		return "q"
	default:
		return ""
	}
}

// FromString parses a long algebraic move string such as "e2e4" or
// "a7a8q" from the string alone, without a board: a four-character move
// is returned as Quiet and a promotion as a non-capturing promotion, so
// double pushes, captures, en-passant and castling are not recognised.
// Most callers should prefer notation.ParseMove, which resolves the
// string against a Position's legal moves.
func FromString(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Null, fmt.Errorf("move: bad length %q", s)
	}
	src, err := piece.SquareFromString(s[0:2])
	if err != nil {
		return Null, err
	}
	dst, err := piece.SquareFromString(s[2:4])
	if err != nil {
		return Null, err
	}
	if len(s) == 4 {
		return New(src, dst, Quiet), nil
	}
	pt, err := pieceTypeFromLetter(s[4])
	if err != nil {
		return Null, err
	}
	return NewPromotion(src, dst, false, pt), nil
}

func pieceTypeFromLetter(b byte) (piece.PieceType, error) {
	switch b {
	case 'r':
		return piece.Rook, nil
	case 'n':
		return piece.Knight, nil
	case 'b':
		return piece.Bishop, nil
	case 'q':
		return piece.Queen, nil
	default:
		return piece.NoPieceType, fmt.Errorf("move: unknown promotion letter %q", b)
	}
}
