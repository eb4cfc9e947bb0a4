// Package bitboard implements the 64-bit set-of-squares primitive used
// throughout the engine, along with the small family of shift and mask
// helpers the attack-table and move-generator packages build on.
package bitboard

import (
	"math/bits"

	"github.com/corvidchess/corvid/piece"
)

// Bitboard is a set of squares, one bit per square, little-endian
// rank-file mapped (bit 0 is a1, bit 63 is h8).
type Bitboard uint64

// Empty is the bitboard with no squares set.
const Empty Bitboard = 0

// Of returns the bitboard containing only sq.
func Of(sq piece.Square) Bitboard {
	return Bitboard(1) << uint(sq)
}

// Has reports whether sq is a member of bb.
func (bb Bitboard) Has(sq piece.Square) bool {
	return bb&Of(sq) != 0
}

// Set returns bb with sq added.
func (bb Bitboard) Set(sq piece.Square) Bitboard {
	return bb | Of(sq)
}

// Clear returns bb with sq removed.
func (bb Bitboard) Clear(sq piece.Square) Bitboard {
	return bb &^ Of(sq)
}

// LSB returns the bitboard containing only the lowest set square of bb.
// Returns Empty if bb is Empty.
func (bb Bitboard) LSB() Bitboard {
	return bb & -bb
}

// AsSquare returns the single square set in bb. Undefined if bb does not
// have exactly one bit set.
func (bb Bitboard) AsSquare() piece.Square {
	return piece.Square(bits.TrailingZeros64(uint64(bb)))
}

// Pop removes and returns the lowest set square of bb. Undefined if bb is
// Empty — callers must check for that first, per the package's documented
// precondition.
func (bb *Bitboard) Pop() piece.Square {
	sq := piece.Square(bits.TrailingZeros64(uint64(*bb)))
	*bb &= *bb - 1
	return sq
}

// Count returns the number of squares set in bb.
func (bb Bitboard) Count() int {
	return bits.OnesCount64(uint64(bb))
}

// RankBB returns the bitboard with every square of rank r (0-7) set.
func RankBB(r int) Bitboard {
	return Bitboard(0xff) << uint(8*r)
}

// FileBB returns the bitboard with every square of file f (0-7) set.
func FileBB(f int) Bitboard {
	return Bitboard(0x0101010101010101) << uint(f)
}

const (
	fileA = Bitboard(0x0101010101010101)
	fileH = fileA << 7
)

// North shifts every square of bb one rank towards rank 8.
func North(bb Bitboard) Bitboard { return bb << 8 }

// South shifts every square of bb one rank towards rank 1.
func South(bb Bitboard) Bitboard { return bb >> 8 }

// East shifts every square of bb one file towards the h file. Squares on
// the h file are cleared first so they do not wrap onto the a file of the
// next rank.
func East(bb Bitboard) Bitboard { return (bb &^ fileH) << 1 }

// West shifts every square of bb one file towards the a file. Squares on
// the a file are cleared first so they do not wrap onto the h file of the
// previous rank.
func West(bb Bitboard) Bitboard { return (bb &^ fileA) >> 1 }

// Forward shifts bb one rank in side's direction of advance.
func Forward(side piece.Side, bb Bitboard) Bitboard {
	if side == piece.White {
		return North(bb)
	}
	return South(bb)
}
