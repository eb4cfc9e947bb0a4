package zobrist_test

import (
	"testing"

	"github.com/corvidchess/corvid/piece"
	"github.com/corvidchess/corvid/zobrist"
)

func TestNoEnPassantFileKeyIsZero(t *testing.T) {
	if zobrist.EnPassantFile[piece.NoEnPassantFile] != 0 {
		t.Error("EnPassantFile[NoEnPassantFile] must be zero so XOR-ing it is a no-op")
	}
}

func TestOfPieceDistinctPerSquare(t *testing.T) {
	pi := piece.New(piece.White, piece.Knight)
	seen := make(map[uint64]piece.Square)
	for sq := piece.SquareMinValue; sq <= piece.SquareMaxValue; sq++ {
		k := zobrist.OfPiece(pi, sq)
		if other, dup := seen[k]; dup {
			t.Fatalf("OfPiece(white knight, %v) collides with %v", sq, other)
		}
		seen[k] = sq
	}
}

func TestOfPieceDistinctPerPieceType(t *testing.T) {
	sq := piece.SquareD4
	seen := make(map[uint64]bool)
	for s := piece.SideMinValue; s <= piece.SideMaxValue; s++ {
		for pt := piece.PieceTypeMinValue; pt <= piece.PieceTypeMaxValue; pt++ {
			k := zobrist.OfPiece(piece.New(s, pt), sq)
			if seen[k] {
				t.Fatalf("OfPiece(%v %v, d4) collides with another piece's key", s, pt)
			}
			seen[k] = true
		}
	}
}

func TestCastleKeysDistinct(t *testing.T) {
	seen := make(map[uint64]bool)
	for c := 0; c < piece.CastleArraySize; c++ {
		k := zobrist.Castle[c]
		if c != 0 && seen[k] {
			t.Fatalf("Castle[%d] collides with another castling-rights key", c)
		}
		seen[k] = true
	}
}

func TestSideToMoveNonZero(t *testing.T) {
	if zobrist.SideToMove == 0 {
		t.Error("SideToMove key must not be zero, or side-to-move toggling would be a no-op")
	}
}
