package move_test

import (
	"testing"

	"github.com/corvidchess/corvid/move"
	"github.com/corvidchess/corvid/piece"
)

func TestNewPacksSrcDstFlags(t *testing.T) {
	m := move.New(piece.SquareE2, piece.SquareE4, move.DoublePawnPush)
	if m.Src() != piece.SquareE2 {
		t.Errorf("Src() = %v, want e2", m.Src())
	}
	if m.Dst() != piece.SquareE4 {
		t.Errorf("Dst() = %v, want e4", m.Dst())
	}
	if m.Flags() != move.DoublePawnPush {
		t.Errorf("Flags() = %v, want DoublePawnPush", m.Flags())
	}
}

func TestIsCaptureIncludesEnPassantAndPromotionCapture(t *testing.T) {
	if !move.NewCapture(piece.SquareE4, piece.SquareD5).IsCapture() {
		t.Error("NewCapture: IsCapture() = false")
	}
	if !move.NewEnPassant(piece.SquareE5, piece.SquareD6).IsCapture() {
		t.Error("NewEnPassant: IsCapture() = false")
	}
	if !move.NewPromotion(piece.SquareB7, piece.SquareA8, true, piece.Queen).IsCapture() {
		t.Error("NewPromotion(capture=true): IsCapture() = false")
	}
	if move.NewQuiet(piece.SquareE2, piece.SquareE3).IsCapture() {
		t.Error("NewQuiet: IsCapture() = true")
	}
}

func TestIsCastle(t *testing.T) {
	k := move.NewCastle(piece.SquareE1, piece.SquareG1)
	if !k.IsCastle() {
		t.Error("kingside NewCastle: IsCastle() = false")
	}
	if k.Flags() != move.KingsideCastle {
		t.Errorf("Flags() = %v, want KingsideCastle", k.Flags())
	}
	q := move.NewCastle(piece.SquareE1, piece.SquareC1)
	if q.Flags() != move.QueensideCastle {
		t.Errorf("Flags() = %v, want QueensideCastle", q.Flags())
	}
}

func TestPromotedTypeAllFour(t *testing.T) {
	for _, pt := range []piece.PieceType{piece.Rook, piece.Knight, piece.Bishop, piece.Queen} {
		m := move.NewPromotion(piece.SquareA7, piece.SquareA8, false, pt)
		if !m.IsPromotion() {
			t.Fatalf("NewPromotion(%v): IsPromotion() = false", pt)
		}
		if got := m.Flags().PromotedType(); got != pt {
			t.Errorf("PromotedType() = %v, want %v", got, pt)
		}
	}
}

func TestStringRoundTripQuietAndPromotion(t *testing.T) {
	for _, s := range []string{"e2e4", "a7a8q", "b7a8n"} {
		m, err := move.FromString(s)
		if err != nil {
			t.Fatalf("FromString(%q): %v", s, err)
		}
		if got := m.String(); got != s {
			t.Errorf("FromString(%q).String() = %q", s, got)
		}
	}
}

func TestFromStringRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "e2", "e2e4qq", "z9e4", "e2e4x"} {
		if _, err := move.FromString(s); err == nil {
			t.Errorf("FromString(%q): want error, got nil", s)
		}
	}
}

func TestNullMove(t *testing.T) {
	if !move.Null.IsNull() {
		t.Error("Null.IsNull() = false")
	}
	if move.NewQuiet(piece.SquareE2, piece.SquareE4).IsNull() {
		t.Error("a real move reported as null")
	}
}
