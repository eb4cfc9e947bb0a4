package position_test

import (
	"testing"

	"github.com/corvidchess/corvid/move"
	"github.com/corvidchess/corvid/piece"
	"github.com/corvidchess/corvid/position"
)

func mustParse(t *testing.T, fen string) *position.Position {
	t.Helper()
	pos := position.New()
	if err := pos.FromFEN(fen); err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return pos
}

func TestFromFENStringRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 3 30",
	}
	for _, fen := range fens {
		pos := mustParse(t, fen)
		if got := pos.String(); got != fen {
			t.Errorf("FromFEN(%q).String() = %q", fen, got)
		}
	}
}

func TestFromFENAcceptsFourFieldForm(t *testing.T) {
	full := mustParse(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	short := mustParse(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")

	if short.HalfMoveClock != 0 {
		t.Errorf("HalfMoveClock = %d, want 0 (default)", short.HalfMoveClock)
	}
	if short.FullMoveNumber != 1 {
		t.Errorf("FullMoveNumber = %d, want 1 (default)", short.FullMoveNumber)
	}
	if short.Hash != full.Hash {
		t.Errorf("4-field and 6-field forms of the same position hash differently: %x != %x", short.Hash, full.Hash)
	}
	if short.String() != full.String() {
		t.Errorf("4-field FromFEN().String() = %q, want %q", short.String(), full.String())
	}
}

func TestFromFENAcceptsStartposAlias(t *testing.T) {
	pos := mustParse(t, "startpos")
	want := mustParse(t, position.StartFEN)
	if pos.Hash != want.Hash {
		t.Errorf(`FromFEN("startpos") hash = %x, want %x`, pos.Hash, want.Hash)
	}
	if pos.String() != want.String() {
		t.Errorf(`FromFEN("startpos").String() = %q, want %q`, pos.String(), want.String())
	}
}

func TestFromFENFailClearLeavesEmptyPosition(t *testing.T) {
	pos := position.New()
	pos.Put(piece.SquareE4, piece.New(piece.White, piece.Queen))
	if err := pos.FromFEN("garbage"); err == nil {
		t.Fatal("FromFEN(garbage): want error, got nil")
	}
	if !pos.IsEmpty(piece.SquareE4) {
		t.Error("FromFEN error did not clear the position back to empty")
	}
	if pos.EnPassantFile != piece.NoEnPassantFile {
		t.Error("FromFEN error left a stale en-passant file")
	}
}

func TestRecomputeCheckersDetectsCheck(t *testing.T) {
	pos := mustParse(t, "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	if !pos.InCheck() {
		t.Fatal("rook on e2 giving check to king on e1: InCheck() = false")
	}
	if pos.Checkers.Count() != 1 {
		t.Errorf("Checkers.Count() = %d, want 1", pos.Checkers.Count())
	}
	if !pos.Checkers.Has(piece.SquareE2) {
		t.Error("Checkers does not include the checking rook's square")
	}
}

func TestRecomputeCheckersNoCheck(t *testing.T) {
	pos := mustParse(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if pos.InCheck() {
		t.Error("starting position reported as in check")
	}
}

func TestPinnedDetection(t *testing.T) {
	// The white bishop on e4 is the only piece between its king on e1
	// and a black rook on e8, so it is pinned along the e-file.
	pos := mustParse(t, "4r3/8/8/8/4B3/8/8/4K3 w - - 0 1")
	if !pos.Pinned.Has(piece.SquareE4) {
		t.Errorf("Pinned = %x, want e4 set (bishop pinned on e-file)", uint64(pos.Pinned))
	}
}

func TestNotPinnedWhenNotAlignedWithKing(t *testing.T) {
	pos := mustParse(t, "4r3/8/8/8/3B4/8/8/4K3 w - - 0 1")
	if pos.Pinned.Has(piece.SquareD4) {
		t.Error("bishop off the king's file/rank/diagonal reported as pinned")
	}
}

func TestPolyglotKeySuppressesUnusableEnPassant(t *testing.T) {
	// En-passant square e3 is recorded after White's e2e4, but no Black
	// pawn stands on d4 or f4 to actually capture there, so PolyglotKey
	// must differ from the raw Hash (which still carries the EP key).
	pos := mustParse(t, "4k3/8/8/8/4P3/8/8/4K3 b - e3 0 1")
	if pos.PolyglotKey() == pos.Hash {
		t.Error("PolyglotKey() kept an unusable en-passant key")
	}
}

func TestPolyglotKeyKeepsUsableEnPassant(t *testing.T) {
	pos := mustParse(t, "4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	if pos.PolyglotKey() != pos.Hash {
		t.Error("PolyglotKey() dropped a usable en-passant key")
	}
}

func TestApplyIsPureAndIncrementsHash(t *testing.T) {
	pos := mustParse(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	before := *pos
	m := move.NewDoublePawnPush(piece.SquareE2, piece.SquareE4)
	next := pos.Apply(m)

	if *pos != before {
		t.Error("Apply mutated its receiver")
	}
	if next.Hash == pos.Hash {
		t.Error("Apply did not change the hash")
	}

	reparsed := mustParse(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if next.Hash != reparsed.Hash {
		t.Errorf("incremental hash after e2e4 = %x, want %x (from-FEN hash)", next.Hash, reparsed.Hash)
	}
	if next.String() != reparsed.String() {
		t.Errorf("Apply(e2e4).String() = %q, want %q", next.String(), reparsed.String())
	}
}

// polyglotReferenceKeys are the seven sample keys published alongside
// the Polyglot book-format specification (http://hgm.nubati.net/book_format.html),
// reached by playing 1. e4 d5 2. e5 f5 3. Ke2 Kf7 from the starting
// position.
var polyglotReferenceKeys = []struct {
	fen string
	key uint64
}{
	{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 0x463b96181691fc9c},
	{"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", 0x823c9b50fd114196},
	{"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", 0x0756b94461c50fb0},
	{"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2", 0x662fafb965db29d4},
	{"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", 0x22a48b5a8e47ff78},
	{"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPPKPPP/RNBQ1BNR b kq - 0 3", 0x652a607ca3f242c1},
	{"rnbq1bnr/ppp1pkpp/8/3pPp2/8/8/PPPPKPPP/RNBQ1BNR w - - 0 4", 0x00fdd303c946bdd9},
}

// TestPolyglotKeyMatchesReferenceVectors checks PolyglotKey against the
// published Polyglot sample keys. It is skipped: this module's zobrist
// package generates its tables from a fixed-seed PRNG rather than
// embedding the externally published Random64 constant array (see
// DESIGN.md), so PolyglotKey is internally consistent but not expected
// to reproduce these externally published values. Dropping the verified
// Random64 table into zobrist.go (replacing the generation loop with a
// table lookup, same indexing) is what would make this test meaningful.
func TestPolyglotKeyMatchesReferenceVectors(t *testing.T) {
	t.Skip("zobrist does not embed the published Random64 table yet; see DESIGN.md")
	for _, tc := range polyglotReferenceKeys {
		pos := mustParse(t, tc.fen)
		if got := pos.PolyglotKey(); got != tc.key {
			t.Errorf("PolyglotKey(%q) = %#x, want %#x", tc.fen, got, tc.key)
		}
	}
}

func TestApplyForfeitsCastlingRightsOnRookCapture(t *testing.T) {
	pos := mustParse(t, "r3k2r/5N2/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m := move.NewCapture(piece.SquareF7, piece.SquareH8)
	next := pos.Apply(m)
	if next.Castling&piece.BlackOO != 0 {
		t.Error("capturing the h8 rook should forfeit black kingside castling")
	}
	if next.Castling&piece.BlackOOO == 0 {
		t.Error("capturing the h8 rook should not forfeit black queenside castling")
	}
}
