package perft_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/corvidchess/corvid/perft"
	"github.com/corvidchess/corvid/position"
)

const (
	startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"
	duplain  = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -"
)

func mustParse(t *testing.T, fen string) *position.Position {
	t.Helper()
	pos := position.New()
	if err := pos.FromFEN(fen); err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return pos
}

func TestCountStartPos(t *testing.T) {
	pos := mustParse(t, startpos)
	want := []perft.Counters{
		{Nodes: 1},
		{Nodes: 20},
		{Nodes: 400},
		{Nodes: 8902, Captures: 34},
		{Nodes: 197281, Captures: 1576},
	}
	for depth, w := range want {
		if got := perft.Count(pos, depth, nil); got != w {
			t.Errorf("Count(startpos, %d) mismatch (-got +want):\n%s", depth, cmp.Diff(got, w))
		}
	}
}

func TestCountKiwipete(t *testing.T) {
	pos := mustParse(t, kiwipete)
	want := []perft.Counters{
		{Nodes: 1},
		{Nodes: 48, Captures: 8, Castles: 2},
		{Nodes: 2039, Captures: 351, EnPassant: 1, Castles: 91},
		{Nodes: 97862, Captures: 17102, EnPassant: 45, Castles: 3162},
	}
	for depth, w := range want {
		if got := perft.Count(pos, depth, nil); got != w {
			t.Errorf("Count(kiwipete, %d) mismatch (-got +want):\n%s", depth, cmp.Diff(got, w))
		}
	}
}

func TestCountDuplain(t *testing.T) {
	pos := mustParse(t, duplain)
	want := []perft.Counters{
		{Nodes: 1},
		{Nodes: 14, Captures: 1},
		{Nodes: 191, Captures: 14},
		{Nodes: 2812, Captures: 209, EnPassant: 2},
		{Nodes: 43238, Captures: 3348, EnPassant: 123},
	}
	for depth, w := range want {
		if got := perft.Count(pos, depth, nil); got != w {
			t.Errorf("Count(duplain, %d) mismatch (-got +want):\n%s", depth, cmp.Diff(got, w))
		}
	}
}

// TestCountWithTable checks that a populated hash table produces the
// same counts as no memoization at all.
func TestCountWithTable(t *testing.T) {
	for _, fen := range []string{startpos, kiwipete, duplain} {
		table := perft.NewTable(1 << 14)
		for depth := 0; depth <= 3; depth++ {
			plain := perft.Count(mustParse(t, fen), depth, nil)
			memo := perft.Count(mustParse(t, fen), depth, table)
			if memo != plain {
				t.Errorf("%s depth %d: with table = %+v, want %+v", fen, depth, memo, plain)
			}
		}
	}
}

func TestSplitCountSumsToCount(t *testing.T) {
	pos := mustParse(t, kiwipete)
	total, splits := perft.SplitCount(pos, 3, 1, nil)
	want := perft.Count(mustParse(t, kiwipete), 3, nil)
	if total != want {
		t.Fatalf("SplitCount total = %+v, want %+v", total, want)
	}

	var sum perft.Counters
	for _, s := range splits {
		sum.Add(s.Counters)
	}
	if sum != want {
		t.Fatalf("sum of splits = %+v, want %+v", sum, want)
	}
}
