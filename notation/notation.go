package notation

import (
	"fmt"

	"github.com/corvidchess/corvid/move"
	"github.com/corvidchess/corvid/movegen"
	"github.com/corvidchess/corvid/position"
)

// Alias resolves a named fixture position (see Positions), or one of the
// literal aliases position.FromFEN itself accepts (e.g. "startpos"), to
// its FEN, so a CLI can accept "kiwipete" wherever it accepts a literal
// FEN string. It reports false if name does not match a known alias.
func Alias(name string) (string, bool) {
	if fen, ok := position.Alias(name); ok {
		return fen, true
	}
	for _, p := range fixtures.Positions {
		if p.Name == name {
			return p.FEN, true
		}
	}
	return "", false
}

// ResolveFEN returns name's aliased FEN if name is a known fixture
// position or literal alias, and name itself otherwise, treating it as a
// literal FEN.
func ResolveFEN(name string) string {
	if fen, ok := Alias(name); ok {
		return fen
	}
	return name
}

// ParseMove parses a long algebraic move string such as "e2e4",
// "e7e8q" or a castling form like "e1g1", against pos. Unlike
// move.FromString, which cannot tell a capture from a quiet move or a
// castle from a plain king step without seeing the board, ParseMove
// resolves s against pos's own legal moves and returns the one whose
// String matches.
func ParseMove(pos *position.Position, s string) (move.Move, error) {
	for _, m := range movegen.Generate(pos, movegen.AllLegal) {
		if m.String() == s {
			return m, nil
		}
	}
	return move.Null, fmt.Errorf("notation: %q is not a legal move in this position", s)
}
