package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/history"
	"github.com/corvidchess/corvid/move"
	"github.com/corvidchess/corvid/piece"
	"github.com/corvidchess/corvid/position"
)

func mustParse(t *testing.T, fen string) position.Position {
	t.Helper()
	pos := position.New()
	require.NoError(t, pos.FromFEN(fen), "FromFEN(%q)", fen)
	return *pos
}

func TestPushPopLen(t *testing.T) {
	h := history.New()
	require.Equal(t, 0, h.Len())

	start := mustParse(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	h.Push(start, move.Null)
	require.Equal(t, 1, h.Len())
	assert.Equal(t, start.Hash, h.Current().Hash)

	pos, m := h.Pop()
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, start.Hash, pos.Hash)
	assert.Equal(t, move.Null, m)
}

func TestIsRepetition(t *testing.T) {
	h := history.New()
	pos := mustParse(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	h.Push(pos, move.Null)

	// Both sides' kingside knights go out and back, so the starting
	// position recurs every four plies with no pawn move or capture.
	shuffle := []move.Move{
		move.NewQuiet(piece.SquareG1, piece.SquareF3),
		move.NewQuiet(piece.SquareG8, piece.SquareF6),
		move.NewQuiet(piece.SquareF3, piece.SquareG1),
		move.NewQuiet(piece.SquareF6, piece.SquareG8),
	}
	play := func() {
		for _, m := range shuffle {
			pos = pos.Apply(m)
			h.Push(pos, m)
		}
	}

	// The same position recurring twice is not yet a repetition draw.
	play()
	assert.False(t, h.IsRepetition(), "two occurrences reported as repetition")

	play()
	assert.True(t, h.IsRepetition(), "three occurrences not reported as repetition")
}

func TestIsRepetitionStopsAtIrreversibleMove(t *testing.T) {
	h := history.New()
	start := mustParse(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	h.Push(start, move.Null)
	h.Push(start, move.Null)
	h.Push(start, move.Null)
	h.Push(start, move.Null)

	// A capture or pawn move resets HalfMoveClock to 0, which must stop
	// the repetition scan from reaching back past it even if an earlier
	// position happens to share the same hash by coincidence.
	afterCapture := mustParse(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	afterCapture.HalfMoveClock = 0
	h.Push(afterCapture, move.Null)

	assert.False(t, h.IsRepetition(), "repetition reported across an irreversible-move boundary")
}

func TestIsFiftyMoveRule(t *testing.T) {
	h := history.New()
	pos := mustParse(t, "8/8/8/4k3/8/4K3/8/8 w - - 99 60")
	h.Push(pos, move.Null)
	assert.False(t, h.IsFiftyMoveRule(), "IsFiftyMoveRule true at halfmove clock 99")

	pos.HalfMoveClock = 100
	h.Push(pos, move.Null)
	assert.True(t, h.IsFiftyMoveRule(), "IsFiftyMoveRule false at halfmove clock 100")
}
