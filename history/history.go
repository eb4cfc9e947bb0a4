// Package history implements BoardHistory, a depth-indexed stack of
// (Position, Move) pairs used for both undo and threefold-repetition
// detection.
//
// Grounded on the reference engine's BoardHistory class
// (chessboard.hpp), generalized from its fixed MAX_GAME_MOVE_COUNT
// preallocated array of mutable ChessBoard values to a growable slice of
// immutable position.Position values paired with the move that produced
// them — this package stores positions by value rather than a pointer
// back to a board type, so there is no ChessBoard/BoardHistory cyclic
// type reference to carry over.
package history

import (
	"github.com/corvidchess/corvid/move"
	"github.com/corvidchess/corvid/position"
)

// MaxGameMoveCount bounds BoardHistory's capacity, matching the
// reference engine's preallocated MAX_GAME_MOVE_COUNT array — generous
// for any realistic game length (the exact constant wasn't present in
// the retrieved reference sources).
const MaxGameMoveCount = 1024

type entry struct {
	pos  position.Position
	move move.Move
}

// BoardHistory is an append-only-until-Pop stack of positions, oldest
// first, each paired with the move that produced it (the null move for
// the first entry).
type BoardHistory struct {
	entries []entry
}

// New returns an empty BoardHistory with some preallocated capacity, a
// typical game length.
func New() *BoardHistory {
	return &BoardHistory{entries: make([]entry, 0, 128)}
}

// Push appends pos as the most recent position, reached by playing m
// (move.Null for the initial position).
func (h *BoardHistory) Push(pos position.Position, m move.Move) {
	if len(h.entries) >= MaxGameMoveCount {
		panic("history: MaxGameMoveCount exceeded")
	}
	h.entries = append(h.entries, entry{pos, m})
}

// Pop removes and returns the most recent (position, move) pair. Panics
// if h is empty.
func (h *BoardHistory) Pop() (position.Position, move.Move) {
	n := len(h.entries) - 1
	e := h.entries[n]
	h.entries = h.entries[:n]
	return e.pos, e.move
}

// Len returns the number of positions recorded.
func (h *BoardHistory) Len() int {
	return len(h.entries)
}

// At returns the position and the move that produced it at index i, 0
// being the oldest.
func (h *BoardHistory) At(i int) (*position.Position, move.Move) {
	return &h.entries[i].pos, h.entries[i].move
}

// Current returns the most recently pushed position. Panics if h is
// empty.
func (h *BoardHistory) Current() *position.Position {
	return &h.entries[len(h.entries)-1].pos
}

// Clear empties h without releasing its backing array.
func (h *BoardHistory) Clear() {
	h.entries = h.entries[:0]
}

// IsRepetition reports whether the current position's hash has now
// occurred a third time since the last irreversible move (a pawn move or
// capture, which resets HalfMoveClock to 0). Only positions with the
// same side to move can repeat the current one, so the scan steps back
// two plies at a time.
func (h *BoardHistory) IsRepetition() bool {
	n := len(h.entries)
	if n == 0 {
		return false
	}
	cur := &h.entries[n-1].pos
	oldest := n - 1 - cur.HalfMoveClock
	if oldest < 0 {
		oldest = 0
	}

	count := 0
	for i := n - 1; i >= oldest; i -= 2 {
		if h.entries[i].pos.Hash == cur.Hash {
			count++
			if count == 3 {
				return true
			}
		}
	}
	return false
}

// IsFiftyMoveRule reports whether the current position's halfmove clock
// has reached the 100-halfmove (50 full move) threshold.
func (h *BoardHistory) IsFiftyMoveRule() bool {
	if len(h.entries) == 0 {
		return false
	}
	return h.Current().HalfMoveClock >= 100
}
