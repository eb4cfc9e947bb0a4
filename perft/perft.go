// Package perft counts the leaf nodes of the legal-move-generation tree
// rooted at a position, the standard move-generator correctness check
// (https://www.chessprogramming.org/Perft).
//
// Generalized from the teacher's perft/perft.go, which recurses with
// DoMove/UndoMove over a shared *engine.Position; this package recurses
// over position.Apply's value-returning transitions instead, so there is
// no explicit undo step.
package perft

import (
	"github.com/corvidchess/corvid/movegen"
	"github.com/corvidchess/corvid/position"
)

// Counters breaks a perft count down by move category, counted only at
// the leaves (depth 1 recursion), matching the teacher's counters type.
type Counters struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
}

// Add accumulates ot into co.
func (co *Counters) Add(ot Counters) {
	co.Nodes += ot.Nodes
	co.Captures += ot.Captures
	co.EnPassant += ot.EnPassant
	co.Castles += ot.Castles
	co.Promotions += ot.Promotions
}

type hashEntry struct {
	hash     uint64
	depth    int
	counters Counters
}

// Table is a per-depth hash->count memoization cache, local to one perft
// invocation (or a family of related ones sharing a root). The zero
// value is usable and caches nothing usefully until sized by NewTable.
type Table []hashEntry

// TableEntrySize approximates the memory footprint in bytes of one
// hashEntry (a uint64 hash, an int depth and a five-field Counters),
// for callers sizing a Table from a megabyte budget such as
// config.Runtime.PerftHashMB.
const TableEntrySize = 56

// NewTable returns a Table with size entries, matching the teacher's
// fixed-size hashTable (1<<20 entries there); callers size it to fit
// their memory budget via config.Runtime.PerftHashMB and
// TableEntrySize.
func NewTable(size int) Table {
	return make(Table, size)
}

func (t Table) lookup(hash uint64, depth int) (Counters, bool) {
	if len(t) == 0 {
		return Counters{}, false
	}
	e := &t[hash%uint64(len(t))]
	if e.depth == depth && e.hash == hash {
		return e.counters, true
	}
	return Counters{}, false
}

func (t Table) store(hash uint64, depth int, c Counters) {
	if len(t) == 0 {
		return
	}
	t[hash%uint64(len(t))] = hashEntry{hash: hash, depth: depth, counters: c}
}

// Count returns the perft counters for pos at depth, using table to
// collapse transpositions (table may be nil, disabling memoization).
// depth 0 returns {Nodes: 1} by convention; every other breakdown field
// is only populated at the leaves (depth 1's children), matching the
// teacher's perft.
func Count(pos *position.Position, depth int, table Table) Counters {
	if depth == 0 {
		return Counters{Nodes: 1}
	}
	if c, ok := table.lookup(pos.Hash, depth); ok {
		return c
	}

	var r Counters
	for _, m := range movegen.Generate(pos, movegen.AllLegal) {
		if depth == 1 {
			// Captures includes en-passant captures, matching the
			// conventional perft breakdown where En Passant is reported
			// as an informative subset of Captures, not a disjoint
			// category.
			if m.IsCapture() {
				r.Captures++
			}
			if m.IsEnPassant() {
				r.EnPassant++
			}
			if m.IsCastle() {
				r.Castles++
			}
			if m.IsPromotion() {
				r.Promotions++
			}
		}
		next := pos.Apply(m)
		r.Add(Count(&next, depth-1, table))
	}

	table.store(pos.Hash, depth, r)
	return r
}

// Split is one entry of SplitCount's result: for a legal move at pos, its
// long-algebraic string and the perft count of the subtree it roots at
// depth-1 — the classic
// "perft divide" used to localize a move-generation bug to one root
// move. splitDepth further recurses the breakdown that many plies deep
// before falling back to a plain Count, matching the teacher's nested
// split/perft structure.
type Split struct {
	Move     string
	Counters Counters
	Children []Split
}

func SplitCount(pos *position.Position, depth, splitDepth int, table Table) (Counters, []Split) {
	if depth == 0 || splitDepth == 0 {
		return Count(pos, depth, table), nil
	}

	var total Counters
	var splits []Split
	for _, m := range movegen.Generate(pos, movegen.AllLegal) {
		next := pos.Apply(m)
		c, children := SplitCount(&next, depth-1, splitDepth-1, table)
		total.Add(c)
		splits = append(splits, Split{Move: m.String(), Counters: c, Children: children})
	}
	return total, splits
}
