// Package zobrist holds the random constants used to maintain a
// Position's incremental hash, and the Polyglot-compatible composition
// rule (http://hgm.nubati.net/book_format.html) for deriving an
// opening-book key from it.
//
// The table is generated at init time from a fixed-seed PRNG rather than
// compiled in from a literal, the same approach the engine this package
// was adapted from uses for its own Zobrist tables. This gives bit-stable,
// reproducible keys across runs and platforms without hand-maintaining a
// multi-hundred-entry constant table; see DESIGN.md for why this module
// does not embed the externally published Polyglot Random64 array
// verbatim, and what would be required to do so.
//
// What this package does reproduce exactly is Polyglot's *composition
// rule*, independently of the table values: piece keys are ordered
// black-pawn, white-pawn, black-knight, white-knight, ... black-king,
// white-king (64 squares each); the four castling rights are independent
// keys XORed together rather than looked up by combined state; the
// en-passant file key is only included when some pawn of the side to
// move could actually capture (Position.PolyglotKey); and the
// side-to-move key is included when it is White's turn, matching
// Polyglot's "turn" key convention.
package zobrist

import (
	"math/rand"

	"github.com/corvidchess/corvid/piece"
)

var (
	// Piece holds one key per (piece, square) pair.
	Piece [piece.PieceTypeArraySize * piece.SideArraySize][piece.SquareArraySize]uint64
	// EnPassantFile holds one key per en-passant file, plus the
	// piece.NoEnPassantFile sentinel slot (always zero, so XOR-ing it in
	// or out is a no-op).
	EnPassantFile [piece.NoEnPassantFile + 1]uint64
	// Castle holds one key per castling-rights bit combination, built by
	// XOR-ing together the four independent castle-right keys that
	// combination holds — Polyglot treats each right as its own
	// independent key XORed in when held, which is mathematically the
	// same as precomputing one combined key per combination and XOR-ing
	// that single value in and out as rights change.
	Castle [piece.CastleArraySize]uint64
	// SideToMove is XORed in whenever it is White's turn to move,
	// matching the Polyglot "turn" key convention.
	SideToMove uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func init() {
	r := rand.New(rand.NewSource(1))

	// Generated in Polyglot's kind order — each piece type's black key
	// block immediately followed by its white key block, 64 squares
	// each — so a verified drop-in of the literal published table only
	// needs to replace this generation loop with a table lookup; the
	// Piece array's own row indexing does not change.
	for pt := piece.PieceTypeMinValue; pt <= piece.PieceTypeMaxValue; pt++ {
		for _, side := range [...]piece.Side{piece.Black, piece.White} {
			row := int(pt)*piece.SideArraySize + int(side)
			for sq := piece.SquareMinValue; sq <= piece.SquareMaxValue; sq++ {
				Piece[row][sq] = rand64(r)
			}
		}
	}

	castleKeys := [4]uint64{rand64(r), rand64(r), rand64(r), rand64(r)}
	rights := [...]struct {
		bit piece.Castle
		key uint64
	}{
		{piece.WhiteOO, castleKeys[0]},
		{piece.WhiteOOO, castleKeys[1]},
		{piece.BlackOO, castleKeys[2]},
		{piece.BlackOOO, castleKeys[3]},
	}
	for c := 0; c < piece.CastleArraySize; c++ {
		var key uint64
		for _, right := range rights {
			if piece.Castle(c)&right.bit != 0 {
				key ^= right.key
			}
		}
		Castle[c] = key
	}

	for f := 0; f < 8; f++ {
		EnPassantFile[f] = rand64(r)
	}
	// EnPassantFile[piece.NoEnPassantFile] stays zero: "no en-passant"
	// must not perturb the hash.

	SideToMove = rand64(r)
}

// pieceIndex maps a Piece to its row in the Piece table.
func pieceIndex(pi piece.Piece) int {
	return int(pi.Type())*piece.SideArraySize + int(pi.Side())
}

// OfPiece returns the key for pi standing on sq. pi must not be NoPiece.
func OfPiece(pi piece.Piece, sq piece.Square) uint64 {
	return Piece[pieceIndex(pi)][sq]
}
