// Package piece defines the primitive chess identifiers shared by every
// other package: squares, sides, piece types, pieces and castling rights.
package piece

import "fmt"

// Square identifies one of the 64 board cells, numbered 0 (a1) to 63 (h8)
// in little-endian rank-file order.
type Square uint8

// RankFile returns the square at rank r (0-7) and file f (0-7).
func RankFile(r, f int) Square {
	return Square(r*8 + f)
}

// Rank returns the rank of sq, 0 to 7.
func (sq Square) Rank() int { return int(sq / 8) }

// File returns the file of sq, 0 to 7.
func (sq Square) File() int { return int(sq % 8) }

// Relative returns the square obtained by shifting sq by dr ranks and df files.
// The result is undefined if it falls off the board.
func (sq Square) Relative(dr, df int) Square {
	return sq + Square(dr*8+df)
}

func (sq Square) String() string {
	return string([]byte{
		byte(sq.File() + 'a'),
		byte(sq.Rank() + '1'),
	})
}

// SquareFromString parses a square in [a-h][1-8] format.
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return SquareA1, errInvalidSquare
	}
	f, r := -1, -1
	switch {
	case 'a' <= s[0] && s[0] <= 'h':
		f = int(s[0] - 'a')
	case 'A' <= s[0] && s[0] <= 'H':
		f = int(s[0] - 'A')
	}
	if '1' <= s[1] && s[1] <= '8' {
		r = int(s[1] - '1')
	}
	if f == -1 || r == -1 {
		return SquareA1, errInvalidSquare
	}
	return RankFile(r, f), nil
}

var errInvalidSquare = fmt.Errorf("piece: invalid square")

// Named squares, useful as sentinels (e.g. SquareA1 marks "no en-passant
// square" in some callers) and in tests.
const (
	SquareA1 Square = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8

	SquareMinValue = SquareA1
	SquareMaxValue = SquareH8
	SquareArraySize = int(SquareMaxValue) + 1
)

// NoEnPassantFile is the sentinel stored when no en-passant capture is
// possible, matching the original engine's en_passant_file = 9 (there are
// only 8 real files, so 9 cannot collide with one).
const NoEnPassantFile uint8 = 9

// Side identifies which player owns a piece or is to move.
type Side uint8

const (
	White Side = iota
	Black

	SideArraySize = 2
	SideMinValue  = White
	SideMaxValue  = Black
)

// Opposite returns the other side.
func (s Side) Opposite() Side { return s ^ 1 }

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// KingHomeRank returns the back rank s's king starts on.
func (s Side) KingHomeRank() int {
	if s == White {
		return 0
	}
	return 7
}

// PieceType represents a piece without a side.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	PieceTypeArraySize = int(King) + 1
	PieceTypeMinValue  = Pawn
	PieceTypeMaxValue  = King
)

var pieceTypeSymbol = [...]byte{0, 'P', 'N', 'B', 'R', 'Q', 'K'}

func (pt PieceType) String() string {
	if pt < PieceTypeMinValue || pt > PieceTypeMaxValue {
		return "-"
	}
	return string(pieceTypeSymbol[pt])
}

// Piece packs a PieceType and a Side into a single nibble: bits 1-3 hold
// the piece type, bit 0 holds the side. NoPiece is the zero value.
type Piece uint8

const NoPiece Piece = 0

// New returns the piece of type pt owned by side s.
func New(s Side, pt PieceType) Piece {
	return Piece(pt)<<1 | Piece(s)
}

// Side returns the owner of pi. Undefined if pi is NoPiece.
func (pi Piece) Side() Side { return Side(pi & 1) }

// Type returns the piece type of pi.
func (pi Piece) Type() PieceType { return PieceType(pi >> 1) }

func (pi Piece) String() string {
	if pi == NoPiece {
		return "."
	}
	sym := pi.Type().String()
	if pi.Side() == Black {
		return string(sym[0] - 'A' + 'a')
	}
	return sym
}

// Castle is a bitmask of remaining castling rights.
type Castle uint8

const (
	WhiteOO Castle = 1 << iota
	WhiteOOO
	BlackOO
	BlackOOO

	NoCastle  Castle = 0
	AnyCastle Castle = WhiteOO | WhiteOOO | BlackOO | BlackOOO

	CastleArraySize = int(AnyCastle) + 1
)

// KingSide and QueenSide return s's castling bit for the given side.
func KingSide(s Side) Castle {
	if s == White {
		return WhiteOO
	}
	return BlackOO
}

func QueenSide(s Side) Castle {
	if s == White {
		return WhiteOOO
	}
	return BlackOOO
}

var castleSymbol = map[Castle]byte{
	WhiteOO: 'K', WhiteOOO: 'Q', BlackOO: 'k', BlackOOO: 'q',
}

func (c Castle) String() string {
	if c == NoCastle {
		return "-"
	}
	var r []byte
	for _, bit := range [...]Castle{WhiteOO, WhiteOOO, BlackOO, BlackOOO} {
		if c&bit != 0 {
			r = append(r, castleSymbol[bit])
		}
	}
	return string(r)
}
