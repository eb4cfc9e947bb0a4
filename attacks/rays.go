package attacks

import (
	"github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/piece"
)

var (
	// Between[a][b] holds the squares strictly between a and b, plus b
	// itself, if a and b share a rank, file or diagonal; just b alone
	// otherwise. Used to restrict non-king moves to the squares that
	// evade check from a single checker at b relative to a king at a:
	// interposing on a slider's line, or capturing the checker itself
	// (the only option against a non-sliding checker).
	Between [piece.SquareArraySize][piece.SquareArraySize]bitboard.Bitboard
	// Aligned[a][b] holds every square on the full rank, file or diagonal
	// line shared by a and b (including squares beyond either of them),
	// empty if a and b do not share one. Used to restrict a pinned piece
	// to the pin line, which extends past the pinned piece itself.
	Aligned [piece.SquareArraySize][piece.SquareArraySize]bitboard.Bitboard
)

// axisDeltas enumerates the four line directions a slider can pin or check
// along: horizontal, vertical and the two diagonals. Each entry gives
// both signed directions of the axis.
var axisDeltas = [4][2][2]int{
	{{0, 1}, {0, -1}},
	{{1, 0}, {-1, 0}},
	{{1, 1}, {-1, -1}},
	{{1, -1}, {-1, 1}},
}

func initRays() {
	for a := piece.SquareMinValue; a <= piece.SquareMaxValue; a++ {
		for _, axis := range axisDeltas {
			var line bitboard.Bitboard
			var squares []piece.Square
			for _, d := range axis {
				r, f := a.Rank(), a.File()
				for {
					r, f = r+d[0], f+d[1]
					if r < 0 || r >= 8 || f < 0 || f >= 8 {
						break
					}
					b := piece.RankFile(r, f)
					line = line.Set(b)
					squares = append(squares, b)
				}
			}
			if line == bitboard.Empty {
				continue
			}
			line = line.Set(a)
			for _, b := range squares {
				Aligned[a][b] = line
				Aligned[b][a] = line
			}
		}
	}

	for a := piece.SquareMinValue; a <= piece.SquareMaxValue; a++ {
		for b := piece.SquareMinValue; b <= piece.SquareMaxValue; b++ {
			if a == b {
				Between[a][b] = bitboard.Of(b)
				continue
			}
			if Aligned[a][b] == bitboard.Empty {
				// Not on a shared line: the only way to answer a check
				// from b is to capture it.
				Between[a][b] = bitboard.Of(b)
				continue
			}
			Between[a][b] = rayBetween(a, b).Set(b)
		}
	}
}

// rayBetween walks from a towards b one axis step at a time and returns
// the squares strictly in between, excluding both endpoints. a and b must
// already be known aligned.
func rayBetween(a, b piece.Square) bitboard.Bitboard {
	dr, df := sign(b.Rank()-a.Rank()), sign(b.File()-a.File())
	var bb bitboard.Bitboard
	r, f := a.Rank()+dr, a.File()+df
	for piece.RankFile(r, f) != b {
		bb = bb.Set(piece.RankFile(r, f))
		r, f = r+dr, f+df
	}
	return bb
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
