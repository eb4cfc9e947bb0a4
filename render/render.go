// Package render draws a Position as an SVG board diagram using
// github.com/ajstarks/svgo, the way barakmich/chess produces its board
// images. It is a pure presentation layer: it reads only
// Position.Mailbox and has no effect on, or
// dependency from, core move-generation semantics.
package render

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/corvidchess/corvid/piece"
	"github.com/corvidchess/corvid/position"
)

const squareSize = 48
const boardSize = squareSize * 8

var glyph = map[piece.Piece]string{
	piece.New(piece.White, piece.Pawn):   "♙",
	piece.New(piece.White, piece.Knight): "♘",
	piece.New(piece.White, piece.Bishop): "♗",
	piece.New(piece.White, piece.Rook):   "♖",
	piece.New(piece.White, piece.Queen):  "♕",
	piece.New(piece.White, piece.King):   "♔",
	piece.New(piece.Black, piece.Pawn):   "♟",
	piece.New(piece.Black, piece.Knight): "♞",
	piece.New(piece.Black, piece.Bishop): "♝",
	piece.New(piece.Black, piece.Rook):   "♜",
	piece.New(piece.Black, piece.Queen):  "♛",
	piece.New(piece.Black, piece.King):   "♚",
}

const (
	lightSquare = "#eeeed2"
	darkSquare  = "#769656"
)

// WriteSVG draws pos to w as an 8x8 SVG board, white at the bottom,
// light/dark squares colored conventionally, and a unicode glyph per
// occupied square.
func WriteSVG(w io.Writer, pos *position.Position) {
	canvas := svg.New(w)
	canvas.Start(boardSize, boardSize)
	defer canvas.End()

	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			sq := piece.RankFile(r, f)
			x := f * squareSize
			y := (7 - r) * squareSize

			color := lightSquare
			if (r+f)%2 == 0 {
				color = darkSquare
			}
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+color)

			pi := pos.Get(sq)
			if pi == piece.NoPiece {
				continue
			}
			canvas.Text(x+squareSize/2, y+squareSize*3/4, glyph[pi],
				"text-anchor:middle;font-size:32px")
		}
	}
}
