// Package position implements the Position value type: bitboards plus a
// mailbox array, side to move, castling rights, en-passant file, move
// clocks, the incremental Zobrist hash, and the checkers/pinned-pieces
// bitboards the move generator consults.
//
// Position is immutable from the caller's perspective: Apply produces a
// fresh Position rather than mutating the receiver, generalizing the
// reference engine's mutable DoMove/UndoMove pair (engine/position.go) to
// the value-oriented lifecycle this module uses instead of an undo stack.
package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvidchess/corvid/attacks"
	"github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/move"
	"github.com/corvidchess/corvid/piece"
	"github.com/corvidchess/corvid/zobrist"
)

// Position encodes one point in a chess game.
type Position struct {
	ByType  [piece.PieceTypeArraySize]bitboard.Bitboard
	ByColor [piece.SideArraySize]bitboard.Bitboard
	Mailbox [piece.SquareArraySize]piece.Piece

	SideToMove    piece.Side
	Castling      piece.Castle
	EnPassantFile uint8 // piece.NoEnPassantFile when no capture is possible

	HalfMoveClock  int
	FullMoveNumber int

	Hash     uint64
	Checkers bitboard.Bitboard
	Pinned   bitboard.Bitboard
}

// lostCastleRights[sq] is the set of castling rights forfeited when a
// piece moves from or to sq (a king or rook leaving its home square, or a
// rook being captured on its home square).
var lostCastleRights [piece.SquareArraySize]piece.Castle

func init() {
	lostCastleRights[piece.SquareA1] = piece.WhiteOOO
	lostCastleRights[piece.SquareE1] = piece.WhiteOOO | piece.WhiteOO
	lostCastleRights[piece.SquareH1] = piece.WhiteOO
	lostCastleRights[piece.SquareA8] = piece.BlackOOO
	lostCastleRights[piece.SquareE8] = piece.BlackOOO | piece.BlackOO
	lostCastleRights[piece.SquareH8] = piece.BlackOO
}

// New returns an empty position: no pieces, white to move, no castling
// rights, no en-passant file. It is not a legal chess position on its own
// — callers build one up via Put or parse one via FromFEN.
func New() *Position {
	pos := &Position{EnPassantFile: piece.NoEnPassantFile}
	return pos
}

// Clear resets pos to the same empty state New returns.
func (pos *Position) Clear() {
	*pos = Position{EnPassantFile: piece.NoEnPassantFile}
}

// occupancy returns the set of all occupied squares.
func (pos *Position) occupancy() bitboard.Bitboard {
	return pos.ByColor[piece.White] | pos.ByColor[piece.Black]
}

// ByPiece returns the squares occupied by side's pt pieces.
func (pos *Position) ByPiece(side piece.Side, pt piece.PieceType) bitboard.Bitboard {
	return pos.ByColor[side] & pos.ByType[pt]
}

// Get returns the piece standing on sq, or piece.NoPiece.
func (pos *Position) Get(sq piece.Square) piece.Piece {
	return pos.Mailbox[sq]
}

// IsEmpty reports whether no piece stands on sq.
func (pos *Position) IsEmpty(sq piece.Square) bool {
	return pos.Mailbox[sq] == piece.NoPiece
}

// Put places pi on sq, updating the bitboards, mailbox and hash. Does
// nothing if pi is NoPiece. Does not validate that sq is actually empty.
func (pos *Position) Put(sq piece.Square, pi piece.Piece) {
	if pi == piece.NoPiece {
		return
	}
	pos.Mailbox[sq] = pi
	pos.ByType[pi.Type()] |= bitboard.Of(sq)
	pos.ByColor[pi.Side()] |= bitboard.Of(sq)
	pos.Hash ^= zobrist.OfPiece(pi, sq)
}

// Remove takes pi off sq. Does nothing if pi is NoPiece. Does not
// validate that pi actually stands on sq.
func (pos *Position) Remove(sq piece.Square, pi piece.Piece) {
	if pi == piece.NoPiece {
		return
	}
	pos.Mailbox[sq] = piece.NoPiece
	pos.ByType[pi.Type()] &^= bitboard.Of(sq)
	pos.ByColor[pi.Side()] &^= bitboard.Of(sq)
	pos.Hash ^= zobrist.OfPiece(pi, sq)
}

// EnPassantSquare returns the square a pawn could capture en passant to,
// and whether one currently exists.
func (pos *Position) EnPassantSquare() (piece.Square, bool) {
	if pos.EnPassantFile == piece.NoEnPassantFile {
		return 0, false
	}
	rank := 5
	if pos.SideToMove == piece.Black {
		rank = 2
	}
	return piece.RankFile(rank, int(pos.EnPassantFile)), true
}

func (pos *Position) setEnPassantFile(f uint8) {
	pos.Hash ^= zobrist.EnPassantFile[pos.EnPassantFile]
	pos.EnPassantFile = f
	pos.Hash ^= zobrist.EnPassantFile[pos.EnPassantFile]
}

func (pos *Position) setCastling(c piece.Castle) {
	if c == pos.Castling {
		return
	}
	pos.Hash ^= zobrist.Castle[pos.Castling]
	pos.Castling = c
	pos.Hash ^= zobrist.Castle[pos.Castling]
}

func (pos *Position) setSideToMove(s piece.Side) {
	if pos.SideToMove == piece.White {
		pos.Hash ^= zobrist.SideToMove
	}
	pos.SideToMove = s
	if pos.SideToMove == piece.White {
		pos.Hash ^= zobrist.SideToMove
	}
}

// AttackersTo returns the squares from which a piece of bySide attacks
// sq, given board occupancy occ. occ is a parameter rather than always
// being pos's own occupancy so callers can probe hypothetical boards,
// e.g. with the king square removed while testing a king move.
func (pos *Position) AttackersTo(sq piece.Square, bySide piece.Side, occ bitboard.Bitboard) bitboard.Bitboard {
	var attackers bitboard.Bitboard
	attackers |= attacks.Pawn[bySide.Opposite()][sq] & pos.ByPiece(bySide, piece.Pawn)
	attackers |= attacks.Knight[sq] & pos.ByPiece(bySide, piece.Knight)
	attackers |= attacks.King[sq] & pos.ByPiece(bySide, piece.King)
	attackers |= attacks.Bishop(sq, occ) & (pos.ByPiece(bySide, piece.Bishop) | pos.ByPiece(bySide, piece.Queen))
	attackers |= attacks.Rook(sq, occ) & (pos.ByPiece(bySide, piece.Rook) | pos.ByPiece(bySide, piece.Queen))
	return attackers
}

// IsAttacked reports whether any of bySide's pieces attack sq on the
// current board.
func (pos *Position) IsAttacked(sq piece.Square, bySide piece.Side) bool {
	return pos.AttackersTo(sq, bySide, pos.occupancy()) != 0
}

// RecomputeCheckersAndPins recomputes pos.Checkers and pos.Pinned from
// scratch. Must be called whenever the board changes outside of Apply
// (e.g. right after FEN parsing).
func (pos *Position) RecomputeCheckersAndPins() {
	us, them := pos.SideToMove, pos.SideToMove.Opposite()
	kingBB := pos.ByPiece(us, piece.King)
	if kingBB == 0 {
		pos.Checkers, pos.Pinned = 0, 0
		return
	}
	kingSq := kingBB.AsSquare()
	occ := pos.occupancy()

	pos.Checkers = pos.AttackersTo(kingSq, them, occ)

	var pinned bitboard.Bitboard
	diagPinners := (pos.ByPiece(them, piece.Bishop) | pos.ByPiece(them, piece.Queen)) & attacks.Bishop(kingSq, bitboard.Empty)
	orthPinners := (pos.ByPiece(them, piece.Rook) | pos.ByPiece(them, piece.Queen)) & attacks.Rook(kingSq, bitboard.Empty)
	for pinners := diagPinners | orthPinners; pinners != 0; {
		sq := pinners.Pop()
		between := attacks.Between[kingSq][sq] &^ bitboard.Of(sq) & occ
		if between.Count() == 1 && pos.ByColor[us].Has(between.AsSquare()) {
			pinned |= between
		}
	}
	pos.Pinned = pinned
}

// InCheck reports whether the side to move's king is in check.
func (pos *Position) InCheck() bool {
	return pos.Checkers != 0
}

// PolyglotKey returns pos.Hash with the en-passant key XORed out unless
// some pawn of the side to move could actually capture en passant —
// matching the PolyGlot book-key definition.
func (pos *Position) PolyglotKey() uint64 {
	key := pos.Hash
	sq, ok := pos.EnPassantSquare()
	if !ok {
		return key
	}
	if pos.ByPiece(pos.SideToMove, piece.Pawn)&attacks.Pawn[pos.SideToMove.Opposite()][sq] == 0 {
		key ^= zobrist.EnPassantFile[pos.EnPassantFile]
	}
	return key
}

// KeyAfter returns the Zobrist hash the position would have after m,
// without constructing the resulting Position. Only the side-to-move key
// is guaranteed correct relative to a plain incremental XOR; callers that
// need the exact post-move hash (including en-passant/castling updates)
// should call Apply and read Hash from the result.
func (pos *Position) KeyAfter(m move.Move) uint64 {
	key := pos.Hash ^ zobrist.SideToMove
	pi := pos.Get(m.Src())
	key ^= zobrist.OfPiece(pi, m.Src())
	key ^= zobrist.OfPiece(pi, m.Dst())
	if cap := pos.Get(m.Dst()); cap != piece.NoPiece {
		key ^= zobrist.OfPiece(cap, m.Dst())
	}
	return key
}

// String renders pos in FEN.
func (pos *Position) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pi := pos.Get(piece.RankFile(r, f))
			if pi == piece.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pi.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if pos.SideToMove == piece.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(pos.Castling.String())

	sb.WriteByte(' ')
	if sq, ok := pos.EnPassantSquare(); ok {
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.FullMoveNumber))
	return sb.String()
}

var symbolToPieceType = map[byte]piece.PieceType{
	'p': piece.Pawn, 'n': piece.Knight, 'b': piece.Bishop,
	'r': piece.Rook, 'q': piece.Queen, 'k': piece.King,
}

var symbolToCastle = map[byte]piece.Castle{
	'K': piece.WhiteOO, 'Q': piece.WhiteOOO, 'k': piece.BlackOO, 'q': piece.BlackOOO,
}

// StartFEN is the FEN for the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenAliases maps literal names FromFEN accepts in place of a FEN string.
// notation.ResolveFEN shares this table so the core library and its
// callers agree on what "startpos" means without duplicating the FEN.
var fenAliases = map[string]string{
	"startpos": StartFEN,
}

// Alias returns the FEN fenAliases maps name to, if any.
func Alias(name string) (string, bool) {
	fen, ok := fenAliases[name]
	return fen, ok
}

// FromFEN parses a FEN string into pos, which must have been freshly
// constructed via New or Clear. The literal string "startpos" is accepted
// in place of a FEN. The trailing halfmove-clock and fullmove-number
// fields are optional and default to 0 and 1 when omitted. On any parse
// error, pos is left in its Clear() state and the error is returned —
// fail-clear, so a caller never observes a partially populated position
// either way.
func (pos *Position) FromFEN(fen string) error {
	if alias, ok := fenAliases[fen]; ok {
		fen = alias
	}

	fields := strings.Fields(fen)
	if len(fields) != 4 && len(fields) != 6 {
		pos.Clear()
		return fmt.Errorf("position: fen %q: want 4 or 6 fields, got %d", fen, len(fields))
	}

	var tmp Position
	tmp.EnPassantFile = piece.NoEnPassantFile

	if err := parsePiecePlacement(fields[0], &tmp); err != nil {
		pos.Clear()
		return err
	}
	switch fields[1] {
	case "w":
		tmp.SideToMove = piece.White
		tmp.Hash ^= zobrist.SideToMove
	case "b":
		tmp.SideToMove = piece.Black
	default:
		pos.Clear()
		return fmt.Errorf("position: fen %q: bad side to move %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			c, ok := symbolToCastle[fields[2][i]]
			if !ok {
				pos.Clear()
				return fmt.Errorf("position: fen %q: bad castling rights %q", fen, fields[2])
			}
			tmp.Castling |= c
		}
	}
	tmp.Hash ^= zobrist.Castle[tmp.Castling]

	if fields[3] != "-" {
		sq, err := piece.SquareFromString(fields[3])
		if err != nil {
			pos.Clear()
			return fmt.Errorf("position: fen %q: bad en passant square %q", fen, fields[3])
		}
		tmp.EnPassantFile = uint8(sq.File())
	}
	tmp.Hash ^= zobrist.EnPassantFile[tmp.EnPassantFile]

	tmp.HalfMoveClock = 0
	tmp.FullMoveNumber = 1
	if len(fields) == 6 {
		halfMove, err := strconv.Atoi(fields[4])
		if err != nil {
			pos.Clear()
			return fmt.Errorf("position: fen %q: bad halfmove clock: %w", fen, err)
		}
		tmp.HalfMoveClock = halfMove

		fullMove, err := strconv.Atoi(fields[5])
		if err != nil {
			pos.Clear()
			return fmt.Errorf("position: fen %q: bad fullmove number: %w", fen, err)
		}
		tmp.FullMoveNumber = fullMove
	}

	tmp.RecomputeCheckersAndPins()
	*pos = tmp
	return nil
}

func parsePiecePlacement(s string, pos *Position) error {
	r, f := 7, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '/':
			if f != 8 {
				return fmt.Errorf("position: piece placement %q: short rank", s)
			}
			r--
			f = 0
		case '1' <= c && c <= '8':
			f += int(c - '0')
		default:
			pt, ok := symbolToPieceType[c|0x20]
			if !ok {
				return fmt.Errorf("position: piece placement %q: bad piece %q", s, c)
			}
			side := piece.White
			if c|0x20 == c {
				side = piece.Black
			}
			if r < 0 || f > 7 {
				return fmt.Errorf("position: piece placement %q: out of bounds", s)
			}
			pos.Put(piece.RankFile(r, f), piece.New(side, pt))
			f++
		}
	}
	if r != 0 || f != 8 {
		return fmt.Errorf("position: piece placement %q: wrong number of ranks", s)
	}
	return nil
}
