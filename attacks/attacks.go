// Package attacks builds the static attack tables the move generator and
// position package consult: leaper tables for pawns, knights and kings,
// magic-bitboard tables for bishops, rooks and queens, and the
// Between/Aligned ray tables used to restrict moves to the check-blocking
// or pin line when a king is in check or a piece is pinned.
//
// Magic numbers and the search procedure that finds them are grounded on
// the fancy-magic-bitboard technique described by Pradyumna Kannan
// (http://www.pradu.us/old/Nov27_2008/Buzz/research/magic/Bitboards.pdf).
package attacks

import (
	"math/rand"

	"github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/piece"
)

var (
	// Pawn holds pawn capture targets indexed by side then square.
	Pawn [piece.SideArraySize][piece.SquareArraySize]bitboard.Bitboard
	// Knight holds knight attack targets indexed by square.
	Knight [piece.SquareArraySize]bitboard.Bitboard
	// King holds king attack targets indexed by square, excluding castling.
	King [piece.SquareArraySize]bitboard.Bitboard
	// Super holds the union of rook and bishop attacks on an empty board,
	// used as a cheap first filter when looking for any attacker of a
	// square (a queen that can't reach sq on an empty board rules out
	// every slider).
	Super [piece.SquareArraySize]bitboard.Bitboard

	rookMagic   [piece.SquareArraySize]magicInfo
	bishopMagic [piece.SquareArraySize]magicInfo

	rookDeltas   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDeltas = [][2]int{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}
)

func init() {
	initLeapers()
	initRookMagic()
	initBishopMagic()
	for sq := piece.SquareMinValue; sq <= piece.SquareMaxValue; sq++ {
		Super[sq] = slidingAttack(sq, rookDeltas, bitboard.Empty) | slidingAttack(sq, bishopDeltas, bitboard.Empty)
	}
	initRays()
}

func jumpAttack(jumps [][2]int, out []bitboard.Bitboard) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			var bb bitboard.Bitboard
			for _, d := range jumps {
				r0, f0 := r+d[0], f+d[1]
				if r0 < 0 || r0 >= 8 || f0 < 0 || f0 >= 8 {
					continue
				}
				bb = bb.Set(piece.RankFile(r0, f0))
			}
			out[piece.RankFile(r, f)] = bb
		}
	}
}

func initLeapers() {
	jumpAttack([][2]int{{1, -1}, {1, 1}}, Pawn[piece.White][:])
	jumpAttack([][2]int{{-1, -1}, {-1, 1}}, Pawn[piece.Black][:])
	jumpAttack([][2]int{
		{-2, -1}, {-2, 1}, {2, -1}, {2, 1},
		{-1, -2}, {-1, 2}, {1, -2}, {1, 2},
	}, Knight[:])
	jumpAttack([][2]int{
		{-1, -1}, {-1, 0}, {-1, 1}, {0, 1},
		{1, 1}, {1, 0}, {1, -1}, {0, -1},
	}, King[:])
}

// slidingAttack computes the attack set of a slider standing on sq moving
// along deltas, stopping at (and including) the first occupied square.
func slidingAttack(sq piece.Square, deltas [][2]int, occupancy bitboard.Bitboard) bitboard.Bitboard {
	r, f := sq.Rank(), sq.File()
	var bb bitboard.Bitboard
	for _, d := range deltas {
		r0, f0 := r, f
		for {
			r0, f0 = r0+d[0], f0+d[1]
			if r0 < 0 || r0 >= 8 || f0 < 0 || f0 >= 8 {
				break
			}
			to := piece.RankFile(r0, f0)
			bb = bb.Set(to)
			if occupancy.Has(to) {
				break
			}
		}
	}
	return bb
}

// Bishop returns the bishop attack set from sq given the board occupancy.
func Bishop(sq piece.Square, occupancy bitboard.Bitboard) bitboard.Bitboard {
	return bishopMagic[sq].attack(occupancy)
}

// Rook returns the rook attack set from sq given the board occupancy.
func Rook(sq piece.Square, occupancy bitboard.Bitboard) bitboard.Bitboard {
	return rookMagic[sq].attack(occupancy)
}

// Queen returns the queen attack set from sq given the board occupancy.
func Queen(sq piece.Square, occupancy bitboard.Bitboard) bitboard.Bitboard {
	return Bishop(sq, occupancy) | Rook(sq, occupancy)
}

func spell(magic uint64, shift uint, bb bitboard.Bitboard) uint {
	mul := magic * uint64(bb)
	return uint(uint32(mul>>32^mul) >> shift)
}

type magicInfo struct {
	store []bitboard.Bitboard
	mask  bitboard.Bitboard
	magic uint64
	shift uint
}

func (mi *magicInfo) attack(occupancy bitboard.Bitboard) bitboard.Bitboard {
	return mi.store[spell(mi.magic, mi.shift, occupancy&mi.mask)]
}

// wizard searches for perfect-hash magic numbers for one slider direction
// set, the same Carry-Rippler-driven approach described by Kannan.
type wizard struct {
	Deltas        [][2]int
	MinShift      uint
	MaxShift      uint
	MaxNumEntries uint
	Rand          *rand.Rand

	magics [piece.SquareArraySize]uint64
	shifts [piece.SquareArraySize]uint

	store     []bitboard.Bitboard
	reference []bitboard.Bitboard
	occupancy []bitboard.Bitboard
}

// mask is the attack set on an empty board minus the board border, since
// a border occupant never changes the slider's reachable set.
func (wiz *wizard) mask(sq piece.Square) bitboard.Bitboard {
	border := (bitboard.RankBB(0) | bitboard.RankBB(7)) &^ bitboard.RankBB(sq.Rank())
	border |= (bitboard.FileBB(0) | bitboard.FileBB(7)) &^ bitboard.FileBB(sq.File())
	return ^border & slidingAttack(sq, wiz.Deltas, bitboard.Empty)
}

func (wiz *wizard) prepare(sq piece.Square) {
	wiz.reference = wiz.reference[:0]
	wiz.occupancy = wiz.occupancy[:0]
	mask := wiz.mask(sq)
	for subset := bitboard.Bitboard(0); ; {
		wiz.reference = append(wiz.reference, subset)
		wiz.occupancy = append(wiz.occupancy, slidingAttack(sq, wiz.Deltas, subset))
		subset = (subset - mask) & mask
		if subset == 0 {
			break
		}
	}
}

func (wiz *wizard) tryMagic(mi *magicInfo, sq piece.Square, magic uint64, shift uint) bool {
	if len(wiz.store) < 1<<shift {
		wiz.store = make([]bitboard.Bitboard, 1<<shift)
	}
	for i := range wiz.store[:1<<shift] {
		wiz.store[i] = 0
	}
	for i, occ := range wiz.reference {
		index := spell(magic, 32-shift, occ)
		if wiz.store[index] != 0 && wiz.store[index] != wiz.occupancy[i] {
			return false
		}
		wiz.store[index] = wiz.occupancy[i]
	}

	wiz.magics[sq] = magic
	wiz.shifts[sq] = shift
	mi.store = make([]bitboard.Bitboard, 1<<shift)
	copy(mi.store, wiz.store)
	mi.mask = wiz.mask(sq)
	mi.magic = magic
	mi.shift = 32 - shift
	return true
}

func (wiz *wizard) randMagic() uint64 {
	r := uint64(wiz.Rand.Int63())
	r &= uint64(wiz.Rand.Int63())
	r &= uint64(wiz.Rand.Int63())
	return r<<6 + 1
}

func (wiz *wizard) searchMagic(sq piece.Square, mi *magicInfo) {
	if wiz.shifts[sq] != 0 && wiz.shifts[sq] <= wiz.MinShift {
		return
	}
	wiz.prepare(sq)
	mask := wiz.mask(sq)
	for i := 0; i < 100 || wiz.shifts[sq] == 0; i++ {
		shift := wiz.MaxShift
		if wiz.shifts[sq] != 0 {
			shift = wiz.shifts[sq] - 1
		}
		var magic uint64
		for bitboard.Bitboard(uint64(mask)*magic).Count() < 6 {
			magic = wiz.randMagic()
		}
		wiz.tryMagic(mi, sq, magic, shift)
	}
}

func (wiz *wizard) searchAll(mi []magicInfo) {
	numEntries := ^uint(0)
	for numEntries > wiz.MaxNumEntries {
		numEntries = 0
		for sq := piece.SquareMinValue; sq <= piece.SquareMaxValue; sq++ {
			wiz.searchMagic(sq, &mi[sq])
			numEntries += 1 << wiz.shifts[sq]
		}
	}
}

func (wiz *wizard) setMagic(mi []magicInfo, sq piece.Square, magic uint64, shift uint) {
	wiz.prepare(sq)
	wiz.tryMagic(&mi[sq], sq, magic, shift)
}

func initRookMagic() {
	wiz := &wizard{
		Deltas: rookDeltas, MinShift: 10, MaxShift: 13, MaxNumEntries: 130000,
		Rand: rand.New(rand.NewSource(1)),
	}

	// A set of known-good magics, carried over from the engine this
	// package was adapted from. searchAll below is a safety net in case
	// any of them turn out not to be perfect hashes.
	wiz.setMagic(rookMagic[:], piece.SquareA1, 36028952711532673, 12)
	wiz.setMagic(rookMagic[:], piece.SquareA2, 5066692388487169, 11)
	wiz.setMagic(rookMagic[:], piece.SquareA3, 4631389266822304769, 11)
	wiz.setMagic(rookMagic[:], piece.SquareA4, 10450310413697025, 11)
	wiz.setMagic(rookMagic[:], piece.SquareA5, 140737496752193, 11)
	wiz.setMagic(rookMagic[:], piece.SquareA6, 4755801345016995841, 11)
	wiz.setMagic(rookMagic[:], piece.SquareA7, 2310346608845258881, 11)
	wiz.setMagic(rookMagic[:], piece.SquareA8, 1153273486052196353, 12)
	wiz.setMagic(rookMagic[:], piece.SquareB1, 14411536674683101313, 11)
	wiz.setMagic(rookMagic[:], piece.SquareB2, 360288245069774977, 10)
	wiz.setMagic(rookMagic[:], piece.SquareB3, 9304436831221219585, 10)
	wiz.setMagic(rookMagic[:], piece.SquareB4, 90107726679507201, 10)
	wiz.setMagic(rookMagic[:], piece.SquareB5, 23081233739161857, 10)
	wiz.setMagic(rookMagic[:], piece.SquareB6, 17610976739329, 10)
	wiz.setMagic(rookMagic[:], piece.SquareB7, 9007201406419201, 10)
	wiz.setMagic(rookMagic[:], piece.SquareB8, 846729215754241, 11)
	wiz.setMagic(rookMagic[:], piece.SquareC1, 576496005395513857, 11)
	wiz.setMagic(rookMagic[:], piece.SquareC2, 2355383154875302401, 10)
	wiz.setMagic(rookMagic[:], piece.SquareC3, 9263904435128516865, 10)
	wiz.setMagic(rookMagic[:], piece.SquareC4, 9223653580555165697, 10)
	wiz.setMagic(rookMagic[:], piece.SquareC5, 216208542045048897, 10)
	wiz.setMagic(rookMagic[:], piece.SquareC6, 2667820173397917761, 10)
	wiz.setMagic(rookMagic[:], piece.SquareC7, 360428707682197761, 10)
	wiz.setMagic(rookMagic[:], piece.SquareC8, 4611695089401765889, 11)
	wiz.setMagic(rookMagic[:], piece.SquareD1, 4604372721729, 11)
	wiz.setMagic(rookMagic[:], piece.SquareD2, 9304436898871644161, 10)
	wiz.setMagic(rookMagic[:], piece.SquareD3, 596726951168704769, 10)
	wiz.setMagic(rookMagic[:], piece.SquareD4, 5190691178076966913, 10)
	wiz.setMagic(rookMagic[:], piece.SquareD5, 4655469687738433, 10)
	wiz.setMagic(rookMagic[:], piece.SquareD6, 5764660368316567553, 10)
	wiz.setMagic(rookMagic[:], piece.SquareD7, 2452350872031592705, 10)
	wiz.setMagic(rookMagic[:], piece.SquareD8, 1153211792858550273, 11)
	wiz.setMagic(rookMagic[:], piece.SquareE1, 36031546200687617, 11)
	wiz.setMagic(rookMagic[:], piece.SquareE2, 144115499663886337, 10)
	wiz.setMagic(rookMagic[:], piece.SquareE3, 288388705826635841, 10)
	wiz.setMagic(rookMagic[:], piece.SquareE4, 74380329532524545, 10)
	wiz.setMagic(rookMagic[:], piece.SquareE5, 4910190248417298433, 10)
	wiz.setMagic(rookMagic[:], piece.SquareE6, 2251851487527425, 10)
	wiz.setMagic(rookMagic[:], piece.SquareE7, 7881299415531649, 10)
	wiz.setMagic(rookMagic[:], piece.SquareE8, 54342271281408001, 11)
	wiz.setMagic(rookMagic[:], piece.SquareF1, 36033197213089793, 11)
	wiz.setMagic(rookMagic[:], piece.SquareF2, 108086941350626369, 10)
	wiz.setMagic(rookMagic[:], piece.SquareF3, 1298162592589676609, 10)
	wiz.setMagic(rookMagic[:], piece.SquareF4, 9269586743957521409, 10)
	wiz.setMagic(rookMagic[:], piece.SquareF5, 140754676613633, 10)
	wiz.setMagic(rookMagic[:], piece.SquareF6, 8859435012, 10)
	wiz.setMagic(rookMagic[:], piece.SquareF7, 105622918137857, 10)
	wiz.setMagic(rookMagic[:], piece.SquareF8, 93452063091195905, 11)
	wiz.setMagic(rookMagic[:], piece.SquareG1, 3848292811265, 11)
	wiz.setMagic(rookMagic[:], piece.SquareG2, 9441796687501985793, 10)
	wiz.setMagic(rookMagic[:], piece.SquareG3, 668793341028205569, 10)
	wiz.setMagic(rookMagic[:], piece.SquareG4, 3503805114303512577, 10)
	wiz.setMagic(rookMagic[:], piece.SquareG5, 1441856117960359937, 10)
	wiz.setMagic(rookMagic[:], piece.SquareG6, 648529410319974401, 10)
	wiz.setMagic(rookMagic[:], piece.SquareG7, 13979322776982393857, 10)
	wiz.setMagic(rookMagic[:], piece.SquareG8, 13835060872780858369, 11)
	wiz.setMagic(rookMagic[:], piece.SquareH1, 4539788820801, 12)
	wiz.setMagic(rookMagic[:], piece.SquareH2, 2359886214407946241, 11)
	wiz.setMagic(rookMagic[:], piece.SquareH3, 27041389040664577, 11)
	wiz.setMagic(rookMagic[:], piece.SquareH4, 159429253169153, 11)
	wiz.setMagic(rookMagic[:], piece.SquareH5, 4613955963706147841, 11)
	wiz.setMagic(rookMagic[:], piece.SquareH6, 4611686019534716929, 11)
	wiz.setMagic(rookMagic[:], piece.SquareH7, 27025995845339137, 11)
	wiz.setMagic(rookMagic[:], piece.SquareH8, 633464726504577, 12)

	wiz.searchAll(rookMagic[:])
}

func initBishopMagic() {
	wiz := &wizard{
		Deltas: bishopDeltas, MinShift: 5, MaxShift: 9, MaxNumEntries: 6000,
		Rand: rand.New(rand.NewSource(1)),
	}
	wiz.searchAll(bishopMagic[:])
}
