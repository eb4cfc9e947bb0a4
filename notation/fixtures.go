// Package notation resolves the things a human or a script names a
// position or a move by: short aliases like "startpos" and "kiwipete"
// standing in for a literal FEN, and long algebraic strings like
// "e7e8q" resolved against a Position's own legal moves.
//
// The named perft fixture positions and the hash transposition checks
// it exercises are loaded from an embedded YAML fixture via
// gopkg.in/yaml.v3 (used the same way by judwhite-lichess-bot,
// blunext-chess and herohde-morlock in the retrieved corpus) rather
// than being typed twice, once as Go literals and once as test
// assertions.
package notation

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed testdata/fixtures.yaml
var fixturesYAML []byte

// PerftFixture names a position and the node counts Count is known to
// produce for it, depth 0 first.
type PerftFixture struct {
	Name  string   `yaml:"name"`
	FEN   string   `yaml:"fen"`
	Nodes []uint64 `yaml:"nodes"`
}

// TranspositionFixture names two or more move orders which, played from
// a named position, must reach positions whose hashes are identical.
type TranspositionFixture struct {
	Name       string     `yaml:"name"`
	From       string     `yaml:"from"`
	MoveOrders [][]string `yaml:"move_orders"`
}

type fixtureFile struct {
	Positions      []PerftFixture         `yaml:"positions"`
	Transpositions []TranspositionFixture `yaml:"transpositions"`
}

var fixtures = mustLoadFixtures()

func mustLoadFixtures() fixtureFile {
	var f fixtureFile
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		panic(fmt.Sprintf("notation: parsing embedded fixtures: %v", err))
	}
	return f
}

// Positions returns the named perft fixture positions, in file order.
func Positions() []PerftFixture { return fixtures.Positions }

// Transpositions returns the move-order transposition fixtures.
func Transpositions() []TranspositionFixture { return fixtures.Transpositions }
