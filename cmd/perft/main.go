// Perft is a perft tool.
//
// Its purpose is to test, debug and benchmark move generation: it counts
// the number of nodes, captures, en-passant captures, castles and
// promotions reachable from a position at a given depth (usually small,
// 4-7), optionally split one ply deep to help locate a divergence from a
// known-correct engine.
//
// Examples:
//
//	$ perft --fen startpos --max_depth 6
//	$ perft --fen kiwipete --min_depth 1 --max_depth 4 --split 1
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/op/go-logging"

	"github.com/corvidchess/corvid/config"
	"github.com/corvidchess/corvid/notation"
	"github.com/corvidchess/corvid/perft"
	"github.com/corvidchess/corvid/position"
)

var (
	configPath = flag.String("config", "", "path to a TOML config file (optional)")
	fen        = flag.String("fen", "startpos", "position to search, or a fixture name (startpos, kiwipete, position3, max_moves)")
	minDepth   = flag.Int("min_depth", 1, "minimum depth to search (inclusive)")
	maxDepth   = flag.Int("max_depth", 5, "maximum depth to search (inclusive)")
	depth      = flag.Int("depth", 0, "if non-zero, searches only this depth")
	splitDepth = flag.Int("split", 0, "split depth")
)

var log = logging.MustGetLogger("perft")

func setupLogging(level string) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:.4s} %{message}`,
	))
	logging.SetBackend(formatter)
	if lvl, err := logging.LogLevel(level); err == nil {
		logging.SetLevel(lvl, "perft")
	}
}

func main() {
	flag.Parse()

	rt := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot load --config:", err)
			os.Exit(1)
		}
		rt = loaded
	}
	setupLogging(rt.LogLevel)

	var expected []uint64
	resolved := notation.ResolveFEN(*fen)
	for _, f := range notation.Positions() {
		if f.Name == *fen {
			expected = f.Nodes
			break
		}
	}
	if *depth != 0 {
		*minDepth = *depth
		*maxDepth = *depth
	}

	fmt.Printf("Searching FEN %q\n", resolved)
	pos := position.New()
	if err := pos.FromFEN(resolved); err != nil {
		log.Fatalf("cannot parse --fen: %v", err)
	}

	table := perft.NewTable(rt.PerftHashMB * 1024 * 1024 / perft.TableEntrySize)

	fmt.Printf("depth        nodes   captures enpassant castles promotions eval  KNps   elapsed\n")
	fmt.Printf("-----+------------+----------+---------+-------+----------+-----+------+-------\n")

	for d := *minDepth; d <= *maxDepth; d++ {
		start := time.Now()
		var c perft.Counters
		if *splitDepth > 0 {
			var splits []perft.Split
			c, splits = perft.SplitCount(pos, d, *splitDepth, table)
			for _, s := range splits {
				fmt.Printf("      split %-6s nodes %d\n", s.Move, s.Counters.Nodes)
			}
		} else {
			c = perft.Count(pos, d, table)
		}
		duration := time.Since(start)

		ok := ""
		if d < len(expected) {
			if c.Nodes == expected[d] {
				ok = "good"
			} else {
				ok = "bad"
			}
		}

		fmt.Printf("   %2d %12d %10d %9d %7d %10d %-4s %6.f %v\n",
			d, c.Nodes, c.Captures, c.EnPassant, c.Castles, c.Promotions,
			ok, float64(c.Nodes)/duration.Seconds()/1e3, duration)

		if ok == "bad" {
			fmt.Printf("   %2d %12d expected nodes\n", d, expected[d])
			break
		}
	}
}
