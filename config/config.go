// Package config loads runtime tunables for the perft driver binary from
// an optional TOML file, via github.com/BurntSushi/toml. The core engine
// packages (position, movegen, perft, ...) take no dependency on this
// package or on logging — only cmd/perft does, matching the reference
// engine's main wiring its own config before constructing anything else.
package config

import (
	"github.com/BurntSushi/toml"
)

// Runtime holds the settings cmd/perft reads before it builds the perft
// hash table and configures logging.
type Runtime struct {
	// PerftHashMB sizes the perft transposition table, in megabytes of
	// hashEntry-sized slots.
	PerftHashMB int `toml:"perft_hash_mb"`
	// LogLevel names a github.com/op/go-logging level: CRITICAL, ERROR,
	// WARNING, NOTICE, INFO or DEBUG.
	LogLevel string `toml:"log_level"`
}

// Default returns the settings used when no config file is given.
func Default() Runtime {
	return Runtime{
		PerftHashMB: 64,
		LogLevel:    "NOTICE",
	}
}

// Load decodes path into Default()'s values, path fields overriding the
// defaults they set.
func Load(path string) (Runtime, error) {
	rt := Default()
	_, err := toml.DecodeFile(path, &rt)
	return rt, err
}
