// Package config loads an optional talon.toml file that seeds the engine's
// UCI options at startup; values sent via "setoption" always take
// precedence over the file once the engine is running.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/talonchess/talon/internal/search"
)

// File is the on-disk shape of talon.toml.
type File struct {
	Threads int    `toml:"threads"`
	HashMB  int    `toml:"hash_mb"`
	MultiPV int    `toml:"multi_pv"`
	LogPath string `toml:"log_path"`
}

// Load decodes path into a File, falling back to engine defaults for any
// field left unset (zero value).
func Load(path string) (File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, err
	}
	if f.Threads <= 0 {
		f.Threads = 1
	}
	if f.HashMB <= 0 {
		f.HashMB = 16
	}
	if f.MultiPV <= 0 {
		f.MultiPV = 1
	}
	return f, nil
}

// Options converts a loaded File into search.Options.
func (f File) Options() search.Options {
	return search.Options{Threads: f.Threads, HashMB: f.HashMB, MultiPV: f.MultiPV}
}
