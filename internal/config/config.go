// Package config loads the optional .wodcrc.toml convenience file that
// carries default CLI settings, adapted from busoc-assist's settings.go
// (the flat TOML-tagged settings struct; its Duration wrapper is not
// carried over) and main.go's loadFromConfig (github.com/midbel/toml
// DecodeFile into a struct, then distribute its fields to the caller).
package config

import (
	"os"

	"github.com/midbel/toml"
)

// Config is the decoded form of an optional .wodcrc.toml. The CLI
// driver applies only Verbose; Track, Gender, Catalog and Format are
// decoded but do not change any flag default.
type Config struct {
	Track   string `toml:"track"`
	Gender  string `toml:"gender"`
	Catalog string `toml:"catalog"`
	Format  string `toml:"format"`
	Verbose bool   `toml:"verbose"`
}

// DefaultPath is the filename Load falls back to when the caller does
// not pass an explicit --config path.
const DefaultPath = ".wodcrc.toml"

// Load decodes path into a Config. A missing file at the default path
// is not an error (the convenience layer is opt-in); a missing file at
// an explicitly-requested path is.
func Load(path string, explicit bool) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, err
	}
	var c Config
	if err := toml.DecodeFile(path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
