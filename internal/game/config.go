package game

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/cavecrawl/internal/prng"
	"github.com/samdwyer/cavecrawl/internal/tuning"
)

// Config holds game configuration options.
type Config struct {
	// Seed for the first cave. A seed of 0 means one is taken from the clock.
	Seed uint64 `env:"CAVECRAWL_SEED"`
	// TuningPath names a YAML file laid over the built-in tuning.
	TuningPath string `env:"CAVECRAWL_TUNING"`
	// Dump prints one cave and exits instead of starting the terminal UI.
	Dump bool
}

// ParseConfig reads CAVECRAWL_* environment variables, then lets
// command-line flags in args override them.
func ParseConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("cavecrawl", flag.ContinueOnError)
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "cave seed (0 picks one from the clock)")
	fs.StringVar(&cfg.TuningPath, "tuning", cfg.TuningPath, "YAML tuning file")
	fs.BoolVar(&cfg.Dump, "dump", false, "print a generated cave and its digest, then exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// seed returns Seed, or a clock seed when Seed is 0.
func (c Config) seed() uint64 {
	if c.Seed == 0 {
		return prng.SeedFromTime()
	}
	return c.Seed
}

// loadTuning returns the built-in tuning, overlaid with TuningPath if set.
func (c Config) loadTuning() (tuning.Tuning, error) {
	if c.TuningPath == "" {
		return tuning.Default(), nil
	}
	return tuning.Load(c.TuningPath)
}
