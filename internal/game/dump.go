package game

import (
	"fmt"
	"io"

	"github.com/samdwyer/cavecrawl/internal/cave"
	"github.com/samdwyer/cavecrawl/internal/prng"
)

// Dump generates the cave for cfg and writes it to out, one row per line
// from y = 0, followed by the seed used and the digest. It needs no terminal.
func Dump(out io.Writer, cfg Config) error {
	t, err := cfg.loadTuning()
	if err != nil {
		return err
	}

	seed := cfg.seed()
	gen := prng.New(seed)
	terrain, stats, err := cave.TryGenerate(t.World.Width, t.World.Height, &gen, t.CaveParams())
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, terrain.String()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "seed %d  digest %016x  attempts %d  floor %d\n",
		seed, terrain.Digest(), stats.Attempts, stats.FloorCells)
	return err
}
