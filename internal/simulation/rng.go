package simulation

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// pcgStream fixes the PCG increment so a seed alone selects the stream.
const pcgStream = 0x9e3779b97f4a7c15

// newUniform returns a seeded uniform sampler over [lo, hi]. Every
// simulator call builds its own sampler; nothing is shared between runs.
func newUniform(lo, hi float64, seed int64) distuv.Uniform {
	return distuv.Uniform{
		Min: lo,
		Max: hi,
		Src: rand.NewPCG(uint64(seed), pcgStream),
	}
}
