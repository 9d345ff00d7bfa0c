// Random-restart streams.
//
// math/rand.Rand is not goroutine-safe; every fit owns its base stream and
// derives one sub-stream per restart, so a restart's draws do not depend on
// how many draws earlier restarts made.

package fit

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed==0 selects defaultRNGSeed.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// deriveSeed mixes a parent seed and a stream identifier (SplitMix64 finalizer).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// deriveRNG creates an independent stream from base. base.Int63 is consumed
// once so that reusing a stream id still yields a fresh child.
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	parent := defaultRNGSeed
	if base != nil {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// uniformStart returns start with every free entry redrawn uniformly in its
// [min, max]. Bounds must be finite.
func uniformStart(rng *rand.Rand, start []float64, sp space) []float64 {
	x := append([]float64(nil), start...)
	for k, i := range sp.free {
		b := sp.bounds[k]
		x[i] = b.lo + rng.Float64()*(b.hi-b.lo)
	}

	return x
}
