package optics

import "math/rand"

// Param supplies a scalar element attribute either as a fixed value or as a
// generator drawn from a seeded source. Parameters are resolved exactly once,
// before any element executes, so the numerical pipeline itself stays free of
// randomness: elements only ever see resolved float64 values.
type Param struct {
	value float64
	gen   func(rng *rand.Rand) float64
}

// Fixed returns a parameter that always resolves to v.
func Fixed(v float64) Param { return Param{value: v} }

// Drawn returns a parameter resolved by calling gen with the build-time
// random source.
func Drawn(gen func(rng *rand.Rand) float64) Param { return Param{gen: gen} }

// Uniform returns a parameter drawn uniformly from [lo, hi).
func Uniform(lo, hi float64) Param {
	return Drawn(func(rng *rand.Rand) float64 {
		return lo + (hi-lo)*rng.Float64()
	})
}

// Resolve produces the concrete value for this parameter. rng may be nil for
// fixed parameters.
func (p Param) Resolve(rng *rand.Rand) float64 {
	if p.gen != nil {
		return p.gen(rng)
	}
	return p.value
}
