package optics_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"waveoptics/optics"
)

func TestThinLensIdentityInLongFocalLimit(t *testing.T) {
	f := gaussianField(t, 64, 1e-6, 10e-6)

	lens := &optics.ThinLens{F: 1e6, N: 1.0}
	out, err := lens.Apply(f)
	require.NoError(t, err)

	// With f = 1e6 m the quadratic phase is ~1e-8 rad across this grid.
	requireFieldsClose(t, f, out, maxAbs(f)*1e-6)
}

func TestThinLensApertureTruncation(t *testing.T) {
	const n = 64
	shape, dx := testGrid(n, 1e-5)
	src := &optics.PlaneWave{
		Shape:           shape,
		Dx:              dx,
		Spectrum:        []float64{heNe},
		SpectralDensity: []float64{1.0},
	}
	f, err := src.Generate()
	require.NoError(t, err)

	// Clear aperture radius f*NA/n = 2.5e-4 m against a grid reaching 3.2e-4 m.
	lens := &optics.ThinLens{F: 1e-3, N: 1.0, NA: 0.25}
	out, err := lens.Apply(f)
	require.NoError(t, err)

	radius := lens.F * lens.NA / lens.N
	yVals := make([]float64, n)
	for i := range yVals {
		yVals[i] = float64(i-n/2) * 1e-5
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			// Classify with the squared radii the mask itself compares, so
			// samples on the rim land on the same side in both places.
			rhoSq := yVals[y]*yVals[y] + yVals[x]*yVals[x]
			if rhoSq > radius*radius {
				require.Equal(t, complex128(0), out.Amplitude[0][0][y][x],
					"sample outside the aperture at y=%d x=%d", y, x)
				continue
			}
			// Inside: only the unit-modulus quadratic phase is applied.
			require.InDelta(t,
				cmplx.Abs(f.Amplitude[0][0][y][x]),
				cmplx.Abs(out.Amplitude[0][0][y][x]),
				maxAbs(f)*1e-12)
		}
	}
}

func TestThinLensAppliesQuadraticPhase(t *testing.T) {
	shape, dx := testGrid(32, 1e-6)
	src := &optics.PlaneWave{
		Shape:           shape,
		Dx:              dx,
		Spectrum:        []float64{heNe},
		SpectralDensity: []float64{1.0},
	}
	f, err := src.Generate()
	require.NoError(t, err)

	lens := &optics.ThinLens{F: 5e-3, N: 1.0}
	out, err := lens.Apply(f)
	require.NoError(t, err)

	k := 2 * math.Pi / heNe
	// Sample at grid coordinate (0, 8e-6).
	rhoSq := 8e-6 * 8e-6
	want := -k * rhoSq / (2 * lens.F)
	in := f.Amplitude[0][0][16][24]
	got := cmplx.Phase(out.Amplitude[0][0][16][24] / in)
	require.InDelta(t, want, got, 1e-9)
}

func TestThinLensConfigErrors(t *testing.T) {
	f := gaussianField(t, 16, 1e-6, 5e-6)

	_, err := (&optics.ThinLens{F: 0, N: 1.0}).Apply(f)
	require.Error(t, err, "zero focal length divides by zero in the phase")

	_, err = (&optics.ThinLens{F: math.Inf(1), N: 1.0}).Apply(f)
	require.Error(t, err)

	_, err = (&optics.ThinLens{F: 1e-3, N: 0}).Apply(f)
	require.Error(t, err)

	_, err = (&optics.ThinLens{F: 1e-3, N: 1.0, NA: -0.5}).Apply(f)
	require.Error(t, err)
}
