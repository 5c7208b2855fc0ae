package optics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"waveoptics/field"
	"waveoptics/optics"
)

func uniformField(t *testing.T, n int, d float64) *field.Field {
	t.Helper()
	f, err := field.New(n, n, [2]float64{d, d}, []float64{heNe}, []float64{1.0}, field.Scalar)
	require.NoError(t, err)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			f.Amplitude[0][0][y][x] = 1
		}
	}
	return f
}

func TestCircularPupilMasksOutsideRadius(t *testing.T) {
	f := uniformField(t, 8, 1.0)

	out, err := optics.CircularPupil(2.5)(f)
	require.NoError(t, err)

	// Center (coordinate 0,0) passes; coordinate (0,3) is outside.
	require.Equal(t, complex128(1), out.Amplitude[0][0][4][4])
	require.Equal(t, complex128(0), out.Amplitude[0][0][4][7])
	// The input field is untouched.
	require.Equal(t, complex128(1), f.Amplitude[0][0][4][7])

	_, err = optics.CircularPupil(0)(f)
	require.Error(t, err)
}

func TestEllipticalPupilRotation(t *testing.T) {
	f := uniformField(t, 8, 1.0)

	// Unrotated: wide along x (diameter 6), narrow along y (diameter 2).
	out, err := optics.EllipticalPupil(2, 6, 0)(f)
	require.NoError(t, err)
	require.Equal(t, complex128(1), out.Amplitude[0][0][4][6]) // (y=0, x=2) inside
	require.Equal(t, complex128(0), out.Amplitude[0][0][6][4]) // (y=2, x=0) outside

	// Rotated 90 degrees the roles swap.
	out, err = optics.EllipticalPupil(2, 6, 90)(f)
	require.NoError(t, err)
	require.Equal(t, complex128(0), out.Amplitude[0][0][4][6])
	require.Equal(t, complex128(1), out.Amplitude[0][0][6][4])
}

func TestPupilTotalOverZeroField(t *testing.T) {
	f, err := field.New(8, 8, [2]float64{1, 1}, []float64{heNe}, []float64{1.0}, field.Scalar)
	require.NoError(t, err)

	out, err := optics.CircularPupil(2.0)(f)
	require.NoError(t, err)
	require.False(t, out.HasNonFinite())
}

func TestNormalizePowerLeavesZeroFieldFinite(t *testing.T) {
	f, err := field.New(8, 8, [2]float64{1, 1}, []float64{heNe}, []float64{1.0}, field.Scalar)
	require.NoError(t, err)

	out, err := optics.NormalizePower(f, 1.0, 0)
	require.NoError(t, err)
	require.False(t, out.HasNonFinite())
	require.InDelta(t, 0.0, out.Power(), 1e-12)
}

func TestNormalizePowerRejectsNegativeTarget(t *testing.T) {
	f, err := field.New(8, 8, [2]float64{1, 1}, []float64{heNe}, []float64{1.0}, field.Scalar)
	require.NoError(t, err)

	_, err = optics.NormalizePower(f, -1.0, 0)
	require.Error(t, err)

	_, err = optics.NormalizePower(f, math.NaN(), 0)
	require.Error(t, err)
}
