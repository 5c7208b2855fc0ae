package main

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatrixToGray16DataScalesAndClamps(t *testing.T) {
	m := [][]float64{
		{0.0, 0.5},
		{100.0, math.NaN()},
	}
	img, err := MatrixToGray16Data(m, 4000.0)
	require.NoError(t, err)

	require.Equal(t, color.Gray16{Y: 0}, img.Gray16At(0, 0))
	require.Equal(t, color.Gray16{Y: 2000}, img.Gray16At(1, 0))
	require.Equal(t, color.Gray16{Y: 65535}, img.Gray16At(0, 1), "overflow clamps")
	require.Equal(t, color.Gray16{Y: 0}, img.Gray16At(1, 1), "NaN maps to black")

	_, err = MatrixToGray16Data(nil, 4000.0)
	require.Error(t, err)
	_, err = MatrixToGray16Data(m, 0)
	require.Error(t, err)
	_, err = MatrixToGray16Data([][]float64{{1, 2}, {3}}, 1.0)
	require.Error(t, err, "ragged matrix rejected")
}

func TestInterpolateBilinear(t *testing.T) {
	m := [][]float64{
		{0, 1},
		{2, 3},
	}
	require.InDelta(t, 0.0, interpolate(m, 0, 0), 1e-12)
	require.InDelta(t, 1.5, interpolate(m, 0.5, 0.5), 1e-12)
	require.InDelta(t, 0.5, interpolate(m, 0.5, 0), 1e-12)
	// Clamped outside the grid.
	require.InDelta(t, 0.0, interpolate(m, -5, -5), 1e-12)
}

func TestExtractRowProfileAndPeak(t *testing.T) {
	m := [][]float64{
		{0, 1, 0, 0},
		{0, 5, 1, 0},
		{0, 2, 0, 0},
		{0, 0, 0, 0},
	}
	// The last column clamps just inside the grid, so allow a tiny slack.
	profile := ExtractRowProfile(m, 1)
	require.InDeltaSlice(t, []float64{0, 5, 1, 0}, profile, 1e-6)

	// A fractional row interpolates between rows 1 and 2.
	profile = ExtractRowProfile(m, 1.5)
	require.InDelta(t, 3.5, profile[1], 1e-12)

	row, col := PeakPixel(m)
	require.Equal(t, 1, row)
	require.Equal(t, 1, col)
}
