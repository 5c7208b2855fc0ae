// Package field provides the sampled complex wavefront that the optics
// elements pass between each other: amplitude samples on a 2-D grid plus the
// sampling metadata (pixel pitch, wavelengths, spectral weights) needed to
// interpret them as a physical field.
package field

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Polarization channel counts. A scalar field carries a single complex
// amplitude per sample; a vector field carries the three Cartesian
// components of the electric field.
const (
	Scalar = 1
	Vector = 3
)

// Field is a discretized complex wavefront. Amplitude planes are indexed
// [wavelength][pol][row][col]; every plane has the same height and width.
// Height and width must be even so that the discrete frequency grid used by
// the propagation operators is symmetric about zero.
//
// Fields are never mutated in place: every operator consumes a Field and
// returns a new one.
type Field struct {
	Amplitude       [][][][]complex128
	Dx              [2]float64 // sample spacing [dy, dx]
	Spectrum        []float64  // wavelengths, one per wavelength channel
	SpectralDensity []float64  // per-wavelength weight, same length as Spectrum
}

// New allocates a zero-amplitude field of h x w samples with the given
// spacing, spectrum and polarization channel count (Scalar or Vector).
func New(h, w int, dx [2]float64, spectrum, density []float64, pol int) (*Field, error) {
	if h <= 0 || w <= 0 || h%2 != 0 || w%2 != 0 {
		return nil, fmt.Errorf("field: grid must have positive even dimensions, got %d x %d", h, w)
	}
	if dx[0] <= 0 || dx[1] <= 0 {
		return nil, fmt.Errorf("field: sample spacing must be positive, got dy=%g dx=%g", dx[0], dx[1])
	}
	if len(spectrum) < 1 {
		return nil, errors.New("field: spectrum must contain at least one wavelength")
	}
	if len(density) != len(spectrum) {
		return nil, fmt.Errorf("field: spectral density has %d entries for %d wavelengths",
			len(density), len(spectrum))
	}
	for _, lambda := range spectrum {
		if lambda <= 0 {
			return nil, fmt.Errorf("field: wavelengths must be positive, got %g", lambda)
		}
	}
	if pol != Scalar && pol != Vector {
		return nil, fmt.Errorf("field: polarization channel count must be %d or %d, got %d",
			Scalar, Vector, pol)
	}

	amp := make([][][][]complex128, len(spectrum))
	for c := range amp {
		amp[c] = make([][][]complex128, pol)
		for p := range amp[c] {
			amp[c][p] = MakeComplex2D(h, w)
		}
	}
	return &Field{
		Amplitude:       amp,
		Dx:              dx,
		Spectrum:        append([]float64(nil), spectrum...),
		SpectralDensity: append([]float64(nil), density...),
	}, nil
}

// Height returns the number of rows in each amplitude plane.
func (f *Field) Height() int { return len(f.Amplitude[0][0]) }

// Width returns the number of columns in each amplitude plane.
func (f *Field) Width() int { return len(f.Amplitude[0][0][0]) }

// NumWavelengths returns the wavelength channel count.
func (f *Field) NumWavelengths() int { return len(f.Spectrum) }

// NumPol returns the polarization channel count (1 or 3).
func (f *Field) NumPol() int { return len(f.Amplitude[0]) }

// IsScalar reports whether the field has a single polarization channel.
func (f *Field) IsScalar() bool { return f.NumPol() == Scalar }

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	amp := make([][][][]complex128, len(f.Amplitude))
	for c := range f.Amplitude {
		amp[c] = make([][][]complex128, len(f.Amplitude[c]))
		for p := range f.Amplitude[c] {
			plane := make([][]complex128, len(f.Amplitude[c][p]))
			for y := range f.Amplitude[c][p] {
				plane[y] = append([]complex128(nil), f.Amplitude[c][p][y]...)
			}
			amp[c][p] = plane
		}
	}
	return &Field{
		Amplitude:       amp,
		Dx:              f.Dx,
		Spectrum:        append([]float64(nil), f.Spectrum...),
		SpectralDensity: append([]float64(nil), f.SpectralDensity...),
	}
}

// Intensity returns |u|^2 per wavelength channel, summed over polarization
// channels, indexed [wavelength][row][col].
func (f *Field) Intensity() [][][]float64 {
	h, w := f.Height(), f.Width()
	out := make([][][]float64, f.NumWavelengths())
	for c := range f.Amplitude {
		out[c] = make([][]float64, h)
		for y := 0; y < h; y++ {
			out[c][y] = make([]float64, w)
			for x := 0; x < w; x++ {
				var s float64
				for p := range f.Amplitude[c] {
					u := f.Amplitude[c][p][y][x]
					s += real(u)*real(u) + imag(u)*imag(u)
				}
				out[c][y][x] = s
			}
		}
	}
	return out
}

// SensorIntensity returns the spectral-density-weighted sum of the
// per-wavelength intensities: the quantity a panchromatic sensor integrates.
func (f *Field) SensorIntensity() [][]float64 {
	h, w := f.Height(), f.Width()
	intensity := f.Intensity()
	out := make([][]float64, h)
	for y := 0; y < h; y++ {
		out[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			var s float64
			for c := range intensity {
				s += f.SpectralDensity[c] * intensity[c][y][x]
			}
			out[y][x] = s
		}
	}
	return out
}

// Phase returns the argument of the scalar projection of the amplitude
// (the polarization channels summed), indexed [wavelength][row][col].
func (f *Field) Phase() [][][]float64 {
	h, w := f.Height(), f.Width()
	out := make([][][]float64, f.NumWavelengths())
	for c := range f.Amplitude {
		out[c] = make([][]float64, h)
		for y := 0; y < h; y++ {
			out[c][y] = make([]float64, w)
			for x := 0; x < w; x++ {
				var u complex128
				for p := range f.Amplitude[c] {
					u += f.Amplitude[c][p][y][x]
				}
				out[c][y][x] = cmplx.Phase(u)
			}
		}
	}
	return out
}

// Power returns the spatial integral of the intensity, weighted by the
// spectral density and scaled by the dy*dx area element.
func (f *Field) Power() float64 {
	intensity := f.Intensity()
	var total float64
	for c := range intensity {
		var channel float64
		for y := range intensity[c] {
			channel += floats.Sum(intensity[c][y])
		}
		total += f.SpectralDensity[c] * channel
	}
	return total * f.Dx[0] * f.Dx[1]
}

// HasNonFinite reports whether any amplitude sample is NaN or Inf.
func (f *Field) HasNonFinite() bool {
	for c := range f.Amplitude {
		for p := range f.Amplitude[c] {
			for y := range f.Amplitude[c][p] {
				for _, u := range f.Amplitude[c][p][y] {
					if math.IsNaN(real(u)) || math.IsNaN(imag(u)) ||
						math.IsInf(real(u), 0) || math.IsInf(imag(u), 0) {
						return true
					}
				}
			}
		}
	}
	return false
}

// MakeComplex2D allocates an h x w complex matrix.
func MakeComplex2D(h, w int) [][]complex128 {
	m := make([][]complex128, h)
	for i := range m {
		m[i] = make([]complex128, w)
	}
	return m
}
