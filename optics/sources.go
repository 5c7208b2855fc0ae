package optics

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"waveoptics/field"
)

// Source generators synthesize an initial field from closed-form physics,
// apply an optional pupil hook, and normalize the result to a target power.
//
// Common conventions: Power == 0 means the default target of 1.0; a negative
// Power is a configuration error. Polarization == 0 means field.Scalar.
// Amplitude, when non-nil, holds one per-polarization amplitude factor and
// must match the polarization channel count; nil means unit amplitude.

func resolvePower(power float64) (float64, error) {
	if power < 0 {
		return 0, fmt.Errorf("optics: power must be positive, got %g", power)
	}
	if power == 0 {
		return 1.0, nil
	}
	return power, nil
}

func resolvePolarization(pol int) int {
	if pol == 0 {
		return field.Scalar
	}
	return pol
}

func resolveAmplitude(amp []float64, pol int) ([]float64, error) {
	if amp == nil {
		ones := make([]float64, pol)
		for i := range ones {
			ones[i] = 1.0
		}
		return ones, nil
	}
	if len(amp) != pol {
		return nil, fmt.Errorf("optics: %d amplitude components for %d polarization channels",
			len(amp), pol)
	}
	return amp, nil
}

// finishField applies the pupil hook (if any) and normalizes to power.
func finishField(f *field.Field, pupil Pupil, power, eps float64) (*field.Field, error) {
	if pupil != nil {
		var err error
		f, err = pupil(f)
		if err != nil {
			return nil, fmt.Errorf("optics: pupil: %w", err)
		}
	}
	return NormalizePower(f, power, eps)
}

// PointSource generates the field a distance Z from an ideal point emitter
// in a medium of index N: a spherical wave with amplitude falling off as 1/r
// and phase k*r, evaluated on the sampling grid.
type PointSource struct {
	Shape           [2]int
	Dx              [2]float64
	Spectrum        []float64
	SpectralDensity []float64
	Z               float64
	N               float64
	Power           float64
	Amplitude       []float64
	Pupil           Pupil
	Polarization    int
	Epsilon         float64 // floor added to r; 0 means DefaultEpsilon
}

func (s *PointSource) Generate(args ...float64) (*field.Field, error) {
	if len(args) != 0 {
		return nil, errors.New("optics: point source takes no arguments")
	}
	if s.N <= 0 {
		return nil, fmt.Errorf("optics: refractive index must be positive, got %g", s.N)
	}
	power, err := resolvePower(s.Power)
	if err != nil {
		return nil, err
	}
	pol := resolvePolarization(s.Polarization)
	amp, err := resolveAmplitude(s.Amplitude, pol)
	if err != nil {
		return nil, err
	}
	eps := s.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	f, err := field.New(s.Shape[0], s.Shape[1], s.Dx, s.Spectrum, s.SpectralDensity, pol)
	if err != nil {
		return nil, err
	}
	yVals := field.CenteredCoords(s.Shape[0], s.Dx[0])
	xVals := field.CenteredCoords(s.Shape[1], s.Dx[1])

	for c, lambda := range f.Spectrum {
		k := 2 * math.Pi * s.N / lambda
		for y, yv := range yVals {
			for x, xv := range xVals {
				r := math.Sqrt(s.Z*s.Z + yv*yv + xv*xv)
				u := cmplx.Exp(complex(0, k*r)) / complex(r+eps, 0)
				for p := range f.Amplitude[c] {
					f.Amplitude[c][p][y][x] = complex(amp[p], 0) * u
				}
			}
		}
	}
	return finishField(f, s.Pupil, power, eps)
}

// ObjectivePointSource generates the field of a point source defocused by z
// from the focal plane of an ideal objective with focal length F and
// numerical aperture NA: a quadratic defocus phase truncated by the
// objective's clear aperture of radius F*NA/N. The defocus distance is
// supplied per call so one configured source can generate fields at many
// axial offsets.
type ObjectivePointSource struct {
	Shape           [2]int
	Dx              [2]float64
	Spectrum        []float64
	SpectralDensity []float64
	F               float64
	N               float64
	NA              float64
	Power           float64
	Amplitude       []float64
	Offset          [2]float64 // [y, x] source offset in spatial coordinates
	Polarization    int
}

func (s *ObjectivePointSource) Generate(args ...float64) (*field.Field, error) {
	if len(args) != 1 {
		return nil, errors.New("optics: objective point source takes exactly one argument (defocus z)")
	}
	z := args[0]
	if s.F <= 0 {
		return nil, fmt.Errorf("optics: focal length must be positive, got %g", s.F)
	}
	if s.N <= 0 {
		return nil, fmt.Errorf("optics: refractive index must be positive, got %g", s.N)
	}
	if s.NA <= 0 {
		return nil, fmt.Errorf("optics: numerical aperture must be positive, got %g", s.NA)
	}
	power, err := resolvePower(s.Power)
	if err != nil {
		return nil, err
	}
	pol := resolvePolarization(s.Polarization)
	amp, err := resolveAmplitude(s.Amplitude, pol)
	if err != nil {
		return nil, err
	}

	f, err := field.New(s.Shape[0], s.Shape[1], s.Dx, s.Spectrum, s.SpectralDensity, pol)
	if err != nil {
		return nil, err
	}
	yVals := field.CenteredCoords(s.Shape[0], s.Dx[0])
	xVals := field.CenteredCoords(s.Shape[1], s.Dx[1])
	apertureRadius := s.F * s.NA / s.N

	for c, lambda := range f.Spectrum {
		k := 2 * math.Pi * s.N / lambda
		for y, yv := range yVals {
			for x, xv := range xVals {
				yo := yv - s.Offset[0]
				xo := xv - s.Offset[1]
				rhoSq := yo*yo + xo*xo
				if math.Sqrt(rhoSq) > apertureRadius {
					continue // outside the clear aperture; plane stays zero
				}
				phase := -k * z * rhoSq / (2 * s.F * s.F)
				u := cmplx.Exp(complex(0, phase))
				for p := range f.Amplitude[c] {
					f.Amplitude[c][p][y][x] = complex(amp[p], 0) * u
				}
			}
		}
	}
	return finishField(f, nil, power, DefaultEpsilon)
}

// PlaneWave generates a uniform-amplitude field with the linear phase ramp
// ky*y + kx*x given by the transverse wavevector KyKx.
type PlaneWave struct {
	Shape           [2]int
	Dx              [2]float64
	Spectrum        []float64
	SpectralDensity []float64
	Power           float64
	Amplitude       []float64
	KyKx            [2]float64
	Pupil           Pupil
	Polarization    int
}

func (s *PlaneWave) Generate(args ...float64) (*field.Field, error) {
	if len(args) != 0 {
		return nil, errors.New("optics: plane wave takes no arguments")
	}
	power, err := resolvePower(s.Power)
	if err != nil {
		return nil, err
	}
	pol := resolvePolarization(s.Polarization)
	amp, err := resolveAmplitude(s.Amplitude, pol)
	if err != nil {
		return nil, err
	}

	f, err := field.New(s.Shape[0], s.Shape[1], s.Dx, s.Spectrum, s.SpectralDensity, pol)
	if err != nil {
		return nil, err
	}
	fillRampedEnvelope(f, s.Dx, s.KyKx, amp, func(y, x float64) float64 { return 1.0 })
	return finishField(f, s.Pupil, power, DefaultEpsilon)
}

// GaussianPlaneWave generates the waist-plane envelope of a Gaussian beam,
// exp(-(y^2+x^2)/waist^2), multiplied by the plane-wave ramp from KyKx.
// It carries no curvature or divergence: downstream propagation supplies
// those.
type GaussianPlaneWave struct {
	Shape           [2]int
	Dx              [2]float64
	Spectrum        []float64
	SpectralDensity []float64
	Waist           float64
	Power           float64
	Amplitude       []float64
	KyKx            [2]float64
	Pupil           Pupil
	Polarization    int
}

func (s *GaussianPlaneWave) Generate(args ...float64) (*field.Field, error) {
	if len(args) != 0 {
		return nil, errors.New("optics: gaussian plane wave takes no arguments")
	}
	if s.Waist <= 0 {
		return nil, fmt.Errorf("optics: waist must be positive, got %g", s.Waist)
	}
	power, err := resolvePower(s.Power)
	if err != nil {
		return nil, err
	}
	pol := resolvePolarization(s.Polarization)
	amp, err := resolveAmplitude(s.Amplitude, pol)
	if err != nil {
		return nil, err
	}

	f, err := field.New(s.Shape[0], s.Shape[1], s.Dx, s.Spectrum, s.SpectralDensity, pol)
	if err != nil {
		return nil, err
	}
	waistSq := s.Waist * s.Waist
	fillRampedEnvelope(f, s.Dx, s.KyKx, amp, func(y, x float64) float64 {
		return math.Exp(-(y*y + x*x) / waistSq)
	})
	return finishField(f, s.Pupil, power, DefaultEpsilon)
}

// fillRampedEnvelope writes envelope(y, x) * exp(i*(ky*y + kx*x)) into every
// wavelength and polarization plane, scaled by the per-polarization
// amplitudes.
func fillRampedEnvelope(f *field.Field, dx [2]float64, kykx [2]float64, amp []float64, envelope func(y, x float64) float64) {
	yVals := field.CenteredCoords(f.Height(), dx[0])
	xVals := field.CenteredCoords(f.Width(), dx[1])
	for y, yv := range yVals {
		for x, xv := range xVals {
			u := complex(envelope(yv, xv), 0) *
				cmplx.Exp(complex(0, kykx[0]*yv+kykx[1]*xv))
			for c := range f.Amplitude {
				for p := range f.Amplitude[c] {
					f.Amplitude[c][p][y][x] = complex(amp[p], 0) * u
				}
			}
		}
	}
}

// GenericField builds a field directly from caller-supplied amplitude and
// phase planes, indexed [wavelength][pol][row][col] like Field.Amplitude.
// No physics formula is applied: only the pupil hook and power
// normalization.
type GenericField struct {
	Dx              [2]float64
	Spectrum        []float64
	SpectralDensity []float64
	Amplitude       [][][][]float64
	Phase           [][][][]float64
	Power           float64
	Pupil           Pupil
}

func (s *GenericField) Generate(args ...float64) (*field.Field, error) {
	if len(args) != 0 {
		return nil, errors.New("optics: generic field takes no arguments")
	}
	power, err := resolvePower(s.Power)
	if err != nil {
		return nil, err
	}
	if len(s.Amplitude) == 0 || len(s.Amplitude[0]) == 0 {
		return nil, errors.New("optics: generic field needs amplitude planes")
	}
	if len(s.Amplitude) != len(s.Spectrum) {
		return nil, fmt.Errorf("optics: %d amplitude channels for %d wavelengths",
			len(s.Amplitude), len(s.Spectrum))
	}
	pol := len(s.Amplitude[0])

	h := len(s.Amplitude[0][0])
	if h == 0 {
		return nil, errors.New("optics: generic field needs amplitude planes")
	}
	w := len(s.Amplitude[0][0][0])

	f, err := field.New(h, w, s.Dx, s.Spectrum, s.SpectralDensity, pol)
	if err != nil {
		return nil, err
	}
	for c := range s.Amplitude {
		if len(s.Amplitude[c]) != pol || len(s.Phase) != len(s.Amplitude) || len(s.Phase[c]) != pol {
			return nil, errors.New("optics: amplitude and phase plane layouts differ")
		}
		for p := range s.Amplitude[c] {
			if len(s.Amplitude[c][p]) != h || len(s.Phase[c][p]) != h {
				return nil, errors.New("optics: amplitude and phase plane layouts differ")
			}
			for y := 0; y < h; y++ {
				if len(s.Amplitude[c][p][y]) != w || len(s.Phase[c][p][y]) != w {
					return nil, errors.New("optics: amplitude and phase plane layouts differ")
				}
				for x := 0; x < w; x++ {
					f.Amplitude[c][p][y][x] = complex(s.Amplitude[c][p][y][x], 0) *
						cmplx.Exp(complex(0, s.Phase[c][p][y][x]))
				}
			}
		}
	}
	return finishField(f, s.Pupil, power, DefaultEpsilon)
}
