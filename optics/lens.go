package optics

import (
	"fmt"
	"math"
	"math/cmplx"

	"waveoptics/field"
)

// ThinLens multiplies the field by the paraxial thin-lens transmission
// exp(-i*k*rho^2/(2F)) with k = 2*pi*N/lambda. A positive NA adds a binary
// aperture of radius F*NA/N modeling the finite clear aperture; NA == 0
// leaves the lens unapertured. As F grows the phase vanishes, so a very long
// focal length approaches the identity without any special casing.
type ThinLens struct {
	F  float64
	N  float64
	NA float64
}

func (e *ThinLens) Apply(f *field.Field) (*field.Field, error) {
	if e.F == 0 || math.IsNaN(e.F) || math.IsInf(e.F, 0) {
		return nil, fmt.Errorf("optics: focal length must be finite and non-zero, got %g", e.F)
	}
	if e.N <= 0 {
		return nil, fmt.Errorf("optics: refractive index must be positive, got %g", e.N)
	}
	if e.NA < 0 {
		return nil, fmt.Errorf("optics: numerical aperture must not be negative, got %g", e.NA)
	}

	h, w := f.Height(), f.Width()
	yVals := field.CenteredCoords(h, f.Dx[0])
	xVals := field.CenteredCoords(w, f.Dx[1])

	var apertureRadiusSq float64
	if e.NA > 0 {
		r := e.F * e.NA / e.N
		apertureRadiusSq = r * r
	}

	out := f.Clone()
	for c, lambda := range f.Spectrum {
		k := 2 * math.Pi * e.N / lambda
		for y, yv := range yVals {
			for x, xv := range xVals {
				rhoSq := yv*yv + xv*xv
				if e.NA > 0 && rhoSq > apertureRadiusSq {
					for p := range out.Amplitude[c] {
						out.Amplitude[c][p][y][x] = 0
					}
					continue
				}
				t := cmplx.Exp(complex(0, -k*rhoSq/(2*e.F)))
				for p := range out.Amplitude[c] {
					out.Amplitude[c][p][y][x] *= t
				}
			}
		}
	}
	return out, nil
}
