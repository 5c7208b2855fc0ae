package optics

import (
	"fmt"
	"math"

	"waveoptics/field"
)

// DefaultEpsilon is the floor added to denominators (radii, integrated
// power) so that degenerate inputs scale to zero instead of producing
// non-finite values. It is the single-precision machine epsilon.
const DefaultEpsilon = 1.1920929e-07

// NormalizePower rescales the field amplitude so that the integrated
// intensity equals power, which must be non-negative. A field whose current
// power is numerically zero is left at (near) zero rather than blowing up:
// the squared epsilon floors the denominator at the intensity scale without
// disturbing any physically meaningful power.
func NormalizePower(f *field.Field, power, eps float64) (*field.Field, error) {
	if power < 0 || math.IsNaN(power) {
		return nil, fmt.Errorf("optics: target power %v is not a non-negative number", power)
	}
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	current := math.Max(f.Power(), eps*eps)
	scale := complex(math.Sqrt(power/current), 0)

	out := f.Clone()
	for c := range out.Amplitude {
		for p := range out.Amplitude[c] {
			for y := range out.Amplitude[c][p] {
				for x := range out.Amplitude[c][p][y] {
					out.Amplitude[c][p][y][x] *= scale
				}
			}
		}
	}
	return out, nil
}
