package optics

import (
	"errors"
	"math"

	"waveoptics/field"
)

// Pupil is a pluggable field-to-field hook. A source generator invokes its
// pupil once, after the base field has been synthesized and before power
// normalization. Pupils must be total: an all-zero field in must produce a
// valid field out.
type Pupil func(f *field.Field) (*field.Field, error)

// CircularPupil returns a pupil that zeroes the amplitude outside a circle
// of the given radius (in physical units) centered on the grid.
func CircularPupil(radius float64) Pupil {
	return func(f *field.Field) (*field.Field, error) {
		if radius <= 0 {
			return nil, errors.New("optics: pupil radius must be positive")
		}
		return maskField(f, func(y, x float64) bool {
			return math.Sqrt(y*y+x*x) <= radius
		}), nil
	}
}

// EllipticalPupil returns a pupil that passes the interior of an ellipse
// with the given diameters along the y and x axes, rotated counter-clockwise
// by rotationDeg around the grid center.
func EllipticalPupil(yDiam, xDiam, rotationDeg float64) Pupil {
	return func(f *field.Field) (*field.Field, error) {
		if yDiam <= 0 || xDiam <= 0 {
			return nil, errors.New("optics: pupil ellipse diameters must be positive")
		}
		ySemi := yDiam / 2.0
		xSemi := xDiam / 2.0
		theta := rotationDeg * math.Pi / 180.0
		sin, cos := math.Sin(theta), math.Cos(theta)
		return maskField(f, func(y, x float64) bool {
			t1 := (x*cos + y*sin) / xSemi
			t2 := (-x*sin + y*cos) / ySemi
			return t1*t1+t2*t2 <= 1.0
		}), nil
	}
}

// maskField zeroes every sample whose centered grid coordinate fails the
// inside predicate. The mask is common to all wavelength and polarization
// channels.
func maskField(f *field.Field, inside func(y, x float64) bool) *field.Field {
	h, w := f.Height(), f.Width()
	yVals := field.CenteredCoords(h, f.Dx[0])
	xVals := field.CenteredCoords(w, f.Dx[1])

	out := f.Clone()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if inside(yVals[y], xVals[x]) {
				continue
			}
			for c := range out.Amplitude {
				for p := range out.Amplitude[c] {
					out.Amplitude[c][p][y][x] = 0
				}
			}
		}
	}
	return out
}
