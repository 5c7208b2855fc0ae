package optics

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"waveoptics/field"
)

// Propagate applies free-space diffraction over an axial distance Z in a
// medium of refractive index N using the angular-spectrum method. Each
// wavelength channel propagates with its own wavenumber; polarization
// channels do not mix.
//
// Spatial frequencies beyond the propagating band (negative radicand in the
// axial wavenumber) are zeroed: evanescent content is truncated, never
// amplified. With BandLimit set, the transfer function is additionally
// restricted to the frequencies that the grid can sample without aliasing at
// this distance; that mask discards content, so systems needing exact
// round-trip invertibility must leave it off.
type Propagate struct {
	Z         float64
	N         float64
	BandLimit bool
}

func (e *Propagate) Apply(f *field.Field) (*field.Field, error) {
	if e.N <= 0 {
		return nil, fmt.Errorf("optics: refractive index must be positive, got %g", e.N)
	}
	if math.IsNaN(e.Z) || math.IsInf(e.Z, 0) {
		return nil, fmt.Errorf("optics: propagation distance must be finite, got %g", e.Z)
	}

	h, w := f.Height(), f.Width()
	fy := field.FFTFreq(h, f.Dx[0])
	fx := field.FFTFreq(w, f.Dx[1])

	rowFFT := fourier.NewCmplxFFT(w)
	colFFT := fourier.NewCmplxFFT(h)
	scale := complex(1/float64(h*w), 0)

	out := f.Clone()
	transfer := field.MakeComplex2D(h, w)

	for c, lambda := range f.Spectrum {
		e.fillTransfer(transfer, fy, fx, lambda, float64(h)*f.Dx[0], float64(w)*f.Dx[1])

		for p := range out.Amplitude[c] {
			plane := out.Amplitude[c][p]
			fft2InPlace(plane, rowFFT, colFFT, true)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					plane[y][x] *= transfer[y][x]
				}
			}
			fft2InPlace(plane, rowFFT, colFFT, false)
			// Gonum transforms are unnormalized: forward then inverse
			// multiplies by h*w.
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					plane[y][x] *= scale
				}
			}
		}
	}
	return out, nil
}

// fillTransfer writes the angular-spectrum transfer function for one
// wavelength into transfer. ly and lx are the physical grid extents used by
// the optional band limit.
func (e *Propagate) fillTransfer(transfer [][]complex128, fy, fx []float64, lambda, ly, lx float64) {
	k := 2 * math.Pi * e.N / lambda

	// Band limit after Matsushima: the highest frequency whose propagation
	// phase the grid still samples below Nyquist at this distance.
	var fyLim, fxLim float64
	if e.BandLimit {
		fyLim = 1 / (lambda * math.Sqrt(math.Pow(2*e.Z/ly, 2)+1))
		fxLim = 1 / (lambda * math.Sqrt(math.Pow(2*e.Z/lx, 2)+1))
	}

	for y := range fy {
		ky := 2 * math.Pi * fy[y]
		for x := range fx {
			kx := 2 * math.Pi * fx[x]
			radicand := k*k - ky*ky - kx*kx
			if radicand < 0 {
				transfer[y][x] = 0 // evanescent: truncated, not propagated
				continue
			}
			if e.BandLimit && (math.Abs(fy[y]) > fyLim || math.Abs(fx[x]) > fxLim) {
				transfer[y][x] = 0
				continue
			}
			kz := math.Sqrt(radicand)
			transfer[y][x] = cmplx.Exp(complex(0, kz*e.Z))
		}
	}
}

// fft2InPlace runs an unnormalized 2-D transform over the plane, rows then
// columns.
func fft2InPlace(a [][]complex128, rowFFT, colFFT *fourier.CmplxFFT, forward bool) {
	h := len(a)
	w := len(a[0])

	// rows
	tmp := make([]complex128, w)
	for y := 0; y < h; y++ {
		copy(tmp, a[y])
		if forward {
			rowFFT.Coefficients(tmp, tmp)
		} else {
			rowFFT.Sequence(tmp, tmp)
		}
		copy(a[y], tmp)
	}

	// cols
	col := make([]complex128, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = a[y][x]
		}
		if forward {
			colFFT.Coefficients(col, col)
		} else {
			colFFT.Sequence(col, col)
		}
		for y := 0; y < h; y++ {
			a[y][x] = col[y]
		}
	}
}
