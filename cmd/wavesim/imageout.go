package main

import (
	"errors"
	"image"
	"image/png"
	"math"
	"os"
)

// MatrixToGray16Data converts an intensity matrix to a 16-bit grayscale
// image with fixed physical scaling: Y16 = round(v * scale), clamped to
// [0, 65535]. NaN and Inf samples map to 0.
func MatrixToGray16Data(m [][]float64, scale float64) (*image.Gray16, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, errors.New("empty matrix")
	}
	if scale <= 0 {
		return nil, errors.New("scale must be > 0")
	}
	h := len(m)
	w := len(m[0])
	for y := 1; y < h; y++ {
		if len(m[y]) != w {
			return nil, errors.New("ragged matrix")
		}
	}

	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			v := m[y][x]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				i := row + 2*x
				img.Pix[i], img.Pix[i+1] = 0, 0
				continue
			}

			u := math.Round(v * scale)
			if u < 0 {
				u = 0
			} else if u > 65535 {
				u = 65535
			}
			y16 := uint16(u)
			i := row + 2*x
			img.Pix[i] = uint8(y16 >> 8)
			img.Pix[i+1] = uint8(y16)
		}
	}
	return img, nil
}

func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// interpolate samples the matrix at fractional coordinates using bilinear
// interpolation, clamping at the edges.
func interpolate(matrix [][]float64, x, y float64) float64 {
	h := len(matrix)
	if h == 0 {
		return 0
	}
	w := len(matrix[0])

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= float64(w-1) {
		x = float64(w-1) - 1e-9
	}
	if y >= float64(h-1) {
		y = float64(h-1) - 1e-9
	}

	x0 := int(x)
	y0 := int(y)
	x1 := x0 + 1
	y1 := y0 + 1

	xFrac := x - float64(x0)
	yFrac := y - float64(y0)

	v00 := matrix[y0][x0]
	v01 := matrix[y0][x1]
	v10 := matrix[y1][x0]
	v11 := matrix[y1][x1]

	v0 := v00*(1-xFrac) + v01*xFrac
	v1 := v10*(1-xFrac) + v11*xFrac

	return v0*(1-yFrac) + v1*yFrac
}

// PeakPixel returns the row and column of the largest sample.
func PeakPixel(m [][]float64) (row, col int) {
	best := math.Inf(-1)
	for y := range m {
		for x, v := range m[y] {
			if v > best {
				best = v
				row, col = y, x
			}
		}
	}
	return row, col
}
