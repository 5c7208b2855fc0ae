package field

// Linspace This is provided to match numpy's linspace()
func Linspace(start, end float64, n int) []float64 {
	if n <= 1 {
		return []float64{start}
	}

	step := (end - start) / float64(n-1)

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = start + float64(i)*step
	}
	return x
}

// CenteredCoords returns the n sample coordinates x_i = (i - n/2) * d.
// With even n the zero coordinate falls exactly on sample n/2, which keeps
// spatial masks and phase profiles symmetric under the discrete Fourier
// transforms used for propagation.
func CenteredCoords(n int, d float64) []float64 {
	x := make([]float64, n)
	half := n / 2
	for i := 0; i < n; i++ {
		x[i] = float64(i-half) * d
	}
	return x
}

// FFTFreq returns the two-sided discrete sample frequencies for an n-point
// transform with sample spacing d, in the standard order: non-negative
// frequencies first, then the negative frequencies.
func FFTFreq(n int, d float64) []float64 {
	f := make([]float64, n)
	for i := 0; i < n; i++ {
		if i < (n+1)/2 {
			f[i] = float64(i) / (float64(n) * d)
		} else {
			f[i] = float64(i-n) / (float64(n) * d)
		}
	}
	return f
}
