package optics_test

import (
	"fmt"
	"log"

	"waveoptics/optics"
)

// Example builds a complete optical system — a Gaussian source, free-space
// propagation to a thin lens, and propagation toward the focus — runs it,
// and inspects the resulting field.
func Example() {
	system := &optics.System{
		Source: &optics.GaussianPlaneWave{
			Shape:           [2]int{256, 256},
			Dx:              [2]float64{1e-6, 1e-6}, // 1 micron sampling
			Spectrum:        []float64{632.8e-9},    // HeNe
			SpectralDensity: []float64{1.0},
			Waist:           50e-6,
			Power:           1.0,
		},
		Elements: []optics.Element{
			&optics.Propagate{Z: 1e-3, N: 1.0},
			&optics.ThinLens{F: 5e-3, N: 1.0, NA: 0.5},
			&optics.Propagate{Z: 1e-3, N: 1.0},
		},
	}

	field, err := system.Run()
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}

	intensity := field.SensorIntensity()
	peakY, peakX := 0, 0
	best := -1.0
	for y := range intensity {
		for x, v := range intensity[y] {
			if v > best {
				best = v
				peakY, peakX = y, x
			}
		}
	}

	fmt.Printf("total power: %.3f\n", field.Power())
	fmt.Printf("peak at row %d, col %d\n", peakY, peakX)
	fmt.Printf("finite: %v\n", !field.HasNonFinite())
	// Output:
	// total power: 1.000
	// peak at row 128, col 128
	// finite: true
}
