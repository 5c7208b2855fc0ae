package main

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

// ExtractRowProfile samples the intensity matrix along a horizontal line at
// the (possibly fractional) row, one sample per column.
func ExtractRowProfile(m [][]float64, row float64) []float64 {
	if len(m) == 0 {
		return nil
	}
	w := len(m[0])
	profile := make([]float64, w)
	for x := 0; x < w; x++ {
		profile[x] = interpolate(m, float64(x), row)
	}
	return profile
}

// MakeProfilePlot writes a plot of the intensity profile against the
// transverse coordinate in microns.
func MakeProfilePlot(profile []float64, dxMeters float64, title, path string) error {
	p := plot.New()

	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)

	p.Title.Text = title
	p.X.Label.Text = "transverse position (microns)"
	p.Y.Label.Text = "intensity"

	n := len(profile)
	half := n / 2
	span := float64(n) * dxMeters * 1e6

	p.X.Tick.Marker = StepTicks{Step: span / 10, Format: "%.1f"}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = float64(i-half) * dxMeters * 1e6
		pts[i].Y = profile[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 0, G: 0, B: 255, A: 255} // blue
	p.Add(line)

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
