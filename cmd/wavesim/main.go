// Command wavesim runs a coherent wave-optics simulation described by a
// JSON5 parameter file: a source, an ordered list of propagation and lens
// stages, and output settings. It reports the total power and peak location
// of the final field, and optionally writes the sensor intensity as a 16-bit
// grayscale PNG and a cross-section intensity plot.
package main

import (
	"fmt"
	"os"
	"time"

	json "github.com/KevinWang15/go-json5"

	"waveoptics/optics"
)

func main() {

	programStart := time.Now()

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: wavesim <parameter-file>")
		os.Exit(1)
	}

	path := args[1]

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w", path, err))
		os.Exit(2)
	}

	// Parse json(5) data into a generic container
	var jsonTable map[string]interface{}
	err = json.Unmarshal(data, &jsonTable)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to parse %q failed: %w", path, err))
		os.Exit(3)
	}

	var spec SimSpec
	msg, ok := validateParamsAndFill(jsonTable, &spec)
	if !ok {
		fmt.Printf("\n\tProblem in parameter file %q: %s\n", path, msg)
		os.Exit(4)
	}

	system := &optics.System{
		Source:   spec.Source,
		Elements: spec.Elements,
	}

	finalField, err := system.Run()
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tSimulation failed: %w", err))
		os.Exit(5)
	}

	intensity := finalField.SensorIntensity()
	row, col := PeakPixel(intensity)

	fmt.Printf("%s\n", spec.Title)
	fmt.Printf("Grid: %d x %d points at %.3g m spacing\n", spec.GridPoints, spec.GridPoints, spec.DxMeters)
	fmt.Printf("Wavelength channels: %d\n", finalField.NumWavelengths())
	fmt.Printf("Total power: %.6g\n", finalField.Power())
	fmt.Printf("Peak intensity %.6g at row %d, col %d\n", intensity[row][col], row, col)
	if finalField.HasNonFinite() {
		fmt.Println("WARNING: field contains non-finite samples")
	}

	if spec.IntensityPNGPath != "" {
		img, err := MatrixToGray16Data(intensity, spec.PNGScale)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tIntensity image build failed: %w", err))
			os.Exit(6)
		}
		if err := SavePNG(spec.IntensityPNGPath, img); err != nil {
			fmt.Println(fmt.Errorf("\n\tIntensity image write failed: %w", err))
			os.Exit(6)
		}
		fmt.Printf("Wrote intensity image to %s\n", spec.IntensityPNGPath)
	}

	if spec.ProfilePlotPath != "" {
		profile := ExtractRowProfile(intensity, spec.ProfileRow)
		if err := MakeProfilePlot(profile, spec.DxMeters, spec.Title, spec.ProfilePlotPath); err != nil {
			fmt.Println(fmt.Errorf("\n\tProfile plot write failed: %w", err))
			os.Exit(7)
		}
		fmt.Printf("Wrote profile plot to %s\n", spec.ProfilePlotPath)
	}

	fmt.Printf("Run time: %v\n", time.Since(programStart))
}
