package main

import (
	"fmt"

	"waveoptics/optics"
)

// SimSpec is the fully validated content of a simulation parameter file.
type SimSpec struct {
	Title            string
	GridPoints       int
	DxMeters         float64
	Wavelengths      []float64
	Weights          []float64
	Source           optics.Source
	Elements         []optics.Element
	IntensityPNGPath string
	PNGScale         float64
	ProfilePlotPath  string
	ProfileRow       float64
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asFloatList(v interface{}) ([]float64, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, ok := item.(float64)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// validateParamsAndFill walks the parsed parameter table, applying defaults
// for optional keys, and fills spec. On a problem it returns a message
// naming the offending key and false.
func validateParamsAndFill(jsonTable map[string]interface{}, spec *SimSpec) (string, bool) {
	title, ok := getLeafValue(jsonTable, "title")
	if !ok {
		spec.Title = "wave-optics simulation"
	} else {
		spec.Title, ok = title.(string)
		if !ok {
			return "title: is not a string", false
		}
	}

	gridPoints, ok := getLeafValue(jsonTable, "grid_points")
	if !ok {
		return "grid_points: not found", false
	}
	nPts, ok := gridPoints.(float64)
	if !ok {
		return "grid_points: is not a number", false
	}
	spec.GridPoints = int(nPts)
	if spec.GridPoints <= 0 || spec.GridPoints%2 != 0 {
		return "grid_points: must be a positive even integer", false
	}

	dx, ok := getLeafValue(jsonTable, "dx_meters")
	if !ok {
		return "dx_meters: not found", false
	}
	spec.DxMeters, ok = dx.(float64)
	if !ok {
		return "dx_meters: is not a number", false
	}
	if spec.DxMeters <= 0 {
		return "dx_meters: must be positive", false
	}

	wavelengths, ok := getLeafValue(jsonTable, "wavelengths_meters")
	if !ok {
		return "wavelengths_meters: not found", false
	}
	spec.Wavelengths, ok = asFloatList(wavelengths)
	if !ok || len(spec.Wavelengths) == 0 {
		return "wavelengths_meters: is not a non-empty list of numbers", false
	}

	weights, ok := getLeafValue(jsonTable, "spectral_weights")
	if !ok {
		// Default: equal unit weight per wavelength.
		spec.Weights = make([]float64, len(spec.Wavelengths))
		for i := range spec.Weights {
			spec.Weights[i] = 1.0
		}
	} else {
		spec.Weights, ok = asFloatList(weights)
		if !ok {
			return "spectral_weights: is not a list of numbers", false
		}
		if len(spec.Weights) != len(spec.Wavelengths) {
			return "spectral_weights: length differs from wavelengths_meters", false
		}
	}

	sourceBlock, ok := getLeafValue(jsonTable, "source")
	if !ok {
		return "source: not found", false
	}
	sourceTable, ok := sourceBlock.(map[string]interface{})
	if !ok {
		return "source: is not an object", false
	}
	msg, ok := fillSource(sourceTable, spec)
	if !ok {
		return msg, false
	}

	elementsBlock, ok := getLeafValue(jsonTable, "elements")
	if !ok {
		return "elements: not found", false
	}
	elementList, ok := elementsBlock.([]interface{})
	if !ok {
		return "elements: is not a list", false
	}
	for i, item := range elementList {
		elementTable, ok := item.(map[string]interface{})
		if !ok {
			return fmt.Sprintf("elements[%d]: is not an object", i), false
		}
		msg, ok := appendElement(elementTable, i, spec)
		if !ok {
			return msg, false
		}
	}

	pngPath, ok := getLeafValue(jsonTable, "intensity_png_path")
	if ok {
		spec.IntensityPNGPath, ok = pngPath.(string)
		if !ok {
			return "intensity_png_path: is not a string", false
		}
	}

	pngScale, ok := getLeafValue(jsonTable, "png_scale")
	if !ok {
		spec.PNGScale = 4000.0
	} else {
		spec.PNGScale, ok = pngScale.(float64)
		if !ok {
			return "png_scale: is not a number", false
		}
		if spec.PNGScale <= 0 {
			return "png_scale: must be positive", false
		}
	}

	plotPath, ok := getLeafValue(jsonTable, "profile_plot_path")
	if ok {
		spec.ProfilePlotPath, ok = plotPath.(string)
		if !ok {
			return "profile_plot_path: is not a string", false
		}
	}

	profileRow, ok := getLeafValue(jsonTable, "profile_row")
	if !ok {
		spec.ProfileRow = float64(spec.GridPoints) / 2.0
	} else {
		spec.ProfileRow, ok = profileRow.(float64)
		if !ok {
			return "profile_row: is not a number", false
		}
		if spec.ProfileRow < 0 || spec.ProfileRow > float64(spec.GridPoints-1) {
			return "profile_row: outside the grid", false
		}
	}

	return "No problem found in json file", true
}

func numberOrDefault(table map[string]interface{}, key string, def float64) (float64, string, bool) {
	v, ok := table[key]
	if !ok {
		return def, "", true
	}
	f, ok := v.(float64)
	if !ok {
		return 0, key + ": is not a number", false
	}
	return f, "", true
}

func fillSource(table map[string]interface{}, spec *SimSpec) (string, bool) {
	kindValue, ok := table["kind"]
	if !ok {
		return "source.kind: not found", false
	}
	kind, ok := kindValue.(string)
	if !ok {
		return "source.kind: is not a string", false
	}

	shape := [2]int{spec.GridPoints, spec.GridPoints}
	dx := [2]float64{spec.DxMeters, spec.DxMeters}

	power, msg, ok := numberOrDefault(table, "power", 1.0)
	if !ok {
		return "source." + msg, false
	}
	n, msg, ok := numberOrDefault(table, "n", 1.0)
	if !ok {
		return "source." + msg, false
	}

	switch kind {
	case "gaussian":
		waist, msg, ok := numberOrDefault(table, "waist_meters", 0)
		if !ok {
			return "source." + msg, false
		}
		if waist <= 0 {
			return "source.waist_meters: must be a positive number", false
		}
		ky, msg, ok := numberOrDefault(table, "ky", 0)
		if !ok {
			return "source." + msg, false
		}
		kx, msg, ok := numberOrDefault(table, "kx", 0)
		if !ok {
			return "source." + msg, false
		}
		spec.Source = &optics.GaussianPlaneWave{
			Shape:           shape,
			Dx:              dx,
			Spectrum:        spec.Wavelengths,
			SpectralDensity: spec.Weights,
			Waist:           waist,
			Power:           power,
			KyKx:            [2]float64{ky, kx},
		}

	case "plane":
		ky, msg, ok := numberOrDefault(table, "ky", 0)
		if !ok {
			return "source." + msg, false
		}
		kx, msg, ok := numberOrDefault(table, "kx", 0)
		if !ok {
			return "source." + msg, false
		}
		spec.Source = &optics.PlaneWave{
			Shape:           shape,
			Dx:              dx,
			Spectrum:        spec.Wavelengths,
			SpectralDensity: spec.Weights,
			Power:           power,
			KyKx:            [2]float64{ky, kx},
		}

	case "point":
		z, msg, ok := numberOrDefault(table, "z_meters", 0)
		if !ok {
			return "source." + msg, false
		}
		spec.Source = &optics.PointSource{
			Shape:           shape,
			Dx:              dx,
			Spectrum:        spec.Wavelengths,
			SpectralDensity: spec.Weights,
			Z:               z,
			N:               n,
			Power:           power,
		}

	default:
		return fmt.Sprintf("source.kind: %q is not one of gaussian, plane, point", kind), false
	}
	return "", true
}

func appendElement(table map[string]interface{}, index int, spec *SimSpec) (string, bool) {
	prefix := fmt.Sprintf("elements[%d].", index)

	kindValue, ok := table["kind"]
	if !ok {
		return prefix + "kind: not found", false
	}
	kind, ok := kindValue.(string)
	if !ok {
		return prefix + "kind: is not a string", false
	}

	n, msg, ok := numberOrDefault(table, "n", 1.0)
	if !ok {
		return prefix + msg, false
	}

	switch kind {
	case "propagate":
		zValue, ok := table["z_meters"]
		if !ok {
			return prefix + "z_meters: not found", false
		}
		z, ok := zValue.(float64)
		if !ok {
			return prefix + "z_meters: is not a number", false
		}
		bandLimit := false
		if blValue, ok := table["band_limit"]; ok {
			bandLimit, ok = blValue.(bool)
			if !ok {
				return prefix + "band_limit: is not a bool", false
			}
		}
		spec.Elements = append(spec.Elements, &optics.Propagate{Z: z, N: n, BandLimit: bandLimit})

	case "lens":
		fValue, ok := table["f_meters"]
		if !ok {
			return prefix + "f_meters: not found", false
		}
		f, ok := fValue.(float64)
		if !ok {
			return prefix + "f_meters: is not a number", false
		}
		na, msg, ok := numberOrDefault(table, "na", 0)
		if !ok {
			return prefix + msg, false
		}
		spec.Elements = append(spec.Elements, &optics.ThinLens{F: f, N: n, NA: na})

	default:
		return prefix + fmt.Sprintf("kind: %q is not one of propagate, lens", kind), false
	}
	return "", true
}
