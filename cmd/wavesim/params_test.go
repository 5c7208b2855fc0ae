package main

import (
	"testing"

	json "github.com/KevinWang15/go-json5"
	"github.com/stretchr/testify/require"

	"waveoptics/optics"
)

const goodParams = `
// comment to exercise the json5 parser
{
    title: "lens test bench",
    grid_points: 64,
    dx_meters: 1e-6,
    wavelengths_meters: [632.8e-9],
    source: { kind: "gaussian", waist_meters: 10e-6 },
    elements: [
        { kind: "propagate", z_meters: 1e-3, n: 1.0 },
        { kind: "lens", f_meters: 5e-3, n: 1.0, na: 0.5 },
    ],
    profile_row: 32,
}`

func parseTable(t *testing.T, text string) map[string]interface{} {
	t.Helper()
	var jsonTable map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &jsonTable))
	return jsonTable
}

func TestValidateParamsFillsSpec(t *testing.T) {
	var spec SimSpec
	msg, ok := validateParamsAndFill(parseTable(t, goodParams), &spec)
	require.True(t, ok, msg)

	require.Equal(t, "lens test bench", spec.Title)
	require.Equal(t, 64, spec.GridPoints)
	require.Equal(t, 1e-6, spec.DxMeters)
	require.Equal(t, []float64{632.8e-9}, spec.Wavelengths)
	require.Equal(t, []float64{1.0}, spec.Weights, "weights default to 1.0 per wavelength")
	require.IsType(t, &optics.GaussianPlaneWave{}, spec.Source)
	require.Len(t, spec.Elements, 2)
	require.IsType(t, &optics.Propagate{}, spec.Elements[0])
	require.IsType(t, &optics.ThinLens{}, spec.Elements[1])
	require.Equal(t, 32.0, spec.ProfileRow)
	require.Equal(t, 4000.0, spec.PNGScale, "png scale defaults")
}

func TestValidateParamsReportsProblems(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"missing grid", `{dx_meters: 1e-6, wavelengths_meters: [633e-9], source: {kind: "plane"}, elements: []}`,
			"grid_points: not found"},
		{"odd grid", `{grid_points: 63, dx_meters: 1e-6, wavelengths_meters: [633e-9], source: {kind: "plane"}, elements: []}`,
			"grid_points: must be a positive even integer"},
		{"bad source kind", `{grid_points: 64, dx_meters: 1e-6, wavelengths_meters: [633e-9], source: {kind: "laser"}, elements: []}`,
			`source.kind: "laser" is not one of gaussian, plane, point`},
		{"weights mismatch", `{grid_points: 64, dx_meters: 1e-6, wavelengths_meters: [633e-9], spectral_weights: [1.0, 2.0], source: {kind: "plane"}, elements: []}`,
			"spectral_weights: length differs from wavelengths_meters"},
		{"bad element", `{grid_points: 64, dx_meters: 1e-6, wavelengths_meters: [633e-9], source: {kind: "plane"}, elements: [{kind: "mirror"}]}`,
			`elements[0].kind: "mirror" is not one of propagate, lens`},
		{"lens without f", `{grid_points: 64, dx_meters: 1e-6, wavelengths_meters: [633e-9], source: {kind: "plane"}, elements: [{kind: "lens"}]}`,
			"elements[0].f_meters: not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var spec SimSpec
			msg, ok := validateParamsAndFill(parseTable(t, tc.text), &spec)
			require.False(t, ok)
			require.Equal(t, tc.want, msg)
		})
	}
}

func TestValidatedSpecRuns(t *testing.T) {
	var spec SimSpec
	msg, ok := validateParamsAndFill(parseTable(t, goodParams), &spec)
	require.True(t, ok, msg)

	system := &optics.System{Source: spec.Source, Elements: spec.Elements, Detector: optics.IntensityDetector{}}
	intensity, err := system.Measure()
	require.NoError(t, err)
	require.Len(t, intensity, 64)
}
