// Package optics implements coherent wave-optics elements operating on
// sampled fields: closed-form sources, angular-spectrum free-space
// propagation, thin lenses and apertures, and a sequential system composer
// that threads a field through an ordered list of elements.
//
// Every element is a pure function of its configuration and input field;
// fields are never mutated in place.
package optics

import (
	"errors"
	"fmt"

	"waveoptics/field"
)

// Source bootstraps a field from leading arguments. Most sources take no
// arguments; ObjectivePointSource takes the defocus distance per call.
type Source interface {
	Generate(args ...float64) (*field.Field, error)
}

// Element transforms one field into another.
type Element interface {
	Apply(f *field.Field) (*field.Field, error)
}

// Detector reduces the final field of a system to a derived array quantity.
type Detector interface {
	Read(f *field.Field) ([][]float64, error)
}

// System composes a source and an ordered list of elements. Run threads the
// source output through every element in order with no branching and no
// skipped stages; an error from any stage aborts the run.
type System struct {
	Source   Source
	Elements []Element
	Detector Detector
}

// Run generates the initial field from the source (passing args through)
// and applies each element in sequence, returning the final field.
func (s *System) Run(args ...float64) (*field.Field, error) {
	if s.Source == nil {
		return nil, errors.New("optics: system has no source")
	}
	f, err := s.Source.Generate(args...)
	if err != nil {
		return nil, fmt.Errorf("optics: source: %w", err)
	}
	for i, e := range s.Elements {
		f, err = e.Apply(f)
		if err != nil {
			return nil, fmt.Errorf("optics: element %d: %w", i, err)
		}
		if f == nil {
			return nil, fmt.Errorf("optics: element %d returned no field", i)
		}
	}
	return f, nil
}

// Measure runs the system and applies the terminal detector reduction.
func (s *System) Measure(args ...float64) ([][]float64, error) {
	if s.Detector == nil {
		return nil, errors.New("optics: system has no detector")
	}
	f, err := s.Run(args...)
	if err != nil {
		return nil, err
	}
	return s.Detector.Read(f)
}

// IntensityDetector reduces a field to its spectral-density-weighted
// intensity image.
type IntensityDetector struct{}

func (IntensityDetector) Read(f *field.Field) ([][]float64, error) {
	return f.SensorIntensity(), nil
}
