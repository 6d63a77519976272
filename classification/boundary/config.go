package boundary

import (
	"errors"

	"gonum.org/v1/plot/vg"
)

// Defaults used when a Config or Style field is left at zero.
const (
	DefaultMargin = 1.0
	DefaultStep   = 0.01

	DefaultBackgroundPalette = "Greys"
	DefaultPointPalette      = "Paired"
)

var (
	// ErrNoSamples is returned when the feature set has no rows.
	ErrNoSamples = errors.New("boundary: no samples")
	// ErrDimension is returned when the feature set has fewer than two columns.
	ErrDimension = errors.New("boundary: samples must have at least two feature columns")
	// ErrLabelCount is returned when labels and samples differ in length.
	ErrLabelCount = errors.New("boundary: label count does not match sample count")
	// ErrPredictionCount is returned when a predictor answers with the wrong number of labels.
	ErrPredictionCount = errors.New("boundary: prediction count does not match lattice size")
	// ErrStep is returned for a step that is not a positive number.
	ErrStep = errors.New("boundary: step must be positive")
	// ErrLatticeSize is returned when the lattice would exceed MaxLatticePoints.
	ErrLatticeSize = errors.New("boundary: lattice too large")
)

// Config controls the lattice a classifier is evaluated on.
type Config struct {
	// Margin expands the sample bounding box outward on every side.
	Margin float64 `yaml:"margin"`
	// Step is the lattice spacing along both axes.
	Step float64 `yaml:"step"`
}

// DefaultConfig returns the 1.0 margin, 0.01 step lattice.
func DefaultConfig() Config {
	return Config{Margin: DefaultMargin, Step: DefaultStep}
}

// Style controls how a classification map is drawn.
type Style struct {
	// Background names the brewer palette used for the class regions.
	Background string
	// Points names the brewer palette used for the sample markers.
	Points string
	// MarkerRadius is the radius of a sample marker.
	MarkerRadius vg.Length
	// MarkerBorder is the width of the dark ring around each marker. Zero disables it.
	MarkerBorder vg.Length
}

// DefaultStyle returns grey class regions with paired-colour markers.
func DefaultStyle() Style {
	return Style{
		Background:   DefaultBackgroundPalette,
		Points:       DefaultPointPalette,
		MarkerRadius: vg.Points(5),
		MarkerBorder: vg.Points(1),
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Background == "" {
		s.Background = d.Background
	}
	if s.Points == "" {
		s.Points = d.Points
	}
	if s.MarkerRadius <= 0 {
		s.MarkerRadius = d.MarkerRadius
	}
	return s
}
