// Package boundary draws the decision regions of a trained classifier over
// a two dimensional feature plane.
//
// The classifier is evaluated once on a regular lattice that covers the
// samples, the predictions are painted as a flat colour field and the
// samples are drawn on top, coloured by their labels.
package boundary

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
)

// Predictor maps every row of x to a class label, in row order.
type Predictor interface {
	Predict(x mat.Matrix) ([]int, error)
}

// Map holds the predicted label of every lattice point.
type Map struct {
	*Lattice
	labels []int
}

// At returns the label predicted at row r, column c.
func (m *Map) At(r, c int) int {
	return m.labels[r*m.Cols()+c]
}

// Row returns the labels predicted along row r.
func (m *Map) Row(r int) []int {
	return m.labels[r*m.Cols() : (r+1)*m.Cols()]
}

// Compute evaluates p on the lattice covering x and reshapes the answer
// into a classification map. Errors from p are returned unchanged.
func Compute(p Predictor, x mat.Matrix, cfg Config) (*Map, error) {
	l, err := NewLattice(x, cfg)
	if err != nil {
		return nil, err
	}
	// Run the classifier on the whole lattice in one batch.
	labels, err := p.Predict(l.Points())
	if err != nil {
		return nil, err
	}
	if len(labels) != l.Len() {
		return nil, ErrPredictionCount
	}
	return &Map{Lattice: l, labels: labels}, nil
}

// Visualize computes the classification map of p over x and renders it
// with the samples overlaid.
func Visualize(p Predictor, x mat.Matrix, labels []int, title string, cfg Config, style Style) (*plot.Plot, error) {
	if r, _ := x.Dims(); r != len(labels) {
		return nil, ErrLabelCount
	}
	m, err := Compute(p, x, cfg)
	if err != nil {
		return nil, err
	}
	return Render(m, x, labels, title, style)
}
