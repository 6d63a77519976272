package boundary

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MaxLatticePoints bounds the number of lattice points, per axis and in total.
const MaxLatticePoints = 1 << 22

// Box is an axis-aligned rectangle in the feature plane.
type Box struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Lattice is a regular grid of evaluation points covering the sample
// bounding box expanded by a margin.
type Lattice struct {
	// Data is the bounding box of the samples before expansion.
	Data   Box
	margin float64
	xs, ys []float64
}

// NewLattice builds the lattice for the first two columns of x.
// Columns past the second are ignored.
func NewLattice(x mat.Matrix, cfg Config) (*Lattice, error) {
	r, c := x.Dims()
	if r == 0 {
		return nil, ErrNoSamples
	}
	if c < 2 {
		return nil, ErrDimension
	}
	if !(cfg.Step > 0) || math.IsInf(cfg.Step, 0) {
		return nil, ErrStep
	}
	// Define the minimum and maximum values for X and Y.
	var box Box
	box.MinX, box.MaxX = columnRange(x, 0)
	box.MinY, box.MaxY = columnRange(x, 1)
	// Expand the box by the margin and sample it at the step size.
	xs, err := arange(box.MinX-cfg.Margin, box.MaxX+cfg.Margin, cfg.Step)
	if err != nil {
		return nil, err
	}
	ys, err := arange(box.MinY-cfg.Margin, box.MaxY+cfg.Margin, cfg.Step)
	if err != nil {
		return nil, err
	}
	if len(xs)*len(ys) > MaxLatticePoints {
		return nil, fmt.Errorf("%w: %d x %d points", ErrLatticeSize, len(ys), len(xs))
	}
	return &Lattice{Data: box, margin: cfg.Margin, xs: xs, ys: ys}, nil
}

// columnRange returns the min and max of column j, skipping NaN and
// infinite values.
func columnRange(x mat.Matrix, j int) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	r, _ := x.Dims()
	for i := 0; i < r; i++ {
		v := x.At(i, j)
		if !finite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// arange returns lo, lo+step, ... below hi. It always yields at least lo.
func arange(lo, hi, step float64) ([]float64, error) {
	f := math.Ceil((hi - lo) / step)
	if !(f <= MaxLatticePoints) {
		return nil, fmt.Errorf("%w: [%g, %g] at step %g", ErrLatticeSize, lo, hi, step)
	}
	n := max(int(f), 1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	return vals, nil
}

// Cols returns the number of lattice points along the x axis.
func (l *Lattice) Cols() int { return len(l.xs) }

// Rows returns the number of lattice points along the y axis.
func (l *Lattice) Rows() int { return len(l.ys) }

// Len returns the total number of lattice points.
func (l *Lattice) Len() int { return len(l.xs) * len(l.ys) }

// Dims returns the number of columns and rows, in the order plotter.GridXYZ expects.
func (l *Lattice) Dims() (c, r int) { return len(l.xs), len(l.ys) }

// X returns the x coordinate of column c.
func (l *Lattice) X(c int) float64 { return l.xs[c] }

// Y returns the y coordinate of row r.
func (l *Lattice) Y(r int) float64 { return l.ys[r] }

// Extent returns the smallest and largest lattice coordinates.
func (l *Lattice) Extent() Box {
	return Box{
		MinX: l.xs[0], MaxX: l.xs[len(l.xs)-1],
		MinY: l.ys[0], MaxY: l.ys[len(l.ys)-1],
	}
}

// Points flattens the lattice into a Len()x2 matrix. Point k is
// column k%Cols() of row k/Cols().
func (l *Lattice) Points() *mat.Dense {
	data := make([]float64, 0, 2*l.Len())
	for _, y := range l.ys {
		for _, x := range l.xs {
			data = append(data, x, y)
		}
	}
	return mat.NewDense(l.Len(), 2, data)
}
