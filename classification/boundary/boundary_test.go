package boundary

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"
)

// threshold predicts 0 left of at and 1 from at onwards.
type threshold struct {
	at    float64
	calls int
}

func (p *threshold) Predict(x mat.Matrix) ([]int, error) {
	p.calls++
	r, _ := x.Dims()
	out := make([]int, r)
	for i := range out {
		if x.At(i, 0) >= p.at {
			out[i] = 1
		}
	}
	return out, nil
}

type failing struct{ err error }

func (p failing) Predict(mat.Matrix) ([]int, error) { return nil, p.err }

type short struct{}

func (short) Predict(x mat.Matrix) ([]int, error) {
	r, _ := x.Dims()
	return make([]int, r-1), nil
}

func TestComputeBoundaryAtThreshold(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	p := &threshold{at: 0.5}
	m, err := Compute(p, x, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("expected a single batched predict call, got %d", p.calls)
	}
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			want := 0
			if m.X(c) >= 0.5 {
				want = 1
			}
			if got := m.At(r, c); got != want {
				t.Fatalf("cell (%d, %d) at x=%v: expected %d, got %d", r, c, m.X(c), want, got)
			}
		}
	}
	// The switch from 0 to 1 happens within one step of x = 0.5 on every row.
	for r := 0; r < m.Rows(); r++ {
		row := m.Row(r)
		for c := 1; c < len(row); c++ {
			if row[c-1] != row[c] && (m.X(c) < 0.5 || m.X(c-1) >= 0.5) {
				t.Fatalf("row %d: boundary between x=%v and x=%v", r, m.X(c-1), m.X(c))
			}
		}
	}
}

func TestComputeShape(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{0, 0, 2, 1, 1, 3})
	m, err := Compute(&threshold{at: 1}, x, Config{Margin: 1, Step: 0.25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.labels) != m.Rows()*m.Cols() {
		t.Fatalf("expected %d labels, got %d", m.Rows()*m.Cols(), len(m.labels))
	}
	for r := 0; r < m.Rows(); r++ {
		if len(m.Row(r)) != m.Cols() {
			t.Fatalf("row %d: expected %d columns, got %d", r, m.Cols(), len(m.Row(r)))
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		0.5, 1,
		-1, 2,
		3, -0.5,
		1.5, 1.5,
	})
	cfg := Config{Margin: 1, Step: 0.1}
	a, err := Compute(&threshold{at: 1}, x, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Compute(&threshold{at: 1}, x, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(a.labels, b.labels); diff != "" {
		t.Fatalf("classification maps differ (-first +second):\n%s", diff)
	}
}

func TestComputeErrors(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	boom := errors.New("boom")
	if _, err := Compute(failing{err: boom}, x, DefaultConfig()); !errors.Is(err, boom) {
		t.Fatalf("expected predictor error, got %v", err)
	}
	if _, err := Compute(short{}, x, DefaultConfig()); !errors.Is(err, ErrPredictionCount) {
		t.Fatalf("expected ErrPredictionCount, got %v", err)
	}
	if _, err := Compute(&threshold{}, mat.NewDense(2, 1, []float64{0, 1}), DefaultConfig()); !errors.Is(err, ErrDimension) {
		t.Fatalf("expected ErrDimension, got %v", err)
	}
}

func TestVisualizeLabelCount(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	_, err := Visualize(&threshold{at: 0.5}, x, []int{0}, "", DefaultConfig(), DefaultStyle())
	if !errors.Is(err, ErrLabelCount) {
		t.Fatalf("expected ErrLabelCount, got %v", err)
	}
}
