package boundary

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewLatticeExtent(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	l, err := NewLattice(x, Config{Margin: 1, Step: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Cols() != 6 || l.Rows() != 6 {
		t.Fatalf("expected 6x6 lattice, got %dx%d", l.Rows(), l.Cols())
	}
	ext := l.Extent()
	if ext.MinX != -1 || ext.MinY != -1 {
		t.Fatalf("expected lattice to start at -1, got (%v, %v)", ext.MinX, ext.MinY)
	}
	if math.Abs(ext.MaxX-2) > 0.5 || math.Abs(ext.MaxY-2) > 0.5 {
		t.Fatalf("expected lattice to end within a step of 2, got (%v, %v)", ext.MaxX, ext.MaxY)
	}
	if want := (Box{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}); l.Data != want {
		t.Fatalf("expected data box %+v, got %+v", want, l.Data)
	}
}

func TestNewLatticeDefaultStep(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		-2, 3,
		4, 5,
		1, 8,
	})
	cfg := DefaultConfig()
	l, err := NewLattice(x, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ext := l.Extent()
	cases := []struct {
		name      string
		got, want float64
	}{
		{"min x", ext.MinX, -3},
		{"max x", ext.MaxX, 5},
		{"min y", ext.MinY, 2},
		{"max y", ext.MaxY, 9},
	}
	for _, tc := range cases {
		if math.Abs(tc.got-tc.want) > cfg.Step+1e-9 {
			t.Errorf("%s: expected %v within %v, got %v", tc.name, tc.want, cfg.Step, tc.got)
		}
	}
	if l.Len() != l.Rows()*l.Cols() {
		t.Fatalf("expected Len %d, got %d", l.Rows()*l.Cols(), l.Len())
	}
}

func TestNewLatticeSinglePoint(t *testing.T) {
	x := mat.NewDense(1, 2, []float64{3, 4})
	l, err := NewLattice(x, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Len() == 0 {
		t.Fatal("expected a non-empty lattice")
	}
	ext := l.Extent()
	if ext.MinX != 2 || ext.MinY != 3 {
		t.Fatalf("expected lattice to start at (2, 3), got (%v, %v)", ext.MinX, ext.MinY)
	}
	if ext.MaxX > 4+1e-9 || ext.MaxX < 4-DefaultStep-1e-9 {
		t.Fatalf("expected lattice to end just below 4, got %v", ext.MaxX)
	}
}

func TestNewLatticeCoarseStep(t *testing.T) {
	cases := []struct {
		name string
		x    *mat.Dense
		cfg  Config
	}{
		{"step larger than box", mat.NewDense(2, 2, []float64{0, 0, 1, 1}), Config{Margin: 1, Step: 10}},
		{"zero width box", mat.NewDense(2, 2, []float64{5, 5, 5, 5}), Config{Margin: 0, Step: 0.01}},
		{"negative margin", mat.NewDense(2, 2, []float64{0, 0, 1, 1}), Config{Margin: -2, Step: 0.01}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := NewLattice(tc.x, tc.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l.Rows() != 1 || l.Cols() != 1 {
				t.Fatalf("expected 1x1 lattice, got %dx%d", l.Rows(), l.Cols())
			}
		})
	}
}

func TestNewLatticeErrors(t *testing.T) {
	cases := []struct {
		name string
		x    mat.Matrix
		cfg  Config
		want error
	}{
		{"one column", mat.NewDense(3, 1, []float64{1, 2, 3}), DefaultConfig(), ErrDimension},
		{"zero step", mat.NewDense(1, 2, []float64{1, 2}), Config{Margin: 1}, ErrStep},
		{"negative step", mat.NewDense(1, 2, []float64{1, 2}), Config{Margin: 1, Step: -1}, ErrStep},
		{"nan step", mat.NewDense(1, 2, []float64{1, 2}), Config{Margin: 1, Step: math.NaN()}, ErrStep},
		{"huge range", mat.NewDense(2, 2, []float64{0, 0, 1e12, 1}), DefaultConfig(), ErrLatticeSize},
		{"infinite margin", mat.NewDense(1, 2, []float64{1, 2}), Config{Margin: math.Inf(1), Step: 1}, ErrLatticeSize},
		{"too many points", mat.NewDense(2, 2, []float64{0, 0, 30, 30}), Config{Margin: 0, Step: 0.01}, ErrLatticeSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewLattice(tc.x, tc.cfg); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNewLatticeSkipsNonFinite(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 1,
		math.Inf(1), 0.5,
		math.Inf(-1), math.NaN(),
	})
	l, err := NewLattice(x, Config{Margin: 1, Step: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Box{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	if l.Data != want {
		t.Fatalf("expected data box %+v, got %+v", want, l.Data)
	}
	if l.Rows() != 6 || l.Cols() != 6 {
		t.Fatalf("expected 6x6 lattice, got %dx%d", l.Rows(), l.Cols())
	}
}

func TestNewLatticeIgnoresExtraColumns(t *testing.T) {
	x := mat.NewDense(2, 3, []float64{
		0, 0, 100,
		1, 1, -100,
	})
	l, err := NewLattice(x, Config{Margin: 1, Step: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Cols() != 6 || l.Rows() != 6 {
		t.Fatalf("expected 6x6 lattice, got %dx%d", l.Rows(), l.Cols())
	}
}

func TestLatticePointsRowMajor(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	l, err := NewLattice(x, Config{Margin: 0, Step: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pts := l.Points()
	r, c := pts.Dims()
	if r != l.Len() || c != 2 {
		t.Fatalf("expected %dx2 points, got %dx%d", l.Len(), r, c)
	}
	for k := 0; k < r; k++ {
		row, col := k/l.Cols(), k%l.Cols()
		if pts.At(k, 0) != l.X(col) || pts.At(k, 1) != l.Y(row) {
			t.Fatalf("point %d: expected (%v, %v), got (%v, %v)", k, l.X(col), l.Y(row), pts.At(k, 0), pts.At(k, 1))
		}
	}
}
