package model

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Forest is a random forest of unpruned ID3 trees. Every tree is grown on a
// bootstrap sample of the training rows and a random subset of the feature
// columns, drawn from a seeded source, and the trees vote on each row.
type Forest struct {
	Size     int
	Features int

	seed  uint64
	width int
	trees []*Learner
	cols  [][]int
}

// NewRandomForest returns a forest of size trees, each built on features
// randomly chosen feature columns.
func NewRandomForest(size, features int) *Forest {
	return &Forest{Size: size, Features: features}
}

// Seed sets the seed of the bootstrap and feature draws.
func (f *Forest) Seed(seed uint64) { f.seed = seed }

// Fit grows the trees.
func (f *Forest) Fit(x mat.Matrix, y []int) error {
	if _, err := checkTraining(x, y); err != nil {
		return err
	}
	r, c := x.Dims()
	if f.Size < 1 || f.Features < 1 || f.Features > c {
		return fmt.Errorf("model: random forest of %d trees with %d features cannot fit %d feature columns", f.Size, f.Features, c)
	}

	f.trees, f.cols = nil, nil
	rng := rand.New(rand.NewSource(f.seed))
	trees := make([]*Learner, f.Size)
	cols := make([][]int, f.Size)
	for t := range trees {
		cols[t] = rng.Perm(c)[:f.Features]
		sort.Ints(cols[t])
		rows := make([]int, r)
		for i := range rows {
			rows[i] = rng.Intn(r)
		}
		labels := make([]int, r)
		for i, row := range rows {
			labels[i] = y[row]
		}
		trees[t] = NewDecisionTree(0)
		if err := trees[t].Fit(columns(x, rows, cols[t]), labels); err != nil {
			return fmt.Errorf("model: random forest tree %d: %w", t, err)
		}
	}
	f.trees, f.cols, f.width = trees, cols, c
	return nil
}

// Predict returns the majority vote of the trees for every row of x. Ties
// go to the lower class code.
func (f *Forest) Predict(x mat.Matrix) ([]int, error) {
	if f.trees == nil {
		return nil, ErrNotFitted
	}
	r, c := x.Dims()
	if c != f.width {
		return nil, fmt.Errorf("model: random forest: expected %d features, got %d", f.width, c)
	}
	if r == 0 {
		return []int{}, nil
	}
	rows := make([]int, r)
	for i := range rows {
		rows[i] = i
	}
	votes := make([]map[int]int, r)
	for i := range votes {
		votes[i] = make(map[int]int)
	}
	for t, tree := range f.trees {
		pred, err := tree.Predict(columns(x, rows, f.cols[t]))
		if err != nil {
			return nil, err
		}
		for i, l := range pred {
			votes[i][l]++
		}
	}

	out := make([]int, r)
	for i, v := range votes {
		best, most := 0, -1
		for l, n := range v {
			if n > most || (n == most && l < best) {
				best, most = l, n
			}
		}
		out[i] = best
	}
	return out, nil
}

// columns copies the given rows and columns of x into a new matrix.
func columns(x mat.Matrix, rows, cols []int) *mat.Dense {
	out := mat.NewDense(len(rows), len(cols), nil)
	for i, row := range rows {
		for j, col := range cols {
			out.Set(i, j, x.At(row, col))
		}
	}
	return out
}
