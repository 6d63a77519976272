package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minVariance keeps constant features from collapsing a distribution.
const minVariance = 1e-9

// Gaussian is a naive Bayes classifier that models every feature of every
// class as an independent normal distribution.
type Gaussian struct {
	// VarSmoothing is the share of the largest feature variance added to
	// every variance.
	VarSmoothing float64

	logPriors []float64
	dists     [][]distuv.Normal
}

// NewGaussian returns a Gaussian naive Bayes classifier with a 1e-9
// variance smoothing.
func NewGaussian() *Gaussian {
	return &Gaussian{VarSmoothing: 1e-9}
}

// Fit estimates the class priors and the per-class feature distributions.
func (g *Gaussian) Fit(x mat.Matrix, y []int) error {
	k, err := checkTraining(x, y)
	if err != nil {
		return err
	}
	r, c := x.Dims()

	// Group the feature columns by class.
	byClass := make([][][]float64, k)
	for l := range byClass {
		byClass[l] = make([][]float64, c)
	}
	col := make([]float64, r)
	epsilon := 0.0
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			col[i] = x.At(i, j)
			byClass[y[i]][j] = append(byClass[y[i]][j], col[i])
		}
		_, v := stat.PopMeanVariance(col, nil)
		epsilon = math.Max(epsilon, v)
	}
	epsilon *= g.VarSmoothing
	if epsilon == 0 {
		epsilon = minVariance
	}

	g.logPriors = make([]float64, k)
	g.dists = make([][]distuv.Normal, k)
	for l := 0; l < k; l++ {
		n := len(byClass[l][0])
		if n == 0 {
			// Codes without samples are never predicted.
			g.logPriors[l] = math.Inf(-1)
			continue
		}
		g.logPriors[l] = math.Log(float64(n) / float64(r))
		g.dists[l] = make([]distuv.Normal, c)
		for j := 0; j < c; j++ {
			mean, v := stat.PopMeanVariance(byClass[l][j], nil)
			g.dists[l][j] = distuv.Normal{Mu: mean, Sigma: math.Sqrt(v + epsilon)}
		}
	}
	return nil
}

// Predict returns the class with the largest log posterior for every row
// of x. Ties go to the lower class code.
func (g *Gaussian) Predict(x mat.Matrix) ([]int, error) {
	if g.dists == nil {
		return nil, ErrNotFitted
	}
	r, c := x.Dims()
	out := make([]int, r)
	for i := 0; i < r; i++ {
		best, bestScore := 0, math.Inf(-1)
		for l, dists := range g.dists {
			if dists == nil {
				continue
			}
			score := g.logPriors[l]
			for j := 0; j < c && j < len(dists); j++ {
				score += dists[j].LogProb(x.At(i, j))
			}
			if score > bestScore {
				best, bestScore = l, score
			}
		}
		out[i] = best
	}
	return out, nil
}
