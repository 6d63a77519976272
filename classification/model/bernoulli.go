package model

import (
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/filters"
	"gonum.org/v1/gonum/mat"
)

// Bernoulli is a naive Bayes classifier over binary features. Continuous
// inputs are binarised first: a feature is present when it is above zero.
type Bernoulli struct {
	// Alpha is the additive smoothing of the feature counts.
	Alpha float64

	logPriors []float64
	// logPresent and logAbsent hold log P(x_j = 1 | c) and log P(x_j = 0 | c).
	logPresent [][]float64
	logAbsent  [][]float64
}

// NewBernoulli returns a Bernoulli naive Bayes classifier with Laplace
// smoothing.
func NewBernoulli() *Bernoulli {
	return &Bernoulli{Alpha: 1}
}

// Fit estimates the class priors and the per-class feature probabilities.
func (b *Bernoulli) Fit(x mat.Matrix, y []int) error {
	k, err := checkTraining(x, y)
	if err != nil {
		return err
	}
	bin, err := presence(x)
	if err != nil {
		return err
	}
	r, c := bin.Dims()

	// Count the samples and the present features of every class.
	counts := make([]float64, k)
	present := make([][]float64, k)
	for l := range present {
		present[l] = make([]float64, c)
	}
	for i := 0; i < r; i++ {
		counts[y[i]]++
		for j := 0; j < c; j++ {
			present[y[i]][j] += bin.At(i, j)
		}
	}

	b.logPriors = make([]float64, k)
	b.logPresent = make([][]float64, k)
	b.logAbsent = make([][]float64, k)
	for l := 0; l < k; l++ {
		if counts[l] == 0 {
			// Codes without samples are never predicted.
			b.logPriors[l] = math.Inf(-1)
			continue
		}
		b.logPriors[l] = math.Log(counts[l] / float64(r))
		b.logPresent[l] = make([]float64, c)
		b.logAbsent[l] = make([]float64, c)
		for j := 0; j < c; j++ {
			p := (present[l][j] + b.Alpha) / (counts[l] + 2*b.Alpha)
			b.logPresent[l][j] = math.Log(p)
			b.logAbsent[l][j] = math.Log1p(-p)
		}
	}
	return nil
}

// Predict returns the class with the largest log posterior for every row
// of x. Ties go to the lower class code.
func (b *Bernoulli) Predict(x mat.Matrix) ([]int, error) {
	if b.logPriors == nil {
		return nil, ErrNotFitted
	}
	r, c := x.Dims()
	if r == 0 {
		return []int{}, nil
	}
	features := 0
	for _, lp := range b.logPresent {
		features = max(features, len(lp))
	}
	if c != features {
		return nil, fmt.Errorf("model: bernoulli naive bayes: expected %d features, got %d", features, c)
	}
	bin, err := presence(x)
	if err != nil {
		return nil, err
	}

	out := make([]int, r)
	for i := 0; i < r; i++ {
		best, bestScore := 0, math.Inf(-1)
		for l, lp := range b.logPresent {
			if lp == nil {
				continue
			}
			score := b.logPriors[l]
			for j := range lp {
				if bin.At(i, j) > 0 {
					score += lp[j]
				} else {
					score += b.logAbsent[l][j]
				}
			}
			if score > bestScore {
				best, bestScore = l, score
			}
		}
		out[i] = best
	}
	return out, nil
}

// presence binarises x with golearn's binary convert filter, which maps a
// float feature to 1 when it is greater than zero and to 0 otherwise.
func presence(x mat.Matrix) (*mat.Dense, error) {
	r, c := x.Dims()
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, c)
	for j := range specs {
		specs[j] = inst.AddAttribute(base.NewFloatAttribute(fmt.Sprintf("x%d", j)))
	}
	if err := inst.Extend(r); err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j, spec := range specs {
			inst.Set(spec, i, base.PackFloatToBytes(x.At(i, j)))
		}
	}

	filt := filters.NewBinaryConvertFilter()
	for _, a := range base.NonClassAttributes(inst) {
		if err := filt.AddAttribute(a); err != nil {
			return nil, err
		}
	}
	if err := filt.Train(); err != nil {
		return nil, err
	}
	bin := base.NewLazilyFilteredInstances(inst, filt)

	out := mat.NewDense(r, c, nil)
	for j, a := range base.NonClassAttributes(bin) {
		spec, err := bin.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		for i := 0; i < r; i++ {
			if v := bin.Get(spec, i); len(v) > 0 && v[0] != 0 {
				out.Set(i, j, 1)
			}
		}
	}
	return out, nil
}
