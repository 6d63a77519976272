// Package report evaluates predictions against reference labels with
// golearn's evaluation package.
package report

import (
	"errors"
	"math"
	"strconv"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
)

var (
	// ErrLength is returned when reference and predicted labels differ in length.
	ErrLength = errors.New("report: reference and predicted labels differ in length")
	// ErrEmpty is returned when there is nothing to evaluate.
	ErrEmpty = errors.New("report: no labels")
)

// ClassMetrics holds the per-class scores.
type ClassMetrics struct {
	Class     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report summarises how predictions compare with the reference labels.
type Report struct {
	Classes []string
	// Matrix counts samples by reference class (row) and predicted class (column).
	Matrix   [][]int
	Accuracy float64
	Metrics  []ClassMetrics
	// Summary is golearn's plain text summary.
	Summary string
}

// Evaluate compares yPred with yTrue. Codes index classes; codes outside
// it are named by their decimal value and appended.
func Evaluate(yTrue, yPred []int, classes []string) (*Report, error) {
	if len(yTrue) != len(yPred) {
		return nil, ErrLength
	}
	if len(yTrue) == 0 {
		return nil, ErrEmpty
	}
	names := classNames(classes, yTrue, yPred)

	// Generate a confusion matrix.
	ref, err := labelGrid(yTrue, names)
	if err != nil {
		return nil, err
	}
	gen, err := labelGrid(yPred, names)
	if err != nil {
		return nil, err
	}
	cm, err := evaluation.GetConfusionMatrix(ref, gen)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Classes:  names,
		Matrix:   make([][]int, len(names)),
		Accuracy: evaluation.GetAccuracy(cm),
		Metrics:  make([]ClassMetrics, len(names)),
		Summary:  evaluation.GetSummary(cm),
	}
	for i, actual := range names {
		r.Matrix[i] = make([]int, len(names))
		support := 0
		for j, predicted := range names {
			r.Matrix[i][j] = cm[actual][predicted]
			support += cm[actual][predicted]
		}
		r.Metrics[i] = ClassMetrics{
			Class:     actual,
			Precision: zeroNaN(evaluation.GetPrecision(actual, cm)),
			Recall:    zeroNaN(evaluation.GetRecall(actual, cm)),
			F1:        zeroNaN(evaluation.GetF1Score(actual, cm)),
			Support:   support,
		}
	}
	return r, nil
}

// Support returns the total number of evaluated samples.
func (r *Report) Support() int {
	n := 0
	for _, m := range r.Metrics {
		n += m.Support
	}
	return n
}

// MacroAverage returns the unweighted mean of the per-class scores.
func (r *Report) MacroAverage() ClassMetrics {
	avg := ClassMetrics{Class: "macro avg", Support: r.Support()}
	if len(r.Metrics) == 0 {
		return avg
	}
	for _, m := range r.Metrics {
		avg.Precision += m.Precision
		avg.Recall += m.Recall
		avg.F1 += m.F1
	}
	n := float64(len(r.Metrics))
	avg.Precision /= n
	avg.Recall /= n
	avg.F1 /= n
	return avg
}

// WeightedAverage returns the per-class scores averaged by support.
func (r *Report) WeightedAverage() ClassMetrics {
	avg := ClassMetrics{Class: "weighted avg", Support: r.Support()}
	if avg.Support == 0 {
		return avg
	}
	for _, m := range r.Metrics {
		w := float64(m.Support)
		avg.Precision += w * m.Precision
		avg.Recall += w * m.Recall
		avg.F1 += w * m.F1
	}
	n := float64(avg.Support)
	avg.Precision /= n
	avg.Recall /= n
	avg.F1 /= n
	return avg
}

func classNames(classes []string, sets ...[]int) []string {
	names := append([]string(nil), classes...)
	for _, set := range sets {
		for _, code := range set {
			for len(names) <= code {
				names = append(names, strconv.Itoa(len(names)))
			}
		}
	}
	return names
}

// labelGrid wraps labels into golearn instances holding only a class attribute.
func labelGrid(codes []int, names []string) (base.FixedDataGrid, error) {
	attr := base.NewCategoricalAttribute()
	attr.SetName("class")
	inst := base.NewDenseInstances()
	spec := inst.AddAttribute(attr)
	if err := inst.AddClassAttribute(attr); err != nil {
		return nil, err
	}
	if err := inst.Extend(len(codes)); err != nil {
		return nil, err
	}
	for i, code := range codes {
		name := strconv.Itoa(code)
		if code >= 0 && code < len(names) {
			name = names[code]
		}
		inst.Set(spec, i, attr.GetSysValFromString(name))
	}
	return inst, nil
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
