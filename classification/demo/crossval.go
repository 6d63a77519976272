package demo

import (
	"math"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/bachhm.dev/go-machine-learning/classification/dataset"
	"github.com/bachhm.dev/go-machine-learning/classification/model"
	"github.com/bachhm.dev/go-machine-learning/classification/report"
)

// CrossValidation is the outcome of a k-fold cross-validation.
type CrossValidation struct {
	Classifier model.Kind
	Dataset    dataset.Option
	// Accuracies holds the test accuracy of every fold.
	Accuracies []float64
	Mean       float64
	StdDev     float64
}

// CrossValidate trains and evaluates the selected classifier on k folds of
// the selected dataset, each fold serving once as the test set.
func (s *Service) CrossValidate(opts Options, k int) (*CrossValidation, error) {
	kind, err := model.ParseKind(opts.Classifier)
	if err != nil {
		return nil, err
	}
	opt, err := dataset.Resolve(opts.Dataset)
	if err != nil {
		return nil, err
	}
	d, err := dataset.LoadFile(filepath.Join(s.cfg.DataDir, opt.File))
	if err != nil {
		return nil, err
	}
	folds, err := d.Folds(k, s.cfg.Seed)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cv := &CrossValidation{Classifier: kind, Dataset: opt}
	for i := range folds {
		var rest []int
		for j, f := range folds {
			if j != i {
				rest = append(rest, f...)
			}
		}
		train, test := d.Subset(rest), d.Subset(folds[i])

		clf, err := model.New(kind, model.WithSeed(s.cfg.Seed))
		if err != nil {
			return nil, err
		}
		if err := clf.Fit(train.X, train.Y); err != nil {
			return nil, err
		}
		yPred, err := clf.Predict(test.X)
		if err != nil {
			return nil, err
		}
		rep, err := report.Evaluate(test.Y, yPred, d.Classes())
		if err != nil {
			return nil, err
		}
		cv.Accuracies = append(cv.Accuracies, rep.Accuracy)
	}

	// Calculate the mean, variance, and standard deviation of the accuracy.
	mean, variance := stat.MeanVariance(cv.Accuracies, nil)
	cv.Mean, cv.StdDev = mean, math.Sqrt(variance)
	s.logger.Info("cross-validation",
		zap.String("classifier", string(kind)),
		zap.String("dataset", opt.Name),
		zap.Int("folds", k),
		zap.Float64("mean_accuracy", cv.Mean),
		zap.Float64("stddev", cv.StdDev),
		zap.Duration("elapsed", time.Since(start)))
	return cv, nil
}
