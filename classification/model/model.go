// Package model provides the classifiers offered by the demo behind a
// single fit/predict interface over gonum matrices.
package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bachhm.dev/go-machine-learning/classification/boundary"
)

var (
	// ErrUnknownKind is returned by New for an unregistered classifier name.
	ErrUnknownKind = errors.New("model: unknown classifier")
	// ErrNotFitted is returned by Predict before a successful Fit.
	ErrNotFitted = errors.New("model: classifier is not fitted")
	// ErrNoSamples is returned by Fit for an empty training set.
	ErrNoSamples = errors.New("model: no training samples")
	// ErrLabelCount is returned by Fit when labels and samples differ in length.
	ErrLabelCount = errors.New("model: label count does not match sample count")
	// ErrLabel is returned by Fit for a negative class code.
	ErrLabel = errors.New("model: class codes must not be negative")
)

// Classifier is a trainable boundary.Predictor.
type Classifier interface {
	boundary.Predictor
	// Fit trains the classifier on the rows of x labelled by y.
	Fit(x mat.Matrix, y []int) error
}

// Kind names a classifier.
type Kind string

// Available classifiers.
const (
	GaussianNB        Kind = "Gaussian Naive Bayes"
	BernoulliNB       Kind = "Bernoulli Naive Bayes"
	DecisionTree      Kind = "Decision Tree"
	RandomForest      Kind = "Random Forest"
	KNearestNeighbors Kind = "K-Nearest Neighbors"
)

// Kinds returns the classifiers in display order. The first is the default.
func Kinds() []Kind {
	return []Kind{GaussianNB, BernoulliNB, DecisionTree, RandomForest, KNearestNeighbors}
}

// ParseKind returns the kind called name. An empty name selects the default.
func ParseKind(name string) (Kind, error) {
	if name == "" {
		return GaussianNB, nil
	}
	for _, k := range Kinds() {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Option configures a classifier returned by New.
type Option func(*options)

type options struct {
	seed uint64
}

// WithSeed sets the seed of classifiers that draw random numbers while
// fitting. Others ignore it.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// seeder is implemented by classifiers with a random fit.
type seeder interface {
	Seed(uint64)
}

// New returns an untrained classifier of the given kind.
func New(kind Kind, opts ...Option) (Classifier, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var clf Classifier
	switch kind {
	case GaussianNB:
		clf = NewGaussian()
	case BernoulliNB:
		clf = NewBernoulli()
	case DecisionTree:
		clf = NewDecisionTree(0.6)
	case RandomForest:
		clf = NewRandomForest(10, 2)
	case KNearestNeighbors:
		clf = NewKNN("euclidean", "linear", 5)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if s, ok := clf.(seeder); ok {
		s.Seed(o.seed)
	}
	return clf, nil
}

// checkTraining validates a training set and returns the number of classes.
func checkTraining(x mat.Matrix, y []int) (int, error) {
	r, _ := x.Dims()
	if r == 0 {
		return 0, ErrNoSamples
	}
	if len(y) != r {
		return 0, ErrLabelCount
	}
	k := 0
	for _, l := range y {
		if l < 0 {
			return 0, ErrLabel
		}
		k = max(k, l+1)
	}
	return k, nil
}
