package model

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/filters"
	"github.com/sjwhitworth/golearn/knn"
	"github.com/sjwhitworth/golearn/trees"
	"gonum.org/v1/gonum/mat"
)

// chiMergeSignificance is the significance level at which adjacent
// intervals stop being merged when discretising features for the trees.
const chiMergeSignificance = 0.999

// globalRand serialises fits that draw from the global math/rand source,
// which golearn uses for the ID3 prune split.
var globalRand sync.Mutex

// estimator is the fit/predict surface shared by golearn classifiers.
type estimator interface {
	Fit(base.FixedDataGrid) error
	Predict(base.FixedDataGrid) (base.FixedDataGrid, error)
}

// Learner adapts a golearn classifier to Classifier. Features become
// float attributes and class codes a categorical class attribute.
type Learner struct {
	name       string
	build      func() estimator
	discretize bool
	seed       int64

	model  estimator
	filter base.Filter
	attrs  []base.Attribute
	class  *base.CategoricalAttribute
}

// NewDecisionTree returns an ID3 decision tree that holds back the given
// share of the training set for pruning. Features are discretised with
// ChiMerge before the tree is built.
func NewDecisionTree(prune float64) *Learner {
	return &Learner{
		name:       "id3 decision tree",
		build:      func() estimator { return trees.NewID3DecisionTree(prune) },
		discretize: true,
	}
}

// NewKNN returns a k-nearest neighbours classifier.
func NewKNN(distance, algorithm string, k int) *Learner {
	return &Learner{
		name:  "knn",
		build: func() estimator { return knn.NewKnnClassifier(distance, algorithm, k) },
	}
}

// Seed sets the seed of the global math/rand source used while fitting.
func (l *Learner) Seed(seed uint64) { l.seed = int64(seed) }

// Fit trains a fresh golearn model on x and y.
func (l *Learner) Fit(x mat.Matrix, y []int) (err error) {
	k, err := checkTraining(x, y)
	if err != nil {
		return err
	}
	defer l.rescue("fit", &err)

	l.model, l.filter = nil, nil
	_, c := x.Dims()
	l.attrs = make([]base.Attribute, c)
	for j := range l.attrs {
		l.attrs[j] = base.NewFloatAttribute(fmt.Sprintf("x%d", j))
	}
	l.class = base.NewCategoricalAttribute()
	l.class.SetName("class")
	// Register the class codes in order so their system values match.
	for code := 0; code < k; code++ {
		l.class.GetSysValFromString(strconv.Itoa(code))
	}

	inst, err := l.instances(x, y)
	if err != nil {
		return err
	}
	var grid base.FixedDataGrid = inst
	if l.discretize {
		// Discretise the features with ChiMerge, trained on this set only.
		filt := filters.NewChiMergeFilter(inst, chiMergeSignificance)
		for _, a := range base.NonClassFloatAttributes(inst) {
			if err := filt.AddAttribute(a); err != nil {
				return err
			}
		}
		if err := filt.Train(); err != nil {
			return err
		}
		l.filter = filt
		grid = base.NewLazilyFilteredInstances(inst, filt)
	}

	model := l.build()
	globalRand.Lock()
	defer globalRand.Unlock()
	rand.Seed(l.seed)
	if err := model.Fit(grid); err != nil {
		return fmt.Errorf("model: %s fit: %w", l.name, err)
	}
	l.model = model
	return nil
}

// Predict returns the class code predicted for every row of x.
func (l *Learner) Predict(x mat.Matrix) (labels []int, err error) {
	if l.model == nil {
		return nil, ErrNotFitted
	}
	defer l.rescue("predict", &err)

	inst, err := l.instances(x, nil)
	if err != nil {
		return nil, err
	}
	var grid base.FixedDataGrid = inst
	if l.filter != nil {
		grid = base.NewLazilyFilteredInstances(inst, l.filter)
	}
	pred, err := l.model.Predict(grid)
	if err != nil {
		return nil, fmt.Errorf("model: %s predict: %w", l.name, err)
	}
	_, rows := pred.Size()
	labels = make([]int, rows)
	for i := range labels {
		if labels[i], err = strconv.Atoi(base.GetClass(pred, i)); err != nil {
			return nil, fmt.Errorf("model: %s predict: class %q: %w", l.name, base.GetClass(pred, i), err)
		}
	}
	return labels, nil
}

// instances copies x, and y when given, into golearn instances.
func (l *Learner) instances(x mat.Matrix, y []int) (*base.DenseInstances, error) {
	r, c := x.Dims()
	if c != len(l.attrs) {
		return nil, fmt.Errorf("model: %s: expected %d features, got %d", l.name, len(l.attrs), c)
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, c)
	for j, a := range l.attrs {
		specs[j] = inst.AddAttribute(a)
	}
	classSpec := inst.AddAttribute(l.class)
	if err := inst.AddClassAttribute(l.class); err != nil {
		return nil, err
	}
	if err := inst.Extend(r); err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j, spec := range specs {
			inst.Set(spec, i, base.PackFloatToBytes(x.At(i, j)))
		}
		code := 0
		if y != nil {
			code = y[i]
		}
		inst.Set(classSpec, i, l.class.GetSysValFromString(strconv.Itoa(code)))
	}
	return inst, nil
}

// rescue turns a panic raised inside golearn into an error.
func (l *Learner) rescue(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("model: %s %s: %v", l.name, op, r)
	}
}
