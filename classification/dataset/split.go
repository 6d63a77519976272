package dataset

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Split shuffles the samples with a seeded generator and returns the
// training part and the test part. The test part holds ceil(testRatio*n)
// samples, kept between 1 and n-1 whenever there are two or more samples.
func (d *Dataset) Split(testRatio float64, seed uint64) (train, test *Dataset) {
	n := d.Len()
	// Calculate the number of elements in the test set.
	testNum := int(math.Ceil(testRatio * float64(n)))
	if n >= 2 {
		testNum = min(max(testNum, 1), n-1)
	} else {
		testNum = 0
	}
	// Enumerate the shuffled indices.
	idx := rand.New(rand.NewSource(seed)).Perm(n)
	return d.Subset(idx[testNum:]), d.Subset(idx[:testNum])
}

// ErrFolds is returned when the samples cannot be split into k folds.
var ErrFolds = errors.New("dataset: fold count must be between 2 and the number of samples")

// Folds shuffles the sample indices with a seeded generator and deals them
// into k folds whose sizes differ by at most one.
func (d *Dataset) Folds(k int, seed uint64) ([][]int, error) {
	n := d.Len()
	if k < 2 || k > n {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrFolds, k, n)
	}
	folds := make([][]int, k)
	for i, j := range rand.New(rand.NewSource(seed)).Perm(n) {
		folds[i%k] = append(folds[i%k], j)
	}
	return folds, nil
}
