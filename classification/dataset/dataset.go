// Package dataset loads the labelled toy datasets used by the demo.
//
// A dataset is a CSV file with a header row. Every column but the last is
// a numeric feature, the last column is the class label.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmpty is returned for a file without data rows.
	ErrEmpty = errors.New("dataset: no rows")
	// ErrNoFeatures is returned when there is no column left of the label.
	ErrNoFeatures = errors.New("dataset: need at least one feature column and a label column")
	// ErrNotNumeric is returned when a feature value does not parse as a number.
	ErrNotNumeric = errors.New("dataset: feature is not numeric")
)

// Dataset is a labelled feature matrix.
type Dataset struct {
	Name     string
	Features []string
	Label    string
	// X holds one sample per row.
	X *mat.Dense
	// Y holds the encoded class of every sample.
	Y []int

	encoder *Encoder
	frame   dataframe.DataFrame
}

// LoadFile reads the CSV file at path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// Load reads a CSV dataset from r.
func Load(r io.Reader, name string) (*Dataset, error) {
	// Create a dataframe from the CSV file.
	// The types of the columns will be inferred.
	df := dataframe.ReadCSV(r)
	if df.Err != nil {
		return nil, fmt.Errorf("dataset %s: %w", name, df.Err)
	}
	if df.Nrow() == 0 {
		return nil, ErrEmpty
	}
	names := df.Names()
	if len(names) < 2 {
		return nil, ErrNoFeatures
	}
	features, label := names[:len(names)-1], names[len(names)-1]

	// Load the feature columns into a matrix, one sample per row.
	x := mat.NewDense(df.Nrow(), len(features), nil)
	for j, colName := range features {
		for i, v := range df.Col(colName).Float() {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%w: column %q row %d", ErrNotNumeric, colName, i+1)
			}
			x.Set(i, j, v)
		}
	}

	// Encode the labels as consecutive class codes.
	records := df.Col(label).Records()
	enc := NewEncoder(records)
	y := make([]int, len(records))
	for i, rec := range records {
		y[i], _ = enc.Encode(rec)
	}
	return &Dataset{
		Name:     name,
		Features: features,
		Label:    label,
		X:        x,
		Y:        y,
		encoder:  enc,
		frame:    df,
	}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Y) }

// Classes returns the class names indexed by class code.
func (d *Dataset) Classes() []string { return d.encoder.Classes() }

// Frame returns the underlying dataframe.
func (d *Dataset) Frame() dataframe.DataFrame { return d.frame }

// Preview renders the dataframe as text.
func (d *Dataset) Preview() string { return d.frame.String() }

// Records returns every sample as text, the header first.
func (d *Dataset) Records() [][]string { return d.frame.Records() }

// Subset returns the samples at the given row indexes, in that order.
func (d *Dataset) Subset(rows []int) *Dataset {
	_, c := d.X.Dims()
	x := &mat.Dense{}
	if len(rows) > 0 {
		x = mat.NewDense(len(rows), c, nil)
	}
	y := make([]int, len(rows))
	for i, r := range rows {
		x.SetRow(i, d.X.RawRowView(r))
		y[i] = d.Y[r]
	}
	return &Dataset{
		Name:     d.Name,
		Features: d.Features,
		Label:    d.Label,
		X:        x,
		Y:        y,
		encoder:  d.encoder,
		frame:    d.frame.Subset(rows),
	}
}
