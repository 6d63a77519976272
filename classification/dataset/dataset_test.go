package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	csv := "x,y,class\n1.5,2,b\n-1,0.25,a\n3,4,b\n"
	d, err := Load(strings.NewReader(csv), "tiny")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", d.Len())
	}
	if diff := cmp.Diff([]string{"x", "y"}, d.Features); diff != "" {
		t.Fatalf("unexpected features (-want +got):\n%s", diff)
	}
	if d.Label != "class" {
		t.Fatalf("expected label column class, got %s", d.Label)
	}
	if diff := cmp.Diff([]string{"a", "b"}, d.Classes()); diff != "" {
		t.Fatalf("unexpected classes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 0, 1}, d.Y); diff != "" {
		t.Fatalf("unexpected labels (-want +got):\n%s", diff)
	}
	if d.X.At(0, 0) != 1.5 || d.X.At(1, 1) != 0.25 {
		t.Fatalf("unexpected features %v", d.X.RawMatrix().Data)
	}
	if !strings.Contains(d.Preview(), "class") {
		t.Fatalf("expected preview to show the header, got %q", d.Preview())
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		csv  string
		want error
	}{
		{"single column", "class\n0\n1\n", ErrNoFeatures},
		{"text feature", "x,y,class\n1,abc,0\n2,def,1\n", ErrNotNumeric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tc.csv), tc.name); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if _, err := Load(strings.NewReader("x,y,class\n"), "header only"); err == nil {
		t.Fatal("expected error for a file without rows")
	}
}

func TestEncoderNumericOrder(t *testing.T) {
	enc := NewEncoder([]string{"10", "2", "1", "2"})
	if diff := cmp.Diff([]string{"1", "2", "10"}, enc.Classes()); diff != "" {
		t.Fatalf("unexpected classes (-want +got):\n%s", diff)
	}
	if code, ok := enc.Encode("10"); !ok || code != 2 {
		t.Fatalf("expected code 2, got %d (%v)", code, ok)
	}
	if _, ok := enc.Encode("3"); ok {
		t.Fatal("expected unknown class")
	}
	if got := enc.Decode(1); got != "2" {
		t.Fatalf("expected class 2, got %s", got)
	}
	if got := enc.Decode(9); got != "9" {
		t.Fatalf("expected fallback 9, got %s", got)
	}
}

func TestSplit(t *testing.T) {
	d, err := LoadFile(filepath.Join("testdata", "three-clusters.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	train, test := d.Split(0.2, 42)
	if test.Len() != 30 || train.Len() != 120 {
		t.Fatalf("expected 120/30 split, got %d/%d", train.Len(), test.Len())
	}
	if train.Frame().Nrow() != train.Len() || test.Frame().Nrow() != test.Len() {
		t.Fatalf("dataframe rows do not follow the split")
	}

	// Every sample ends up in exactly one part.
	seen := make(map[[2]float64]int)
	for _, part := range []*Dataset{train, test} {
		for i := 0; i < part.Len(); i++ {
			seen[[2]float64{part.X.At(i, 0), part.X.At(i, 1)}]++
		}
	}
	for i := 0; i < d.Len(); i++ {
		if seen[[2]float64{d.X.At(i, 0), d.X.At(i, 1)}] == 0 {
			t.Fatalf("sample %d missing from the split", i)
		}
	}

	// The same seed gives the same split.
	_, again := d.Split(0.2, 42)
	if diff := cmp.Diff(test.Y, again.Y); diff != "" {
		t.Fatalf("split is not reproducible (-first +second):\n%s", diff)
	}
}

func TestSplitClamps(t *testing.T) {
	d, err := Load(strings.NewReader("x,y,c\n0,0,0\n1,1,1\n"), "pair")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ratio := range []float64{0, 0.2, 1} {
		train, test := d.Split(ratio, 1)
		if train.Len() != 1 || test.Len() != 1 {
			t.Fatalf("ratio %v: expected 1/1 split, got %d/%d", ratio, train.Len(), test.Len())
		}
	}
}

func TestOpen(t *testing.T) {
	for _, name := range Names() {
		d, err := Open("testdata", name)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if _, c := d.X.Dims(); c != 2 {
			t.Fatalf("%s: expected 2 features, got %d", name, c)
		}
	}
	if _, err := Open("testdata", "Nope"); !errors.Is(err, ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
	if _, err := Open(t.TempDir(), "Binary"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a missing file error, got %v", err)
	}
}

func TestResolveDefault(t *testing.T) {
	o, err := Resolve("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Name != "Multiclass" || o.File != "three-clusters.csv" {
		t.Fatalf("unexpected default %+v", o)
	}
}

func TestFolds(t *testing.T) {
	d, err := LoadFile(filepath.Join("testdata", "two-clusters.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	folds, err := d.Folds(4, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make([]int, d.Len())
	for _, f := range folds {
		if len(f) < 37 || len(f) > 38 {
			t.Fatalf("unbalanced fold of size %d", len(f))
		}
		for _, i := range f {
			seen[i]++
		}
	}
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("sample %d appears in %d folds", i, n)
		}
	}

	for _, k := range []int{0, 1, d.Len() + 1} {
		if _, err := d.Folds(k, 7); !errors.Is(err, ErrFolds) {
			t.Fatalf("k=%d: expected ErrFolds, got %v", k, err)
		}
	}
}

func TestRecords(t *testing.T) {
	d, err := LoadFile(filepath.Join("testdata", "three-clusters.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records := d.Records()
	if len(records) != d.Len()+1 {
		t.Fatalf("expected %d records, got %d", d.Len()+1, len(records))
	}
	if diff := cmp.Diff([]string{"feature1", "feature2", "class"}, records[0]); diff != "" {
		t.Fatalf("unexpected header (-want +got):\n%s", diff)
	}
}
