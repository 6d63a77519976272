package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrUnknown is returned for a dataset name that is not registered.
var ErrUnknown = errors.New("dataset: unknown dataset")

// Option is a selectable dataset.
type Option struct {
	Name string
	File string
}

// Options lists the bundled datasets in display order. The first is the default.
var Options = []Option{
	{Name: "Multiclass", File: "three-clusters.csv"},
	{Name: "Binary", File: "two-clusters.csv"},
}

// Names returns the names of the registered datasets.
func Names() []string {
	names := make([]string, len(Options))
	for i, o := range Options {
		names[i] = o.Name
	}
	return names
}

// Resolve returns the option called name. An empty name selects the default.
func Resolve(name string) (Option, error) {
	if name == "" {
		return Options[0], nil
	}
	for _, o := range Options {
		if o.Name == name {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Open resolves name and loads its file from dir.
func Open(dir, name string) (*Dataset, error) {
	o, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(dir, o.File))
}
