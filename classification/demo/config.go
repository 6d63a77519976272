package demo

import (
	"errors"
	"io"
	"os"
	"time"

	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v2"

	"github.com/bachhm.dev/go-machine-learning/classification/boundary"
)

// Config holds the demo settings read from config.yaml.
type Config struct {
	// DataDir is the directory holding the dataset CSV files.
	DataDir   string          `yaml:"data_dir"`
	TestRatio float64         `yaml:"test_ratio"`
	Seed      uint64          `yaml:"seed"`
	Boundary  boundary.Config `yaml:"boundary"`
	Plot      PlotConfig      `yaml:"plot"`
	Cache     struct {
		// Size is the number of cached results. Zero disables the cache.
		Size int `yaml:"size"`
	} `yaml:"cache"`
	HTTP struct {
		Addr    string        `yaml:"addr"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"http"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	} `yaml:"log"`
}

// PlotConfig sizes and colours the decision boundary image.
type PlotConfig struct {
	// Width and Height are in inches.
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	BackgroundPalette string  `yaml:"background_palette"`
	PointPalette      string  `yaml:"point_palette"`
	// MarkerRadius and MarkerBorder are in points.
	MarkerRadius float64 `yaml:"marker_radius"`
	MarkerBorder float64 `yaml:"marker_border"`
}

// Style converts the plot settings into a boundary.Style.
func (c PlotConfig) Style() boundary.Style {
	return boundary.Style{
		Background:   c.BackgroundPalette,
		Points:       c.PointPalette,
		MarkerRadius: vg.Points(c.MarkerRadius),
		MarkerBorder: vg.Points(c.MarkerBorder),
	}
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	var c Config
	c.DataDir = "classification/dataset/testdata"
	c.TestRatio = 0.2
	c.Seed = 42
	c.Boundary = boundary.DefaultConfig()
	c.Plot = PlotConfig{
		Width:             6,
		Height:            6,
		BackgroundPalette: boundary.DefaultBackgroundPalette,
		PointPalette:      boundary.DefaultPointPalette,
		MarkerRadius:      5,
		MarkerBorder:      1,
	}
	c.Cache.Size = 32
	c.HTTP.Addr = ":8080"
	c.HTTP.Timeout = 60 * time.Second
	c.Log.Level = "info"
	c.Log.Format = "console"
	return c
}

// LoadConfig reads path over the defaults. A missing or empty file yields
// the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, err
	}
	return config, nil
}
