// Package demo runs the classifier demo: it loads the selected dataset,
// trains the selected classifier, evaluates it on a held-out split and
// draws its decision boundary.
package demo

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/bachhm.dev/go-machine-learning/classification/boundary"
	"github.com/bachhm.dev/go-machine-learning/classification/dataset"
	"github.com/bachhm.dev/go-machine-learning/classification/model"
	"github.com/bachhm.dev/go-machine-learning/classification/report"
)

// ErrTooSmall is returned when the dataset cannot be split into a
// training and a test part.
var ErrTooSmall = errors.New("demo: dataset too small to split")

// Options selects the classifier and the dataset of a run. Empty fields
// select the defaults.
type Options struct {
	Classifier string
	Dataset    string
}

// Result is the outcome of a run.
type Result struct {
	Classifier model.Kind
	Dataset    dataset.Option
	// Data is the full dataset, Train and Test the sizes of its parts.
	Data        *dataset.Dataset
	Train, Test int
	Report      *report.Report
	// Rows and Cols give the lattice size of the plot.
	Rows, Cols int
	// PNG is the rendered decision boundary.
	PNG     []byte
	Elapsed time.Duration
}

// Service runs the demo with a fixed configuration.
type Service struct {
	cfg    Config
	logger *zap.Logger
	cache  *lru.Cache[string, *Result]
}

// NewService returns a Service. A nil logger discards logs.
func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{cfg: cfg, logger: logger}
	if cfg.Cache.Size > 0 {
		cache, err := lru.New[string, *Result](cfg.Cache.Size)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}
	return s, nil
}

// Config returns the service configuration.
func (s *Service) Config() Config { return s.cfg }

// Run trains and evaluates the selected classifier and renders its
// decision boundary over the test samples, coloured by predicted class.
func (s *Service) Run(opts Options) (*Result, error) {
	kind, err := model.ParseKind(opts.Classifier)
	if err != nil {
		return nil, err
	}
	opt, err := dataset.Resolve(opts.Dataset)
	if err != nil {
		return nil, err
	}
	key := string(kind) + "|" + opt.Name
	if s.cache != nil {
		if res, ok := s.cache.Get(key); ok {
			s.logger.Debug("cache hit", zap.String("classifier", string(kind)), zap.String("dataset", opt.Name))
			return res, nil
		}
	}

	start := time.Now()
	res, err := s.run(kind, opt)
	if err != nil {
		s.logger.Warn("run failed",
			zap.String("classifier", string(kind)),
			zap.String("dataset", opt.Name),
			zap.Error(err))
		return nil, err
	}
	res.Elapsed = time.Since(start)
	s.logger.Info("run",
		zap.String("classifier", string(kind)),
		zap.String("dataset", opt.Name),
		zap.Int("train", res.Train),
		zap.Int("test", res.Test),
		zap.Int("lattice_rows", res.Rows),
		zap.Int("lattice_cols", res.Cols),
		zap.Float64("accuracy", res.Report.Accuracy),
		zap.Duration("elapsed", res.Elapsed))
	if s.cache != nil {
		s.cache.Add(key, res)
	}
	return res, nil
}

func (s *Service) run(kind model.Kind, opt dataset.Option) (*Result, error) {
	// Load the dataset.
	d, err := dataset.LoadFile(filepath.Join(s.cfg.DataDir, opt.File))
	if err != nil {
		return nil, err
	}
	// Split the dataset into training and testing sets.
	train, test := d.Split(s.cfg.TestRatio, s.cfg.Seed)
	if train.Len() == 0 || test.Len() == 0 {
		return nil, ErrTooSmall
	}
	// Train the classifier.
	clf, err := model.New(kind, model.WithSeed(s.cfg.Seed))
	if err != nil {
		return nil, err
	}
	if err := clf.Fit(train.X, train.Y); err != nil {
		return nil, err
	}
	// Make predictions on the test data.
	yPred, err := clf.Predict(test.X)
	if err != nil {
		return nil, err
	}
	// Evaluate the predictions.
	rep, err := report.Evaluate(test.Y, yPred, d.Classes())
	if err != nil {
		return nil, err
	}
	// Visualize the classifier over the test samples.
	m, err := boundary.Compute(clf, test.X, s.cfg.Boundary)
	if err != nil {
		return nil, fmt.Errorf("demo: decision boundary: %w", err)
	}
	p, err := boundary.Render(m, test.X, yPred, string(kind), s.cfg.Plot.Style())
	if err != nil {
		return nil, err
	}
	png, err := encodePNG(p, s.cfg.Plot.Width, s.cfg.Plot.Height)
	if err != nil {
		return nil, err
	}
	return &Result{
		Classifier: kind,
		Dataset:    opt,
		Data:       d,
		Train:      train.Len(),
		Test:       test.Len(),
		Report:     rep,
		Rows:       m.Rows(),
		Cols:       m.Cols(),
		PNG:        png,
	}, nil
}

// Purge drops every cached result.
func (s *Service) Purge() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

func encodePNG(p *plot.Plot, width, height float64) ([]byte, error) {
	if width <= 0 {
		width = 6
	}
	if height <= 0 {
		height = 6
	}
	w, err := p.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
