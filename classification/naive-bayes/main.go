// Command naive-bayes compares Gaussian and Bernoulli naive Bayes, along
// with a few other golearn classifiers, on two-feature datasets and draws
// their decision boundaries.
//
// Usage:
//
//	naive-bayes [-config config.yaml] run [-classifier name] [-dataset name] [-out plot.png]
//	naive-bayes [-config config.yaml] cv [-classifier name] [-dataset name] [-folds 5]
//	naive-bayes [-config config.yaml] serve [-addr :8080]
//	naive-bayes list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bachhm.dev/go-machine-learning/classification/dataset"
	"github.com/bachhm.dev/go-machine-learning/classification/demo"
	"github.com/bachhm.dev/go-machine-learning/classification/model"
	"github.com/bachhm.dev/go-machine-learning/classification/web"
)

var errUsage = errors.New("usage: naive-bayes [-config file] run|cv|serve|list [flags]")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses the global flags and dispatches to the subcommand.
func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("naive-bayes", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "path to the configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	// Load the configuration, falling back to the defaults.
	cfg, err := demo.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	if cmd == "list" {
		return list(stdout)
	}

	// Build the logger and the demo service.
	logger, err := newLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	svc, err := demo.NewService(cfg, logger)
	if err != nil {
		return err
	}

	switch cmd {
	case "run":
		return runOnce(svc, rest, stdout)
	case "cv":
		return crossValidate(svc, rest, stdout)
	case "serve":
		return serve(svc, rest, logger)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func list(w io.Writer) error {
	fmt.Fprintln(w, "Classifiers:")
	for _, k := range model.Kinds() {
		fmt.Fprintf(w, "  %s\n", k)
	}
	fmt.Fprintln(w, "Datasets:")
	for _, o := range dataset.Options {
		fmt.Fprintf(w, "  %s (%s)\n", o.Name, o.File)
	}
	return nil
}

// runOnce trains one classifier, prints its report and writes the plot.
func runOnce(svc *demo.Service, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	classifier := fs.String("classifier", string(model.GaussianNB), "classifier to train")
	name := fs.String("dataset", dataset.Options[0].Name, "dataset to load")
	out := fs.String("out", "decision-boundary.png", "output PNG file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := svc.Run(demo.Options{Classifier: *classifier, Dataset: *name})
	if err != nil {
		return err
	}

	// Print the dataset, the confusion matrix and the metrics.
	fmt.Fprintf(stdout, "The Dataset (%s)\n%s\n\n", res.Dataset.Name, res.Data.Preview())
	fmt.Fprintf(stdout, "%s: %d training and %d test samples\n\n", res.Classifier, res.Train, res.Test)
	fmt.Fprintln(stdout, "Confusion Matrix")
	res.Report.WriteConfusion(stdout)
	fmt.Fprintln(stdout, "\nPerformance Metrics")
	res.Report.WriteMetrics(stdout)
	fmt.Fprintf(stdout, "\nAccuracy: %0.2f\n", res.Report.Accuracy)

	// Save the decision boundary.
	if err := os.WriteFile(*out, res.PNG, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Decision boundary (%d x %d lattice) written to %s\n", res.Rows, res.Cols, *out)
	return nil
}

// crossValidate prints the k-fold cross-validated accuracy.
func crossValidate(svc *demo.Service, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("cv", flag.ContinueOnError)
	classifier := fs.String("classifier", string(model.GaussianNB), "classifier to train")
	name := fs.String("dataset", dataset.Options[0].Name, "dataset to load")
	folds := fs.Int("folds", 5, "number of folds")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cv, err := svc.CrossValidate(demo.Options{Classifier: *classifier, Dataset: *name}, *folds)
	if err != nil {
		return err
	}
	// Print the cross-validation accuracy metrics.
	fmt.Fprintf(stdout, "%s on %s, %d folds\nAccuracy\n%.2f (+/- %.2f)\n", cv.Classifier, cv.Dataset.Name, len(cv.Accuracies), cv.Mean, cv.StdDev*2)
	return nil
}

// serve runs the web demo and the dataset watcher until interrupted.
func serve(svc *demo.Service, args []string, logger *zap.Logger) error {
	cfg := svc.Config()
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", cfg.HTTP.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(*addr, cfg.HTTP.Timeout, svc, logger)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error { return svc.Watch(ctx) })
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(shutdown)
	})
	return g.Wait()
}
