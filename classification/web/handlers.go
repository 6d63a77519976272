package web

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/bachhm.dev/go-machine-learning/classification/dataset"
	"github.com/bachhm.dev/go-machine-learning/classification/demo"
	"github.com/bachhm.dev/go-machine-learning/classification/model"
)

var page = template.Must(template.New("page").Parse(pageTemplate))

type handlers struct {
	runner Runner
	logger *zap.Logger
}

func (h *handlers) register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleIndex)
	mux.HandleFunc("/start", h.handleStart)
	mux.HandleFunc("/plot.png", h.handlePlot)
	mux.HandleFunc("/api/health", handleHealth)
}

type pageData struct {
	Classifiers []string
	Datasets    []string
	Classifier  string
	Dataset     string
	Result      *resultView
}

type resultView struct {
	Classifier string
	Header     []string
	Samples    [][]string
	Classes    []string
	Matrix     [][]int
	Metrics    [][]string
	Summary    string
	Plot       template.URL
	Train      int
	Test       int
	Lattice    string
}

func newPageData(opts demo.Options) pageData {
	d := pageData{
		Datasets:   dataset.Names(),
		Classifier: opts.Classifier,
		Dataset:    opts.Dataset,
	}
	for _, k := range model.Kinds() {
		d.Classifiers = append(d.Classifiers, string(k))
	}
	if d.Classifier == "" {
		d.Classifier = d.Classifiers[0]
	}
	if d.Dataset == "" {
		d.Dataset = d.Datasets[0]
	}
	return d
}

func optionsFrom(r *http.Request) demo.Options {
	q := r.URL.Query()
	return demo.Options{Classifier: q.Get("classifier"), Dataset: q.Get("dataset")}
}

func (h *handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.render(w, newPageData(optionsFrom(r)))
}

func (h *handlers) handleStart(w http.ResponseWriter, r *http.Request) {
	opts := optionsFrom(r)
	res, err := h.runner.Run(opts)
	if err != nil {
		h.fail(w, err)
		return
	}
	data := newPageData(opts)
	data.Result = newResultView(res)
	h.render(w, data)
}

func (h *handlers) handlePlot(w http.ResponseWriter, r *http.Request) {
	res, err := h.runner.Run(optionsFrom(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PNG)))
	w.Write(res.PNG)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func newResultView(res *demo.Result) *resultView {
	rep := res.Report
	v := &resultView{
		Classifier: string(res.Classifier),
		Classes:    rep.Classes,
		Matrix:     rep.Matrix,
		Metrics:    rep.MetricRows(),
		Summary:    rep.Summary,
		Plot:       template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(res.PNG)),
		Train:      res.Train,
		Test:       res.Test,
		Lattice:    strconv.Itoa(res.Rows) + " x " + strconv.Itoa(res.Cols),
	}
	if records := res.Data.Records(); len(records) > 0 {
		v.Header, v.Samples = records[0], records[1:]
	}
	return v
}

func (h *handlers) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}

func (h *handlers) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrUnknownKind) || errors.Is(err, dataset.ErrUnknown) {
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("run failed", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}
