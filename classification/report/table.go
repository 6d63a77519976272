package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteConfusion writes the confusion matrix as a text table.
func (r *Report) WriteConfusion(w io.Writer) {
	table := tablewriter.NewWriter(w)
	header := []string{"actual \\ predicted"}
	header = append(header, r.Classes...)
	table.SetHeader(header)
	for i, row := range r.Matrix {
		cells := []string{r.Classes[i]}
		for _, n := range row {
			cells = append(cells, strconv.Itoa(n))
		}
		table.Append(cells)
	}
	table.Render()
}

// WriteMetrics writes precision, recall, F1 and support per class, followed
// by the accuracy and the averages.
func (r *Report) WriteMetrics(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"class", "precision", "recall", "f1-score", "support"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk(r.MetricRows())
	table.Render()
}

// MetricRows returns the rows of the metrics table: one per class, then the
// accuracy and the macro and weighted averages.
func (r *Report) MetricRows() [][]string {
	rows := make([][]string, 0, len(r.Metrics)+3)
	for _, m := range r.Metrics {
		rows = append(rows, m.Row())
	}
	rows = append(rows, []string{"accuracy", "", "", FormatScore(r.Accuracy), strconv.Itoa(r.Support())})
	return append(rows, r.MacroAverage().Row(), r.WeightedAverage().Row())
}

// Row formats m as class, precision, recall, F1 and support.
func (m ClassMetrics) Row() []string {
	return []string{m.Class, FormatScore(m.Precision), FormatScore(m.Recall), FormatScore(m.F1), strconv.Itoa(m.Support)}
}

// FormatScore formats a score with two decimals.
func FormatScore(v float64) string {
	return fmt.Sprintf("%0.2f", v)
}
