// Package report renders the analysis results for the terminal: plain tables
// for model comparison and rankings, an ascii curve for the k sweep.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"

	"github.com/spigell/attrition-report/internal/dataset"
	"github.com/spigell/attrition-report/internal/evaluation"
)

// Comparison writes the per-model metric table, marking the best performer
// and any degraded model.
func Comparison(w io.Writer, results []evaluation.Result, best int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Model", "Recall", "Accuracy", "Specificity", "NIR", ""})
	for i, r := range results {
		note := ""
		if i == best {
			note = "best"
		}
		if r.Degraded {
			if note != "" {
				note += ", "
			}
			note += "degraded"
		}
		table.Append([]string{
			r.Model,
			rate(r.Recall),
			rate(r.Accuracy),
			rate(r.Specificity),
			rate(r.NIR),
			note,
		})
	}
	table.Render()
}

// Confusion writes one model's 2x2 confusion matrix.
func Confusion(w io.Writer, r evaluation.Result) {
	fmt.Fprintf(w, "%s (n=%d)\n", r.Model, r.Matrix.Total())
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", "Actual Yes", "Actual No"})
	table.Append([]string{"Predicted Yes", strconv.Itoa(r.Matrix.TP), strconv.Itoa(r.Matrix.FP)})
	table.Append([]string{"Predicted No", strconv.Itoa(r.Matrix.FN), strconv.Itoa(r.Matrix.TN)})
	table.Render()
}

// Importance writes attribute-importance scores in descending order.
func Importance(w io.Writer, model string, scores map[string]float64) {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if scores[names[i]] == scores[names[j]] {
			return names[i] < names[j]
		}
		return scores[names[i]] > scores[names[j]]
	})

	fmt.Fprintf(w, "attribute importance: %s\n", model)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Attribute", "Importance"})
	for _, name := range names {
		table.Append([]string{name, fmt.Sprintf("%.4f", scores[name])})
	}
	table.Render()
}

// Sweep writes the k-sweep error curve plus the underlying values.
func Sweep(w io.Writer, points []evaluation.KPoint) {
	if len(points) == 0 {
		return
	}
	errs := make([]float64, len(points))
	for i, p := range points {
		errs[i] = p.ErrorRate
	}
	fmt.Fprintln(w, asciigraph.Plot(errs,
		asciigraph.Height(10),
		asciigraph.Caption(fmt.Sprintf("test error rate for k=%d..%d", points[0].K, points[len(points)-1].K)),
	))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"K", "Error rate", "Recall"})
	for _, p := range points {
		table.Append([]string{strconv.Itoa(p.K), rate(p.ErrorRate), rate(p.Recall)})
	}
	table.Render()
}

// CrossTabs writes the attrition share per level of each finite-domain
// attribute.
func CrossTabs(w io.Writer, tabs []dataset.CrossTab) {
	for _, tab := range tabs {
		fmt.Fprintf(w, "attrition by %s\n", tab.Attribute)
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Level", "Count", "Yes", "Yes share"})
		for _, row := range tab.Rows {
			table.Append([]string{
				row.Level,
				strconv.Itoa(row.Count),
				strconv.Itoa(row.Positive),
				rate(row.Share),
			})
		}
		table.Render()
	}
}

// rate formats a metric, printing undefined values as n/a instead of a number.
func rate(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}
