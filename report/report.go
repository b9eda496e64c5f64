// Package report formats benchmark results for human and machine
// readers.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"llmchess/bench"
)

// Write prints a textual summary of one benchmark result.
func Write(w io.Writer, r *bench.Result) {
	fmt.Fprintln(w, "Benchmark Results:")
	fmt.Fprintf(w, "  Iterations: %d\n", r.NumIterations)
	fmt.Fprintf(w, "  Mean latency: %.4fs\n", r.Mean)
	fmt.Fprintf(w, "  Median latency: %.4fs\n", r.Median)
	fmt.Fprintf(w, "  Std dev: %.4fs\n", r.Stdev)
	fmt.Fprintf(w, "  Min: %.4fs\n", r.Min)
	fmt.Fprintf(w, "  Max: %.4fs\n", r.Max)
	fmt.Fprintf(w, "  P95: %.4fs\n", r.P95)
	fmt.Fprintf(w, "  P99: %.4fs\n", r.P99)
}

// WriteJSON writes the result as indented JSON to w.
func WriteJSON(w io.Writer, r *bench.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

// WriteComparison writes a markdown table comparing a baseline
// result against the current one, with per-metric percent change.
func WriteComparison(w io.Writer, baseline, current *bench.Result) {
	fmt.Fprintln(w, "| Metric | Baseline | Current | Change |")
	fmt.Fprintln(w, "|--------|----------|---------|--------|")

	rows := []struct {
		name      string
		base, cur float64
	}{
		{"mean", baseline.Mean, current.Mean},
		{"median", baseline.Median, current.Median},
		{"stdev", baseline.Stdev, current.Stdev},
		{"min", baseline.Min, current.Min},
		{"max", baseline.Max, current.Max},
		{"p95", baseline.P95, current.P95},
		{"p99", baseline.P99, current.P99},
	}

	for _, row := range rows {
		fmt.Fprintf(w, "| %s | %.4fs | %.4fs | %s |\n",
			row.name, row.base, row.cur, formatChange(row.base, row.cur),
		)
	}
}

func formatChange(base, cur float64) string {
	if base == 0 {
		return "-"
	}

	return fmt.Sprintf("%+.2f%%", (cur-base)/base*100)
}
