// Package bench runs AI move latency benchmarks and checks current
// results against stored baselines.
package bench

import (
	"encoding/json"
	"fmt"
	"os"
)

// Result holds the structured output of one benchmark run. A
// baseline file only needs to supply "mean" to be usable by the
// regression check; the remaining fields are informational.
type Result struct {
	NumIterations    int       `json:"num_iterations"`
	MockResponseTime float64   `json:"mock_response_time"`
	Latencies        []float64 `json:"latencies"`
	Mean             float64   `json:"mean"`
	Median           float64   `json:"median"`
	Stdev            float64   `json:"stdev"`
	Min              float64   `json:"min"`
	Max              float64   `json:"max"`
	P95              float64   `json:"p95"`
	P99              float64   `json:"p99"`
}

// LoadResult reads a result record from path. A missing file is
// reported as an error satisfying errors.Is(err, os.ErrNotExist).
func LoadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", path, err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode results %s: %w", path, err)
	}

	return &result, nil
}
