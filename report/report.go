// Package report accumulates per-case results and renders the final table.
package report

import (
	"codeberg.org/iklabib/benchmon/model"
)

// Aggregator keeps results in the order they were added. It is not safe for
// concurrent use; cases run one at a time.
type Aggregator struct {
	RunID string

	results      []model.RunResult
	totalRuntime float64
	totalCPU     float64
	peakMemory   float64
	failed       int
}

func New(runID string) *Aggregator {
	return &Aggregator{RunID: runID}
}

func (a *Aggregator) Add(result model.RunResult) {
	a.results = append(a.results, result)
	a.totalRuntime += result.RuntimeSeconds
	a.totalCPU += result.AvgCPU
	a.peakMemory = max(a.peakMemory, result.PeakMemoryMB)
	if result.Failed {
		a.failed++
	}
}

// Failed records a zeroed row for a case that produced no measurement, so
// the report keeps one row per requested case.
func (a *Aggregator) Failed(caseID int, err error) {
	result := model.RunResult{CaseID: caseID, Failed: true}
	if err != nil {
		result.Message = err.Error()
	}
	a.Add(result)
}

func (a *Aggregator) Results() []model.RunResult {
	return append([]model.RunResult(nil), a.results...)
}

func (a *Aggregator) Len() int {
	return len(a.results)
}

// Totals averages over every row, failed rows included.
func (a *Aggregator) Totals() model.ReportTotals {
	totals := model.ReportTotals{
		TotalRuntime: a.totalRuntime,
		PeakMemory:   a.peakMemory,
		Cases:        len(a.results),
		Failed:       a.failed,
	}

	if n := len(a.results); n > 0 {
		totals.AvgRuntime = a.totalRuntime / float64(n)
		totals.AvgCPU = a.totalCPU / float64(n)
	}

	return totals
}
