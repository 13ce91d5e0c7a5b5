package summary

import (
	"time"

	"codeberg.org/iklabib/benchmon/model"
	"github.com/samber/lo"
)

// Summarize reduces a sample series to one result row. An empty series
// yields zero usage.
func Summarize(caseID int, series model.SampleSeries, elapsed time.Duration) model.RunResult {
	result := model.RunResult{
		CaseID:         caseID,
		RuntimeSeconds: elapsed.Seconds(),
		Samples:        len(series),
	}

	if len(series) == 0 {
		return result
	}

	result.AvgCPU = lo.SumBy(series, func(s model.Sample) float64 {
		return s.CPUPercent
	}) / float64(len(series))

	result.PeakMemoryMB = lo.Max(lo.Map(series, func(s model.Sample, _ int) float64 {
		return s.MemoryMB
	}))

	result.MaxThreads = lo.Max(lo.Map(series, func(s model.Sample, _ int) int {
		return s.Threads
	}))

	return result
}
