package summary

import (
	"testing"
	"time"

	"codeberg.org/iklabib/benchmon/model"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmptySeries(t *testing.T) {
	result := Summarize(4, nil, 20*time.Millisecond)

	assert.Equal(t, 4, result.CaseID)
	assert.Equal(t, 0.0, result.AvgCPU)
	assert.Equal(t, 0.0, result.PeakMemoryMB)
	assert.Equal(t, 0, result.MaxThreads)
	assert.Equal(t, 0, result.Samples)
	assert.InDelta(t, 0.02, result.RuntimeSeconds, 1e-9)
}

func TestSummarizePeakMemoryIsExactMax(t *testing.T) {
	series := model.SampleSeries{
		{CPUPercent: 90, MemoryMB: 10, Threads: 1},
		{CPUPercent: 100, MemoryMB: 15, Threads: 4},
		{CPUPercent: 80, MemoryMB: 12, Threads: 2},
	}

	result := Summarize(1, series, 300*time.Millisecond)

	assert.Equal(t, 15.0, result.PeakMemoryMB)
	assert.Equal(t, 4, result.MaxThreads)
	assert.InDelta(t, 90.0, result.AvgCPU, 1e-9)
	assert.Equal(t, 3, result.Samples)
	assert.InDelta(t, 0.3, result.RuntimeSeconds, 1e-9)
}

func TestSummarizeRuntimePassthrough(t *testing.T) {
	result := Summarize(2, model.SampleSeries{{MemoryMB: 1}}, 2500*time.Millisecond)
	assert.Equal(t, 2.5, result.RuntimeSeconds)
}
