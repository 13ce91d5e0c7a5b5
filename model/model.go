package model

import (
	"os"
	"time"
)

type CaseSpec struct {
	CaseID     int    `json:"case_id" yaml:"case_id"`
	InputPath  string `json:"input_path" yaml:"input_path"`
	BinaryPath string `json:"binary_path" yaml:"binary_path"`
}

// Sample is one poll of the child's resource usage.
type Sample struct {
	CPUPercent float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryMB   float64 `json:"memory_mb" yaml:"memory_mb"`
	Threads    int     `json:"threads" yaml:"threads"`
}

type SampleSeries []Sample

// Metrics is what the kernel reports once the child has been reaped.
type Metrics struct {
	Signal   os.Signal     `json:"signal" yaml:"signal"`
	ExitCode int           `json:"exit_code" yaml:"exit_code"`
	SysTime  time.Duration `json:"sys_time" yaml:"sys_time"`
	UserTime time.Duration `json:"time" yaml:"user_time"`
	MaxRSS   int64         `json:"max_rss" yaml:"max_rss"` // kb
}

type RunResult struct {
	CaseID         int     `json:"case_id" yaml:"case_id"`
	RuntimeSeconds float64 `json:"runtime_seconds" yaml:"runtime_seconds"`
	AvgCPU         float64 `json:"avg_cpu" yaml:"avg_cpu"`
	PeakMemoryMB   float64 `json:"peak_memory_mb" yaml:"peak_memory_mb"`
	MaxThreads     int     `json:"max_threads" yaml:"max_threads"`
	Samples        int     `json:"samples" yaml:"samples"`
	Metric         Metrics `json:"metric" yaml:"metric"`
	Failed         bool    `json:"failed" yaml:"failed"`
	Message        string  `json:"message,omitempty" yaml:"message,omitempty"`
}

type ReportTotals struct {
	TotalRuntime float64 `json:"total_runtime" yaml:"total_runtime"`
	AvgRuntime   float64 `json:"avg_runtime" yaml:"avg_runtime"`
	AvgCPU       float64 `json:"avg_cpu" yaml:"avg_cpu"`
	PeakMemory   float64 `json:"peak_memory_mb" yaml:"peak_memory_mb"`
	Cases        int     `json:"cases" yaml:"cases"`
	Failed       int     `json:"failed" yaml:"failed"`
}
