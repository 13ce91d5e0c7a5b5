package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"codeberg.org/iklabib/benchmon/configs"
	"codeberg.org/iklabib/benchmon/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

var headers = []string{"Case", "Runtime", "Average CPU", "Peak Memory", "Max Thread", "Status"}

type document struct {
	RunID   string             `json:"run_id" yaml:"run_id"`
	Results []model.RunResult  `json:"results" yaml:"results"`
	Totals  model.ReportTotals `json:"totals" yaml:"totals"`
}

func (a *Aggregator) Render(w io.Writer, format string) error {
	switch format {
	case configs.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a.document())
	case configs.FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(a.document())
	case configs.FormatTable, "":
		return a.renderTable(w)
	default:
		return fmt.Errorf("unknown format '%s'", format)
	}
}

func (a *Aggregator) document() document {
	return document{
		RunID:   a.RunID,
		Results: a.Results(),
		Totals:  a.Totals(),
	}
}

func (a *Aggregator) renderTable(w io.Writer) error {
	rows := make([][]string, 0, len(a.results))
	for _, r := range a.results {
		rows = append(rows, Row(r))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)

	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}

	totals := a.Totals()
	_, err := fmt.Fprintf(w,
		"Total runtime for all cases: %.4f seconds\n"+
			"Average runtime per case: %.4f seconds\n"+
			"Average CPU usage across all cases: %.2f%%\n"+
			"Peak memory usage across all cases: %.2f MB\n",
		totals.TotalRuntime, totals.AvgRuntime, totals.AvgCPU, totals.PeakMemory)
	if err != nil {
		return err
	}

	if totals.Failed > 0 {
		_, err = fmt.Fprintf(w, "Failed cases: %d of %d\n", totals.Failed, totals.Cases)
	}
	return err
}

// Row formats one result the way the table shows it.
func Row(r model.RunResult) []string {
	return []string{
		fmt.Sprintf("Case %d", r.CaseID),
		fmt.Sprintf("%.4f seconds", r.RuntimeSeconds),
		fmt.Sprintf("%.2f%%", r.AvgCPU),
		fmt.Sprintf("%.2f MB", r.PeakMemoryMB),
		strconv.Itoa(r.MaxThreads),
		Status(r),
	}
}

func Status(r model.RunResult) string {
	switch {
	case r.Failed:
		return "FAILED"
	case r.Metric.Signal != nil:
		return "signal " + r.Metric.Signal.String()
	case r.Metric.ExitCode != 0:
		return fmt.Sprintf("exit %d", r.Metric.ExitCode)
	default:
		return "ok"
	}
}

// PrintCase writes the per-case block shown while the run progresses.
func PrintCase(w io.Writer, r model.RunResult) {
	fmt.Fprintf(w, "Case %d:\n", r.CaseID)
	if r.Failed {
		fmt.Fprintf(w, "Failed: %s\n", r.Message)
	} else {
		fmt.Fprintf(w, "Runtime: %.4f seconds\n", r.RuntimeSeconds)
		fmt.Fprintf(w, "Average CPU usage: %.2f%%\n", r.AvgCPU)
		fmt.Fprintf(w, "Peak memory usage: %.2f MB\n", r.PeakMemoryMB)
		fmt.Fprintf(w, "Max thread count: %d\n", r.MaxThreads)
	}
	fmt.Fprintln(w, "----------------------------------------")
}
