// Package script renders the per-case command file consumed by the checker.
package script

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"text/template"
)

var runTemplate = template.Must(template.New("run").Parse(`
read_arch {{.Arch}}/fpga.lib {{.Arch}}/fpga.scl {{.Arch}}/fpga.clk
report_arch

read_design {{.Bench}}/case_{{.Case}}.nodes {{.Bench}}/case_{{.Case}}.nets {{.Bench}}/case_{{.Case}}.timing
report_design

read_output {{.Bench}}/case_{{.Case}}.nodes

legal_check
report_wirelength
report_pin_density
exit
`))

var designPattern = regexp.MustCompile(`^\s*read_design\s+\S*case_(\d+)\.nodes`)

type Builder struct {
	WorkDir      string
	ArchDir      string
	BenchmarkDir string
}

func FileName(caseID int) string {
	return fmt.Sprintf("run_case_%d.tcl", caseID)
}

func LogName(caseID int) string {
	return fmt.Sprintf("run_case_%d.log", caseID)
}

// Build writes the command file for caseID, replacing any previous one, and
// returns its path.
func (b Builder) Build(caseID int) (string, error) {
	if caseID < 1 {
		return "", fmt.Errorf("invalid case id %d", caseID)
	}

	path := filepath.Join(b.WorkDir, FileName(caseID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	data := struct {
		Arch  string
		Bench string
		Case  int
	}{
		Arch:  filepath.ToSlash(b.ArchDir),
		Bench: filepath.ToSlash(b.BenchmarkDir),
		Case:  caseID,
	}

	if err := runTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, f.Close()
}

// ParseCaseID recovers the case id from the read_design directive of a
// generated command file.
func ParseCaseID(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m := designPattern.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		return strconv.Atoi(m[1])
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}

	return 0, fmt.Errorf("no read_design directive in %s", path)
}
