// Package costlog extracts per-case cost curves from optimizer logs.
//
// A line containing "ready to run" opens a case section. Every following line
// carrying the iteration marker "[INFO] T:" advances the iteration counter,
// and the integer after "cost:" on that line becomes a point.
package costlog

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const (
	readyMarker = "ready to run"
	iterMarker  = "[INFO] T:"
	costMarker  = "cost:"
)

type Point struct {
	Iteration int
	Cost      int
}

type Section struct {
	Header string
	Case   string
	Points []Point
	// iteration lines whose cost could not be read
	Malformed int
}

// Parse reads sections in the order their header first appears. A header
// seen again restarts its section in place.
func Parse(r io.Reader) ([]Section, error) {
	var sections []Section
	index := map[string]int{}
	current := -1
	iteration := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()

		switch {
		case strings.Contains(line, readyMarker):
			header := strings.TrimSpace(line)
			section := Section{Header: header, Case: caseName(header)}
			if i, ok := index[header]; ok {
				sections[i] = section
				current = i
			} else {
				index[header] = len(sections)
				current = len(sections)
				sections = append(sections, section)
			}
			iteration = 0

		case current >= 0 && strings.Contains(line, iterMarker):
			iteration++
			_, after, found := strings.Cut(line, costMarker)
			if !found {
				continue
			}
			cost, err := strconv.Atoi(strings.TrimSpace(after))
			if err != nil {
				sections[current].Malformed++
				continue
			}
			sections[current].Points = append(sections[current].Points, Point{Iteration: iteration, Cost: cost})
		}
	}

	return sections, sc.Err()
}

func caseName(header string) string {
	fields := strings.Split(header, " ")
	return fields[len(fields)-1]
}
