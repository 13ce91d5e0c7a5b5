package costlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logText = `noise before any case
[INFO] T:1.000e+02 iter:   1 alpha:0.95 cost:  99999
ready to run case_1
[INFO] T:1.000e+02 iter:   1 alpha:0.95 cost:   5000
[INFO] T:9.500e+01 iter:   2 alpha:0.95 cost:   4800
[INFO] T:9.000e+01 warming up
[INFO] T:8.500e+01 iter:   3 alpha:0.95 cost:   4700
ready to run case_2
  Successfully read design files.
ready to run case_3
[INFO] T:1.000e+02 iter:   1 alpha:0.95 cost:    abc
[INFO] T:1.000e+02 iter:   2 alpha:0.95 cost:    300
`

func TestParse(t *testing.T) {
	sections, err := Parse(strings.NewReader(logText))
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, "ready to run case_1", sections[0].Header)
	assert.Equal(t, "case_1", sections[0].Case)
	// the marker-only line still counts as an iteration
	assert.Equal(t, []Point{{1, 5000}, {2, 4800}, {4, 4700}}, sections[0].Points)

	assert.Equal(t, "case_2", sections[1].Case)
	assert.Empty(t, sections[1].Points)

	assert.Equal(t, []Point{{2, 300}}, sections[2].Points)
	assert.Equal(t, 1, sections[2].Malformed)
}

func TestParseRepeatedHeaderResets(t *testing.T) {
	text := "ready to run a\n[INFO] T: cost: 1\nready to run b\n[INFO] T: cost: 2\nready to run a\n[INFO] T: cost: 3\n"

	sections, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, sections, 2)

	assert.Equal(t, "a", sections[0].Case)
	assert.Equal(t, []Point{{1, 3}}, sections[0].Points)
	assert.Equal(t, []Point{{1, 2}}, sections[1].Points)
}

func TestParseEmpty(t *testing.T) {
	sections, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, sections)
}
