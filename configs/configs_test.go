package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
binary: /opt/checker/checker
cases:
  first: 2
  last: 5
poll_interval: 250ms
work_dir: /tmp/bench
format: json
envs:
  OMP_NUM_THREADS: "8"
`

func TestLoadFromBytes(t *testing.T) {
	config, err := LoadFromBytes([]byte(sample), nil)
	require.NoError(t, err)

	assert.Equal(t, "/opt/checker/checker", config.Binary)
	assert.Equal(t, []int{2, 3, 4, 5}, config.Cases.IDs())
	assert.Equal(t, 250*time.Millisecond, config.PollInterval)
	assert.Equal(t, "/tmp/bench", config.WorkDir)
	assert.Equal(t, FormatJSON, config.Format)
	assert.Equal(t, map[string]string{"OMP_NUM_THREADS": "8"}, config.Envs)

	// untouched keys keep their defaults
	assert.Equal(t, Default().ArchDir, config.ArchDir)
	assert.Equal(t, Default().BenchmarkDir, config.BenchmarkDir)
}

func TestOverrides(t *testing.T) {
	config, err := LoadFromBytes([]byte(sample), map[string]interface{}{
		"cases.last":    7,
		"poll_interval": "50ms",
		"format":        FormatYAML,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, config.Cases.First)
	assert.Equal(t, 7, config.Cases.Last)
	assert.Equal(t, 50*time.Millisecond, config.PollInterval)
	assert.Equal(t, FormatYAML, config.Format)
}

func TestLoadWithoutFile(t *testing.T) {
	config, err := Load("", map[string]interface{}{"binary": "/bin/true"})
	require.NoError(t, err)

	assert.Equal(t, "/bin/true", config.Binary)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, config.Cases.IDs())
	assert.Equal(t, 100*time.Millisecond, config.PollInterval)
	assert.Equal(t, FormatTable, config.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmon.yml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	config, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/opt/checker/checker", config.Binary)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Binary = "/bin/true"
	require.NoError(t, valid.Validate())

	cases := map[string]func(c *HarnessConfig){
		"missing binary": func(c *HarnessConfig) { c.Binary = "" },
		"zero first":     func(c *HarnessConfig) { c.Cases.First = 0 },
		"inverted range": func(c *HarnessConfig) { c.Cases = Cases{First: 5, Last: 2} },
		"zero interval":  func(c *HarnessConfig) { c.PollInterval = 0 },
		"unknown format": func(c *HarnessConfig) { c.Format = "xml" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestUnpackRunsValidation(t *testing.T) {
	_, err := LoadFromBytes([]byte("cases:\n  first: 3\n"), nil)
	assert.Error(t, err)
}

func TestCasesIDs(t *testing.T) {
	assert.Equal(t, []int{4}, Cases{First: 4, Last: 4}.IDs())
	assert.Empty(t, Cases{First: 4, Last: 3}.IDs())
}

func TestExampleConfig(t *testing.T) {
	config, err := Load("benchmon.example.yml", nil)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, config.Cases.IDs())
	assert.Equal(t, 100*time.Millisecond, config.PollInterval)
	assert.Empty(t, config.MetricsFile)
}
