package configs

import (
	"fmt"
	"time"

	"github.com/elastic/go-ucfg"
	"github.com/elastic/go-ucfg/yaml"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

type Cases struct {
	First int `config:"first" json:"first" yaml:"first"`
	Last  int `config:"last" json:"last" yaml:"last"`
}

// IDs returns the contiguous, inclusive range of case ids.
func (c Cases) IDs() []int {
	if c.Last < c.First {
		return nil
	}
	ids := make([]int, 0, c.Last-c.First+1)
	for id := c.First; id <= c.Last; id++ {
		ids = append(ids, id)
	}
	return ids
}

type HarnessConfig struct {
	Binary       string            `config:"binary" json:"binary"`
	Cases        Cases             `config:"cases" json:"cases"`
	PollInterval time.Duration     `config:"poll_interval" json:"poll_interval"`
	WorkDir      string            `config:"work_dir" json:"work_dir"`
	ArchDir      string            `config:"arch_dir" json:"arch_dir"`
	BenchmarkDir string            `config:"benchmark_dir" json:"benchmark_dir"`
	Format       string            `config:"format" json:"format"`
	MetricsFile  string            `config:"metrics_file" json:"metrics_file"`
	Envs         map[string]string `config:"envs" json:"envs"`
	User         string            `config:"user" json:"user"`
	Group        string            `config:"group" json:"group"`
}

func Default() HarnessConfig {
	return HarnessConfig{
		Cases:        Cases{First: 1, Last: 9},
		PollInterval: 100 * time.Millisecond,
		WorkDir:      ".",
		ArchDir:      "Arch",
		BenchmarkDir: "Benchmark/public_release",
		Format:       FormatTable,
	}
}

// Validate is invoked by ucfg after unpacking.
func (c HarnessConfig) Validate() error {
	if c.Binary == "" {
		return fmt.Errorf("binary is required")
	}
	if c.Cases.First < 1 {
		return fmt.Errorf("cases.first must be positive, got %d", c.Cases.First)
	}
	if c.Cases.Last < c.Cases.First {
		return fmt.Errorf("cases.last (%d) is before cases.first (%d)", c.Cases.Last, c.Cases.First)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	switch c.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format '%s'", c.Format)
	}
	return nil
}

var options = []ucfg.Option{ucfg.PathSep("."), ucfg.ResolveEnv}

// Load merges the YAML file at path (optional) and the overrides on top of
// the defaults, then validates the result.
func Load(path string, overrides map[string]interface{}) (HarnessConfig, error) {
	raw := ucfg.New()
	if path != "" {
		file, err := yaml.NewConfigWithFile(path, options...)
		if err != nil {
			return HarnessConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := raw.Merge(file, options...); err != nil {
			return HarnessConfig{}, err
		}
	}

	return unpack(raw, overrides)
}

func LoadFromBytes(buf []byte, overrides map[string]interface{}) (HarnessConfig, error) {
	raw, err := yaml.NewConfig(buf, options...)
	if err != nil {
		return HarnessConfig{}, err
	}

	return unpack(raw, overrides)
}

func unpack(raw *ucfg.Config, overrides map[string]interface{}) (HarnessConfig, error) {
	if len(overrides) > 0 {
		if err := raw.Merge(overrides, options...); err != nil {
			return HarnessConfig{}, err
		}
	}

	config := Default()
	if err := raw.Unpack(&config, options...); err != nil {
		return HarnessConfig{}, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
