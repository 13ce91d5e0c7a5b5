package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/iklabib/benchmon/configs"
	"codeberg.org/iklabib/benchmon/costlog"
	"codeberg.org/iklabib/benchmon/harness"
	"codeberg.org/iklabib/benchmon/plot"
	"codeberg.org/iklabib/benchmon/util"
	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("benchmon"),
		kong.Description("Run a checker over benchmark cases and report its resource usage."),
		kong.UsageOnError(),
	)

	util.Bail(ctx.Run(&cli.Globals))
}

type Globals struct {
	Config  string `short:"c" type:"existingfile" help:"YAML configuration file."`
	Verbose bool   `short:"v" help:"Log every resource sample."`
}

type CLI struct {
	Globals

	Run     RunCmd     `cmd:"" help:"Run the checker once per case and print the report."`
	Analyse AnalyseCmd `cmd:"" help:"Plot cost against iteration for every case in an optimizer log."`
}

type RunCmd struct {
	Binary       string        `help:"Checker binary." type:"path"`
	First        int           `help:"First case id."`
	Last         int           `help:"Last case id (inclusive)."`
	Interval     time.Duration `help:"Sampling interval."`
	WorkDir      string        `help:"Directory for generated scripts and logs." type:"path"`
	ArchDir      string        `help:"Directory holding fpga.lib, fpga.scl and fpga.clk."`
	BenchmarkDir string        `help:"Directory holding case_<id>.{nodes,nets,timing}."`
	Format       string        `help:"Report format: table, json or yaml."`
	MetricsFile  string        `help:"Also write Prometheus textfile metrics here." type:"path"`
}

// overrides maps the flags that were given onto config keys.
func (r *RunCmd) overrides() map[string]interface{} {
	o := map[string]interface{}{}
	set := func(key string, value interface{}, ok bool) {
		if ok {
			o[key] = value
		}
	}

	set("binary", r.Binary, r.Binary != "")
	set("cases.first", r.First, r.First != 0)
	set("cases.last", r.Last, r.Last != 0)
	set("poll_interval", r.Interval.String(), r.Interval != 0)
	set("work_dir", r.WorkDir, r.WorkDir != "")
	set("arch_dir", r.ArchDir, r.ArchDir != "")
	set("benchmark_dir", r.BenchmarkDir, r.BenchmarkDir != "")
	set("format", r.Format, r.Format != "")
	set("metrics_file", r.MetricsFile, r.MetricsFile != "")

	return o
}

func (r *RunCmd) Run(g *Globals) error {
	setupLogging(g.Verbose)

	config, err := configs.Load(g.Config, r.overrides())
	if err != nil {
		return err
	}

	h, err := harness.New(config, log.StandardLogger(), os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agg, runErr := h.Run(ctx)
	if errors.Is(runErr, harness.ErrBinaryNotFound) || agg == nil {
		return runErr
	}

	if err := agg.Render(os.Stdout, config.Format); err != nil {
		return err
	}

	if config.MetricsFile != "" {
		if err := agg.WriteMetrics(config.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	return runErr
}

type AnalyseCmd struct {
	Log string `arg:"" type:"existingfile" help:"Optimizer log file."`
	Out string `default:"0_Result_Graph/SA_280s" type:"path" help:"Directory for the plots."`
}

func (a *AnalyseCmd) Run(g *Globals) error {
	setupLogging(g.Verbose)

	f, err := os.Open(a.Log)
	if err != nil {
		return err
	}
	defer f.Close()

	sections, err := costlog.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", a.Log, err)
	}

	for _, s := range sections {
		logger := log.WithField("case", s.Case)
		if s.Malformed > 0 {
			logger.WithField("lines", s.Malformed).Warn("skipped iteration lines with unreadable cost")
		}
		if len(s.Points) == 0 {
			logger.Info("no iterations, no plot")
		}
	}

	paths, err := plot.RenderAll(context.Background(), sections, a.Out)
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func setupLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}
