// Package harness runs the checker over a range of cases, one at a time, and
// collects a report row for each of them.
package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"codeberg.org/iklabib/benchmon/configs"
	"codeberg.org/iklabib/benchmon/model"
	"codeberg.org/iklabib/benchmon/procattr"
	"codeberg.org/iklabib/benchmon/report"
	"codeberg.org/iklabib/benchmon/sampler"
	"codeberg.org/iklabib/benchmon/script"
	"codeberg.org/iklabib/benchmon/summary"
	"codeberg.org/iklabib/benchmon/util"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrBinaryNotFound is fatal for the whole run: no case is attempted.
var ErrBinaryNotFound = errors.New("binary is not found")

type Harness struct {
	config  configs.HarnessConfig
	builder script.Builder
	sampler *sampler.Sampler
	logger  *log.Entry
	out     io.Writer
	runID   string
}

// New prepares a harness. Progress blocks are written to out; nil discards
// them.
func New(config configs.HarnessConfig, logger *log.Logger, out io.Writer) (*Harness, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	if out == nil {
		out = io.Discard
	}

	cred, err := procattr.Credential(config.User, config.Group)
	if err != nil {
		return nil, err
	}

	s := sampler.New(config.PollInterval)
	s.Env = procattr.Env(config.Envs)
	s.Credential = cred

	runID := uuid.NewString()
	entry := logger.WithField("run_id", runID)
	s.Logger = entry

	builder := script.Builder{
		WorkDir:      config.WorkDir,
		ArchDir:      config.ArchDir,
		BenchmarkDir: config.BenchmarkDir,
	}

	return &Harness{
		config:  config,
		builder: builder,
		sampler: s,
		logger:  entry,
		out:     out,
		runID:   runID,
	}, nil
}

func (h *Harness) RunID() string {
	return h.runID
}

// Run executes every configured case in order. Only a missing binary or an
// unusable work directory stops it before the first case; per-case failures
// become flagged rows. If ctx is cancelled, the remaining cases are recorded
// as failed and Run returns ctx's error along with the report.
func (h *Harness) Run(ctx context.Context) (*report.Aggregator, error) {
	if err := util.CheckExecutable(h.config.Binary); err != nil {
		h.logger.WithError(err).Errorf("binary is not found in path %s", h.config.Binary)
		return nil, fmt.Errorf("%w: %s: %v", ErrBinaryNotFound, h.config.Binary, err)
	}

	if err := util.EnsureDir(h.config.WorkDir); err != nil {
		return nil, fmt.Errorf("failed to create work dir %s: %w", h.config.WorkDir, err)
	}

	agg := report.New(h.RunID())
	for _, id := range h.config.Cases.IDs() {
		if err := ctx.Err(); err != nil {
			agg.Failed(id, err)
			continue
		}

		result := h.runCase(ctx, id)
		agg.Add(result)
		report.PrintCase(h.out, result)
	}

	return agg, ctx.Err()
}

func (h *Harness) runCase(ctx context.Context, id int) model.RunResult {
	logger := h.logger.WithField("case", id)

	input, err := h.builder.Build(id)
	if err != nil {
		logger.WithError(err).Error("failed to generate case input")
		return failed(id, err)
	}

	spec := model.CaseSpec{CaseID: id, InputPath: input, BinaryPath: h.config.Binary}
	logPath := filepath.Join(h.config.WorkDir, script.LogName(id))

	logger.WithField("input", input).Info("running case")
	outcome, err := h.sampler.Run(ctx, spec, logPath)
	if err != nil {
		var spawnErr *sampler.SpawnError
		if errors.As(err, &spawnErr) {
			logger.WithError(err).Error("failed to spawn checker, case skipped")
		} else {
			logger.WithError(err).Error("case did not complete")
		}
		return failed(id, err)
	}

	result := summary.Summarize(id, outcome.Series, outcome.Elapsed)
	result.Metric = outcome.Metric

	fields := log.Fields{
		"runtime": result.RuntimeSeconds,
		"samples": result.Samples,
		"exit":    result.Metric.ExitCode,
	}
	switch {
	case result.Metric.Signal != nil:
		result.Message = fmt.Sprintf("terminated by %s", result.Metric.Signal)
		logger.WithFields(fields).Warn("checker was killed by a signal, see " + logPath)
	case result.Metric.ExitCode != 0:
		result.Message = fmt.Sprintf("exit code %d", result.Metric.ExitCode)
		logger.WithFields(fields).Warn("checker exited abnormally, see " + logPath)
	default:
		logger.WithFields(fields).Info("case finished")
	}

	return result
}

func failed(id int, err error) model.RunResult {
	return model.RunResult{CaseID: id, Failed: true, Message: err.Error()}
}
