// Package sampler runs a checker process and polls its resource usage until
// it exits.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"codeberg.org/iklabib/benchmon/model"
	"codeberg.org/iklabib/benchmon/procattr"
	"codeberg.org/iklabib/benchmon/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const DefaultInterval = 100 * time.Millisecond

// SpawnError means the child could not be started at all.
type SpawnError struct {
	Binary string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Binary, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

type Outcome struct {
	Series  model.SampleSeries
	Elapsed time.Duration
	Metric  model.Metrics
}

type Sampler struct {
	Interval   time.Duration
	NewProbe   ProbeFunc
	Env        []string
	Credential *syscall.Credential
	Logger     log.FieldLogger
}

func New(interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sampler{
		Interval: interval,
		NewProbe: NewProcProbe,
		Logger:   log.StandardLogger(),
	}
}

// Run spawns `binary input` with stdout and stderr truncated into logPath and
// samples it until it exits. A non-zero exit is not an error; it is reported
// in Outcome.Metric. Cancelling ctx kills the child.
func (s *Sampler) Run(ctx context.Context, spec model.CaseSpec, logPath string) (Outcome, error) {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to open log %s: %w", logPath, err)
	}
	defer logFile.Close()

	cmd := exec.Command(spec.BinaryPath, spec.InputPath)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Env = s.Env
	cmd.SysProcAttr = procattr.SysProcAttr(s.Credential)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Outcome{}, &SpawnError{Binary: spec.BinaryPath, Err: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	series, waitErr := s.poll(ctx, cmd.Process.Pid, done)
	outcome := Outcome{
		Series:  series,
		Elapsed: time.Since(start),
		Metric:  metrics(cmd.ProcessState),
	}

	if err := ctx.Err(); err != nil {
		return outcome, fmt.Errorf("case %d interrupted: %w", spec.CaseID, err)
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return outcome, fmt.Errorf("failed to wait for %s: %w", spec.BinaryPath, waitErr)
	}

	return outcome, nil
}

func (s *Sampler) poll(ctx context.Context, pid int, done <-chan error) (model.SampleSeries, error) {
	logger := s.logger().WithField("pid", pid)

	probe, err := s.NewProbe(pid)
	if err != nil {
		if !util.ProcessGone(err) {
			logger.WithError(err).Warn("resource probe unavailable, timing only")
		}
		probe = nil
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	tick := ticker.C
	if probe == nil {
		tick = nil
	}

	var series model.SampleSeries
	for {
		select {
		case err := <-done:
			return series, err

		case <-ctx.Done():
			// the child leads its own process group
			if err := unix.Kill(-pid, unix.SIGKILL); err != nil && !util.ProcessGone(err) {
				logger.WithError(err).Warn("failed to kill child")
			}
			return series, <-done

		case <-tick:
			sample, err := probe.Sample()
			if err != nil {
				if !errors.Is(err, ErrExited) && !util.ProcessGone(err) {
					logger.WithError(err).Warn("resource query failed, sampling stopped")
				}
				tick = nil
				continue
			}
			logger.WithFields(log.Fields{
				"cpu":     sample.CPUPercent,
				"mem_mb":  sample.MemoryMB,
				"threads": sample.Threads,
			}).Debug("sample")
			series = append(series, sample)
		}
	}
}

func (s *Sampler) logger() log.FieldLogger {
	if s.Logger == nil {
		return log.StandardLogger()
	}
	return s.Logger
}

func metrics(state *os.ProcessState) model.Metrics {
	if state == nil {
		return model.Metrics{ExitCode: -1}
	}

	metric := model.Metrics{
		ExitCode: state.ExitCode(),
		UserTime: state.UserTime(),
		SysTime:  state.SystemTime(),
	}

	if usage, ok := state.SysUsage().(*syscall.Rusage); ok {
		metric.MaxRSS = usage.Maxrss // kb
	}

	if !state.Exited() {
		if wt, ok := state.Sys().(syscall.WaitStatus); ok && wt.Signaled() {
			metric.Signal = wt.Signal()
		}
	}

	return metric
}
