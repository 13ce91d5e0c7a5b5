package sampler

import (
	"errors"
	"time"

	"codeberg.org/iklabib/benchmon/model"
	"github.com/prometheus/procfs"
)

// ErrExited is returned by a Probe once the process has terminated but may
// not have been reaped yet.
var ErrExited = errors.New("process exited")

type Probe interface {
	Sample() (model.Sample, error)
}

type ProbeFunc func(pid int) (Probe, error)

const mb = 1024 * 1024

type procProbe struct {
	proc     procfs.Proc
	lastCPU  float64
	lastWall time.Time
}

// NewProcProbe reads /proc/<pid>/stat. CPU percent is the CPU time consumed
// between two samples over the wall time between them, so a child busy on
// several threads can exceed 100.
func NewProcProbe(pid int) (Probe, error) {
	proc, err := procfs.NewProc(pid)
	if err != nil {
		return nil, err
	}

	p := &procProbe{proc: proc, lastWall: time.Now()}
	if stat, err := proc.Stat(); err == nil {
		p.lastCPU = stat.CPUTime()
	}

	return p, nil
}

func (p *procProbe) Sample() (model.Sample, error) {
	stat, err := p.proc.Stat()
	if err != nil {
		return model.Sample{}, err
	}

	// zombie: exited, waiting to be reaped
	if stat.State == "Z" || stat.State == "X" {
		return model.Sample{}, ErrExited
	}

	now := time.Now()
	cpu := stat.CPUTime()

	var percent float64
	if wall := now.Sub(p.lastWall).Seconds(); wall > 0 {
		percent = (cpu - p.lastCPU) / wall * 100
	}
	p.lastCPU, p.lastWall = cpu, now

	return model.Sample{
		CPUPercent: percent,
		MemoryMB:   float64(stat.ResidentMemory()) / mb,
		Threads:    stat.NumThreads,
	}, nil
}
