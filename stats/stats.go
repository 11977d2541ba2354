// Package stats tracks per-run totals for the optional --stats summary.
package stats

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

type RunStats struct {
	Streams      int
	Failures     int
	BytesScanned uint64
	Elapsed      time.Duration
}

func (s RunStats) ThroughputMBPerSec() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.BytesScanned) / (1 << 20) / secs
}

// Summary renders one human-readable line for stderr.
func (s RunStats) Summary() string {
	return fmt.Sprintf("scanned %d stream(s), %d failure(s), %d bytes in %v (%.1f MiB/s)",
		s.Streams, s.Failures, s.BytesScanned, s.Elapsed.Round(time.Millisecond), s.ThroughputMBPerSec())
}

type ProcessUsage struct {
	CPUPercent float64
	RSSBytes   uint64
}

// CurrentProcessUsage samples this process's CPU and resident memory.
func CurrentProcessUsage() (ProcessUsage, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessUsage{}, err
	}
	var u ProcessUsage
	if pct, err := p.CPUPercent(); err == nil {
		u.CPUPercent = pct
	}
	if mi, err := p.MemoryInfo(); err == nil && mi != nil {
		u.RSSBytes = mi.RSS
	}
	return u, nil
}
