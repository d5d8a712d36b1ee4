package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"playroom/runtime"
)

// HeartbeatWorker periodically logs process health (CPU, RSS) together with
// the number of live connections, so a stalled or leaking server shows up in
// the logs without an external monitoring stack.
type HeartbeatWorker struct {
	log      *slog.Logger
	registry *runtime.Registry
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, registry *runtime.Registry, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, registry: registry, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cpu, err := p.CPUPercent()
			if err != nil {
				w.log.Warn("failed to read cpu usage", "error", err)
				continue
			}
			var rss uint64
			if mem, err := p.MemoryInfo(); err == nil && mem != nil {
				rss = mem.RSS
			}
			w.log.Info("heartbeat",
				"connections", w.registry.Count(),
				"cpu_percent", cpu,
				"rss_bytes", rss)
		}
	}
}
