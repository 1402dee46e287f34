package tasks

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/taskbridge/internal/shared"
)

// Poller runs the polling direction on a fixed interval.
//
// A pass failure is logged and the next scheduled pass proceeds unaffected;
// there is no caller to surface errors to. Cancelling the context stops the
// loop between passes.
type Poller struct {
	bridge   *Bridge
	interval time.Duration
	logger   *log.Logger
}

// NewPoller creates a poller over the given bridge. interval defaults to
// five minutes when non-positive; a nil logger falls back to stderr.
func NewPoller(bridge *Bridge, interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Poller{
		bridge:   bridge,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks, firing a polling pass every interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("poller started", "interval", p.interval)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped")
			return
		case <-ticker.C:
			p.runPass(ctx)
		}
	}
}

func (p *Poller) runPass(ctx context.Context) {
	report, err := p.bridge.SyncAll(ctx, nil)
	if err != nil {
		p.logger.Error("sync pass failed", "error", err)
		return
	}

	p.logger.Info("sync pass complete",
		"total", report.Total,
		"created", report.Created,
		"skipped", report.Skipped,
		"collapsed", report.Collapsed,
		"failed", report.Failed,
		"elapsed", report.Finished.Sub(report.Started),
	)
}
