package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Purger drops expired sessions and reports how many were removed.
type Purger interface {
	Purge(ctx context.Context) (int, error)
}

// Run registers purger on the cron spec (e.g. "@every 10m") and starts the
// scheduler in the background. Stop the returned cron on shutdown.
func Run(spec string, purger Purger, log *slog.Logger) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		n, err := purger.Purge(context.Background())
		if err != nil {
			log.Error("scheduler: purge sessions", "err", err)
			return
		}
		if n > 0 {
			log.Info("scheduler: purged expired sessions", "count", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduler: invalid cron spec %q: %w", spec, err)
	}

	c.Start()
	log.Info("scheduler: session purge scheduled", "spec", spec)
	return c, nil
}
