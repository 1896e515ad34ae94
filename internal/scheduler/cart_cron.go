package scheduler

import (
	"context"
	"fmt"

	"github.com/Dias221467/Storefront/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartCartJanitor schedules the stale cart purge and starts the cron runner.
// The caller stops the returned runner on shutdown.
func StartCartJanitor(spec string, janitor *jobs.CartJanitor) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		if _, err := janitor.PurgeStale(context.Background()); err != nil {
			logrus.WithError(err).Error("PurgeStale failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid janitor schedule %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}
