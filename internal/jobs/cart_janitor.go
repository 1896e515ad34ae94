package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// StaleCartStore deletes empty carts last touched before a cutoff.
type StaleCartStore interface {
	DeleteStaleCarts(ctx context.Context, before time.Time) (int64, error)
}

type CartJanitor struct {
	Store StaleCartStore
	TTL   time.Duration
	now   func() time.Time
}

// NewCartJanitor creates a janitor that purges empty carts idle for longer than ttl.
func NewCartJanitor(store StaleCartStore, ttl time.Duration) *CartJanitor {
	return &CartJanitor{
		Store: store,
		TTL:   ttl,
		now:   time.Now,
	}
}

// PurgeStale removes empty carts older than the TTL and returns how many went.
func (j *CartJanitor) PurgeStale(ctx context.Context) (int64, error) {
	if j.TTL <= 0 {
		return 0, nil
	}

	cutoff := j.now().Add(-j.TTL)
	n, err := j.Store.DeleteStaleCarts(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale carts: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"deleted": n,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("Stale cart scan completed")
	return n, nil
}
