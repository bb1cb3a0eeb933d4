// Package jobs schedules background maintenance.  The only job today is
// the revocation cleanup: purging expired blacklist entries and pruning
// expired refresh-token rows.  Both operations are idempotent, so
// overlapping runs are harmless.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nalinda/stockroom/internal/blacklist"
	"github.com/nalinda/stockroom/internal/repository"
)

// StartCleanup runs the revocation cleanup on the given cron schedule
// (e.g. "@every 10m") and returns the started scheduler so callers can
// Stop it on shutdown.
func StartCleanup(schedule string, revoked blacklist.Store, tokens *repository.TokenRepo) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		removed, err := revoked.PurgeExpired(ctx)
		if err != nil {
			log.Printf("cleanup: blacklist purge failed: %v", err)
		} else if removed > 0 {
			log.Printf("cleanup: purged %d expired blacklist entries", removed)
		}

		pruned, err := tokens.PruneExpired(ctx)
		if err != nil {
			log.Printf("cleanup: refresh token prune failed: %v", err)
		} else if pruned > 0 {
			log.Printf("cleanup: pruned %d expired refresh tokens", pruned)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
