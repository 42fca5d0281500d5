// Package cleanup runs scheduled maintenance against the user store.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"applytrack/api/internal/metrics"
	"applytrack/api/internal/repository"
	"github.com/robfig/cron/v3"
)

// Janitor clears expired verification tokens on a fixed schedule so stale
// secrets do not linger in the users table. Clearing is safe: resend
// always regenerates the token, verified users are never touched.
type Janitor struct {
	users    repository.UserRepository
	logger   *slog.Logger
	cron     *cron.Cron
	schedule string
}

func NewJanitor(users repository.UserRepository, logger *slog.Logger) *Janitor {
	return &Janitor{
		users:    users,
		logger:   logger.With("component", "janitor"),
		cron:     cron.New(),
		schedule: "@hourly",
	}
}

// Start registers the schedule and runs until ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(ctx) }); err != nil {
		return err
	}
	j.cron.Start()

	go func() {
		<-ctx.Done()
		j.cron.Stop()
	}()
	return nil
}

// Run performs one cleanup pass.
func (j *Janitor) Run(ctx context.Context) {
	cleared, err := j.users.ClearExpiredVerificationTokens(ctx, time.Now())
	if err != nil {
		j.logger.Error("clear expired verification tokens", "error", err)
		return
	}
	if cleared > 0 {
		j.logger.Info("cleared expired verification tokens", "count", cleared)
		metrics.VerificationTokensExpiredTotal.Add(float64(cleared))
	}
}
