package notification

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// unreadRetention bounds how long unread notifications are kept
const unreadRetention = 180 * 24 * time.Hour

// Pruner is the part of the repository the cleanup job needs
type Pruner interface {
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// CleanupJob handles notification retention cleanup
type CleanupJob struct {
	repo          Pruner
	retentionDays int
	now           func() time.Time
}

// NewCleanupJob creates a cleanup job
func NewCleanupJob(repo Pruner, retentionDays int) *CleanupJob {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &CleanupJob{repo: repo, retentionDays: retentionDays, now: time.Now}
}

// Start runs the cleanup immediately and then on every interval until ctx ends
func (j *CleanupJob) Start(ctx context.Context, interval time.Duration) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(j.Schedule(interval), func() { j.run(ctx) }); err != nil {
		log.Error().Err(err).Dur("interval", interval).Msg("Invalid notification cleanup interval")
		return
	}

	j.run(ctx)
	c.Start()
	log.Info().Dur("interval", interval).Msg("Notification cleanup job started")

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info().Msg("Notification cleanup job stopped")
}

// Schedule returns the cron expression for interval; non-positive intervals fall back to 6h
func (j *CleanupJob) Schedule(interval time.Duration) string {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return "@every " + interval.String()
}

func (j *CleanupJob) run(ctx context.Context) {
	read, unread, err := j.RunOnce(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to cleanup old notifications")
		return
	}
	if read > 0 || unread > 0 {
		log.Info().
			Int64("deleted_read", read).
			Int64("deleted_unread", unread).
			Int("retention_days", j.retentionDays).
			Msg("Cleaned up old notifications")
	}
}

// RunOnce deletes read notifications past retention and any notification
// past the unread limit
func (j *CleanupJob) RunOnce(ctx context.Context) (int64, int64, error) {
	now := j.now()

	read, err := j.repo.DeleteReadOlderThan(ctx, now.AddDate(0, 0, -j.retentionDays))
	if err != nil {
		return 0, 0, err
	}

	unread, err := j.repo.DeleteOlderThan(ctx, now.Add(-unreadRetention))
	if err != nil {
		return read, 0, err
	}

	return read, unread, nil
}
