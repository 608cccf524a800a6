package countries

import (
	"context"

	"go.uber.org/zap"
)

// RefreshJob runs the refresh on a cron schedule.
type RefreshJob struct {
	service  *Service
	schedule string
}

// NewRefreshJob creates a scheduled refresh.
func NewRefreshJob(service *Service, schedule string) *RefreshJob {
	return &RefreshJob{service: service, schedule: schedule}
}

// Name returns the job name.
func (j *RefreshJob) Name() string {
	return "countries-refresh"
}

// Schedule returns the cron spec.
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run performs one refresh.
func (j *RefreshJob) Run(ctx context.Context) error {
	result, err := j.service.Refresh(ctx)
	if err != nil {
		return err
	}
	j.service.logger.Info("Scheduled refresh completed",
		zap.Int("committed", result.Committed),
		zap.Int("skipped", result.Skipped),
	)
	return nil
}
