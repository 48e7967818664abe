package jobs

import (
	"context"
	"log/slog"

	"warehouse/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// sweepSchedule runs the sweep once a day, early morning warehouse time,
// before staff start processing the day's requests.
const sweepSchedule = "0 0 3 * * *"

// StorageSweepJob runs the daily storage sweep. It disposes of parcels past
// the grace period and sends storage warnings to owners approaching it.
type StorageSweepJob struct {
	handler commands.SweepStorageCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStorageSweepJob creates the daily storage sweep job.
func NewStorageSweepJob(handler commands.SweepStorageCommandHandler, logger *slog.Logger) *StorageSweepJob {
	return &StorageSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "storage_sweep_job"),
	}
}

// Start schedules the daily sweep.
func (j *StorageSweepJob) Start() error {
	_, err := j.cron.AddFunc(sweepSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewSweepStorageCommand()

		report, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Storage sweep failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Storage sweep completed",
			"scanned", report.Scanned,
			"disposed", report.Disposed,
			"warned", report.Warned,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Storage sweep job started (running daily)")
	return nil
}

// Stop stops the storage sweep job.
func (j *StorageSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Storage sweep job stopped")
}
