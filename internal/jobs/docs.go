// Package jobs provides scheduled background tasks for the warehouse.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic maintenance the warehouse needs.
//
// # Available Jobs
//
// 1. StorageSweepJob - Runs daily to dispose of parcels past the storage
// grace period and warn owners whose parcels are accruing fees or running
// out of free storage days.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sweepStorageHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the cron expression "0 0 3 * * *", running once a day at
// 03:00 warehouse time, before staff start processing the day's requests.
//
// # Error Handling
//
// - A whole-sweep failure is logged and retried on the next run
// - Per-parcel failures are isolated inside the sweep handler itself
package jobs
