// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for route planning hygiene.
//
// # Available Jobs
//
// 1. StaleRouteCleanupJob - Runs every minute to cancel routes that were
// planned but never started within the configured age, returning their
// orders to the ready pool.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required jobs
//	jobManager := jobs.NewJobManager(cleanupJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Cleanup ignores state conflicts: a route that started between lookup
//   and cancellation keeps running.
// - Failed job starts will stop any already running jobs.
package jobs
