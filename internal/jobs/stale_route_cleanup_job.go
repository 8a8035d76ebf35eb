package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultStaleRouteAge is how long a route may sit in Created or Assigned
// before the cleanup job cancels it.
const DefaultStaleRouteAge = 4 * time.Hour

const staleRouteCancelReason = "route expired before start"

// StaleRouteCleanupJob cancels routes that were planned but never started.
// Runs every minute; cancelled routes return their orders to the ready
// pool so they can be planned again.
type StaleRouteCleanupJob struct {
	staleRoutes   queries.GetStaleRoutesQueryHandler
	cancelHandler commands.CancelRouteCommandHandler
	maxAge        time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewStaleRouteCleanupJob creates a cleanup job. A non-positive maxAge
// falls back to DefaultStaleRouteAge.
func NewStaleRouteCleanupJob(
	staleRoutes queries.GetStaleRoutesQueryHandler,
	cancelHandler commands.CancelRouteCommandHandler,
	maxAge time.Duration,
	logger *slog.Logger,
) *StaleRouteCleanupJob {
	if maxAge <= 0 {
		maxAge = DefaultStaleRouteAge
	}
	return &StaleRouteCleanupJob{
		staleRoutes:   staleRoutes,
		cancelHandler: cancelHandler,
		maxAge:        maxAge,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "stale_route_cleanup_job"),
	}
}

// Start begins the cleanup job to run every minute.
func (j *StaleRouteCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Stale route cleanup job started (running every minute)",
		"max_age", j.maxAge.String())
	return nil
}

// Stop stops the cleanup job.
func (j *StaleRouteCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale route cleanup job stopped")
}

func (j *StaleRouteCleanupJob) run(ctx context.Context) {
	query, err := queries.NewGetStaleRoutesQuery(j.maxAge)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale route query construction failed", "error", err)
		return
	}

	stale, err := j.staleRoutes.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale route lookup failed", "error", err)
		return
	}

	for _, candidate := range stale {
		cmd, err := commands.NewCancelRouteCommand(candidate.ID, staleRouteCancelReason)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale route cancel command construction failed",
				"route", candidate.Number, "error", err)
			continue
		}

		result, err := j.cancelHandler.Handle(ctx, cmd)
		if err != nil {
			// The route may have started or finished between lookup and
			// cancel; that is not a system problem.
			if errors.Is(err, errs.ErrStateConflict) || errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			j.logger.ErrorContext(ctx, "Stale route cancellation failed",
				"route", candidate.Number, "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Cancelled stale route",
			"route", candidate.Number,
			"created_at", candidate.CreatedAt,
			"reverted_orders", result.RevertedOrders)
	}
}
