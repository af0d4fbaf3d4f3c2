package components

import (
	"context"
	"log/slog"
	"time"

	"studiobook/internal/infra/repository"
	"studiobook/internal/pkg/clock"
	"studiobook/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var CleanupModule = fx.Module("cleanup",
	fx.Invoke(startCleanupWorker),
)

// startCleanupWorker sweeps stale selection sessions and expired
// idempotency keys on a fixed interval for the lifetime of the app.
func startCleanupWorker(
	lc fx.Lifecycle,
	pool *pgxpool.Pool,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) {
	sessions := repository.NewSessionRepository(pool)
	keys := repository.NewIdempotencyRepository(pool)

	var cancel context.CancelFunc
	done := make(chan struct{})

	sweep := func(ctx context.Context) {
		cutoff := clk.Now().Add(-cfg.Booking.SessionTTL)
		if n, err := sessions.DeleteStale(ctx, cutoff); err != nil {
			logger.Warn("failed to delete stale selection sessions", "error", err)
		} else if n > 0 {
			logger.Info("deleted stale selection sessions", "count", n)
		}

		if n, err := keys.DeleteExpired(ctx); err != nil {
			logger.Warn("failed to delete expired idempotency keys", "error", err)
		} else if n > 0 {
			logger.Info("deleted expired idempotency keys", "count", n)
		}
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.Booking.CleanupInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						sweep(ctx)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}
