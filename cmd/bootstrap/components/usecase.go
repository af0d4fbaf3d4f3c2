package components

import (
	"time"

	"studiobook/internal/pkg/clock"
	"studiobook/internal/pkg/config"
	"studiobook/internal/usecase/commands"
	"studiobook/internal/usecase/queries"
	"studiobook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	newBookingLocation,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		newSheetQueries,
		newDraftQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		newSelectionCommands,
		newReservationCommands,
	),
)

// newBookingLocation loads the reference timezone every booking-day
// boundary is computed in.
func newBookingLocation(cfg config.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Booking.TimeZone)
}

func newSheetQueries(
	source shared.SheetSource,
	sessions queries.SessionReader,
	clk clock.Clock,
	loc *time.Location,
	cfg config.Config,
) queries.SheetQueries {
	return queries.NewSheetQueries(source, sessions, clk, loc, cfg.Booking.MinUnitMinutes)
}

func newDraftQueries(
	drafts queries.DraftReader,
	source queries.ReservationSource,
	clk clock.Clock,
	loc *time.Location,
) queries.DraftQueries {
	return queries.NewDraftQueries(drafts, source, clk, loc)
}

func newSelectionCommands(
	sessions commands.SessionRepository,
	gateway commands.PlatformGateway,
	clk clock.Clock,
	loc *time.Location,
	cfg config.Config,
) commands.SelectionCommands {
	return commands.NewSelectionUseCase(sessions, gateway, clk, loc, cfg.Booking.MinUnitMinutes)
}

func newReservationCommands(
	drafts commands.DraftRepository,
	sessions commands.SessionRepository,
	idempotency commands.IdempotencyRepository,
	gateway commands.PlatformGateway,
	draftQueries queries.DraftQueries,
	pool *pgxpool.Pool,
	clk clock.Clock,
	loc *time.Location,
	cfg config.Config,
) commands.ReservationCommands {
	return commands.NewReservationUseCase(
		drafts, sessions, idempotency, gateway, draftQueries,
		pool, clk, loc, cfg.Booking.IdempotencyTTL,
	)
}
