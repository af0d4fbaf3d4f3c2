package bootstrap

import (
	"log/slog"

	"studiobook/internal/infra/upstream"
	"studiobook/internal/pkg/config"
	"studiobook/internal/usecase/commands"
	"studiobook/internal/usecase/queries"
	"studiobook/internal/usecase/shared"

	"go.uber.org/fx"
)

var UpstreamModule = fx.Module("upstream",
	fx.Provide(
		fx.Annotate(
			NewUpstreamClient,
			fx.As(new(commands.PlatformGateway)),
			fx.As(new(shared.SheetSource)),
			fx.As(new(queries.ReservationSource)),
		),
	),
)

func NewUpstreamClient(cfg config.Config, logger *slog.Logger) *upstream.Client {
	return upstream.NewClient(cfg.Upstream, logger)
}
