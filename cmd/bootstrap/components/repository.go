package components

import (
	"studiobook/internal/infra/repository"
	"studiobook/internal/usecase/commands"
	"studiobook/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewSessionRepository,
			fx.As(new(commands.SessionRepository)),
			fx.As(new(queries.SessionReader)),
		),
		fx.Annotate(
			repository.NewDraftRepository,
			fx.As(new(commands.DraftRepository)),
			fx.As(new(queries.DraftReader)),
		),
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
		),
	),
)
