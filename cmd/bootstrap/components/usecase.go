package components

import (
	"tripdesk/internal/pkg/clock"
	"tripdesk/internal/usecase"
	"tripdesk/internal/usecase/commands"
	"tripdesk/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		commands.NewReservationCommands,
		queries.NewReservationQueries,
		queries.NewAvailabilityQueries,
		fx.Annotate(
			usecase.NewAuthUseCase,
			fx.As(new(usecase.AuthUseCase)),
			fx.As(new(usecase.TokenValidator)),
		),
	),
)
