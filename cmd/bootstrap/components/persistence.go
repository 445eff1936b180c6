package components

import (
	"tripdesk/internal/infra/db"
	"tripdesk/internal/infra/readstore"
	"tripdesk/internal/infra/repository"
	"tripdesk/internal/infra/uow"
	"tripdesk/internal/usecase"
	"tripdesk/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReadStore)),
		),
		fx.Annotate(
			repository.NewAccountRepository,
			fx.As(new(usecase.AccountRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
