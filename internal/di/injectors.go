//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"fishdata/internal"
	"fishdata/internal/controllers"
	"fishdata/internal/providers"
	"fishdata/internal/query"
	"fishdata/internal/services"
	"fishdata/internal/storage"
	"fishdata/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		NewBlobStore,
		services.NewKeyringService,
		services.NewAuditService,
		services.NewPermissionValidator,
		storage.NewSnapshotResolver,
		wire.Bind(new(storage.SnapshotResolverInterface), new(*storage.SnapshotResolver)),
		query.NewEngine,
		wire.Bind(new(query.EngineInterface), new(*query.Engine)),
		services.NewDatasetService,

		controllers.NewDatasetController,
		controllers.NewMetadataController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
