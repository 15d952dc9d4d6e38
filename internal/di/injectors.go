//go:build wireinject
// +build wireinject

package di

import (
	"activitybot/internal"
	"activitybot/internal/controllers"
	"activitybot/internal/providers"
	"activitybot/internal/services"
	"activitybot/internal/statistic"
	"activitybot/internal/statistic/interfaces"
	"activitybot/internal/structures"
	wire "github.com/google/wire"
)

var storageSet = wire.NewSet(
	providers.NewMetricsProvider,
	statistic.NewZstdCompressor,
	statistic.NewFileManager,
	wire.Bind(new(interfaces.StorageInterface), new(*statistic.FileManager)),
	services.NewActivityService,
	statistic.NewArchiver,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewNotifierProvider,

		storageSet,
		statistic.NewReporter,
		statistic.NewScheduler,
		controllers.NewApiController,
		controllers.NewAdminController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitTools(cfg *structures.CliFlags) (*internal.Tools, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,

		storageSet,
		internal.NewTools,
	)

	return nil, nil
}
