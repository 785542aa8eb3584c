//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"untisd/internal"
	"untisd/internal/controllers"
	"untisd/internal/poller"
	"untisd/internal/providers"
	"untisd/internal/services"
	"untisd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewUntisClient,

		services.NewTimetableService,
		poller.NewScheduler,
		controllers.NewApiController,
		controllers.NewCalendarController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
