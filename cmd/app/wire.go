//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/campuswatt/campus-energy/internal/bootstrap"
	"github.com/campuswatt/campus-energy/internal/domain/dashboard"
	"github.com/campuswatt/campus-energy/internal/domain/forecast"
	"github.com/campuswatt/campus-energy/internal/domain/seeder"
	"github.com/campuswatt/campus-energy/internal/infra/config"
	httpiface "github.com/campuswatt/campus-energy/internal/interface/http"
	"github.com/campuswatt/campus-energy/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideForecastConfig,
		provideDashboardConfig,
		provideSeederConfig,
		provideStore,
		provideForecastRepository,
		provideDashboardRepository,
		provideSeederRepository,
		provideReportCache,
		forecast.NewService,
		dashboard.NewService,
		seeder.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
