package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/campuswatt/campus-energy/internal/domain/dashboard"
	"github.com/campuswatt/campus-energy/internal/domain/forecast"
	"github.com/campuswatt/campus-energy/internal/domain/seeder"
	"github.com/campuswatt/campus-energy/internal/infra/config"
	"github.com/campuswatt/campus-energy/internal/infra/energystore"
	"github.com/campuswatt/campus-energy/internal/infra/reportcache"
)

func provideForecastConfig(cfg *config.Config) forecast.Config {
	return forecast.Config{
		HistoryWindow: cfg.Forecast.HistoryWindow,
		HistoryLimit:  cfg.Forecast.HistoryLimit,
	}
}

func provideDashboardConfig(cfg *config.Config) dashboard.Config {
	return dashboard.Config{
		TrailingWindow: cfg.Dashboard.TrailingWindow,
		InsightLimit:   cfg.Dashboard.InsightLimit,
		ReportTTL:      cfg.Cache.ReportTTL,
	}
}

func provideSeederConfig(cfg *config.Config) seeder.Config {
	return seeder.Config{
		Days:      cfg.Seed.Days,
		BatchSize: cfg.Seed.BatchSize,
	}
}

func provideStore(cfg *config.Config, logger *slog.Logger) energystore.Store {
	fallback := energystore.NewMemoryStore()
	dsn := strings.TrimSpace(cfg.Store.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory store")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory store", "error", err)
		return fallback
	}
	if cfg.Store.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Store.MaxConns
	}
	if cfg.Store.MinConns > 0 {
		poolConfig.MinConns = cfg.Store.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory store", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory store", "error", err)
		pool.Close()
		return fallback
	}
	store := energystore.NewPostgresStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("schema bootstrap failed, using memory store", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres store enabled")
	return store
}

func provideForecastRepository(store energystore.Store) forecast.Repository {
	return store
}

func provideDashboardRepository(store energystore.Store) dashboard.Repository {
	return store
}

func provideSeederRepository(store energystore.Store) seeder.Repository {
	return store
}

func provideReportCache(cfg *config.Config, logger *slog.Logger) dashboard.ReportCache {
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return reportcache.NewMemoryCache()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return reportcache.NewMemoryCache()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey report cache enabled", "addr", cfg.Cache.Addr)
			return reportcache.NewValkeyCache(client, "dashboard:report")
		}
	}
	return reportcache.NewMemoryCache()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
