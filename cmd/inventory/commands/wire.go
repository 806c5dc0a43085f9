package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fiori/inventory-api/internal/core/service"
	"github.com/fiori/inventory-api/internal/infrastructure/db/gormdb"
	"github.com/fiori/inventory-api/internal/pkg/config"
	"github.com/fiori/inventory-api/pkg/logger"
)

const serviceName = "inventory-api"

// app holds what every command needs: configuration, the root logger and
// the relational store.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *gormdb.Store
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	db, err := gormdb.Connect(gormdb.Config{
		Driver:          cfg.DB.Driver,
		DSN:             cfg.DB.DSN,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		Debug:           cfg.DB.Debug,
		Log:             logger.Component("gorm"),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info().Str("driver", cfg.DB.Driver).Msg("database connected")

	return &app{cfg: cfg, log: log, store: gormdb.New(db)}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close database")
	}
}

// migrate applies the schema, reconciles the permission catalog and makes
// sure the built-in accounts exist.
func (a *app) migrate(ctx context.Context) error {
	if err := a.store.Migrate(ctx); err != nil {
		return err
	}

	registry := service.NewPermissionService(a.store.Users(), a.store.Permissions(), a.store, logger.Component("permissions"))
	boot := service.NewBootstrapper(a.store.Users(), a.store.Permissions(), registry, logger.Component("bootstrap"))
	return boot.Run(ctx, bootstrapConfig(a.cfg.Bootstrap))
}

func bootstrapConfig(c config.BootstrapConfig) service.BootstrapConfig {
	return service.BootstrapConfig{
		AdminUsername:  c.AdminUsername,
		AdminEmail:     c.AdminEmail,
		AdminPassword:  c.AdminPassword,
		SeedSeller:     c.SeedSeller,
		SellerUsername: c.SellerUsername,
		SellerEmail:    c.SellerEmail,
		SellerPassword: c.SellerPassword,
	}
}
