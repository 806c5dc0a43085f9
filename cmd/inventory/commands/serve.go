package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fiori/inventory-api/internal/api"
	"github.com/fiori/inventory-api/internal/api/handler"
	"github.com/fiori/inventory-api/internal/core/service"
	"github.com/fiori/inventory-api/internal/infrastructure/db/mongo"
	"github.com/fiori/inventory-api/internal/infrastructure/db/redis"
	"github.com/fiori/inventory-api/internal/infrastructure/token"
	"github.com/fiori/inventory-api/pkg/logger"
)

var (
	// Serve flags
	skipMigrate     bool
	shutdownTimeout time.Duration
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server on $PORT.

The schema is migrated and the built-in accounts are bootstrapped before the
listener opens, unless --skip-migrate is given. Redis (idempotency keys and
revoked tokens) and MongoDB (order audit trail) must be reachable.

Examples:
  inventory serve
  inventory serve --skip-migrate --shutdown-timeout 30s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate or bootstrap before serving")
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Time allowed for in-flight requests on shutdown")
}

func runServe(ctx context.Context) error {
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if !skipMigrate {
		if err := a.migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{
		URI:      a.cfg.Mongo.URI,
		Database: a.cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			a.log.Warn().Err(err).Msg("disconnect mongodb")
		}
	}()

	audit := mongo.NewAuditRepository(mongoDB)
	if err := audit.EnsureIndexes(ctx); err != nil {
		return err
	}

	tokens, err := token.NewManager(a.cfg.JWTSecret, a.cfg.TokenTTL)
	if err != nil {
		return err
	}
	denylist := redis.NewTokenDenylist(rdb)
	idem := redis.NewIdempotencyStore(rdb, a.cfg.Redis.IdempotencyTTL)

	store := a.store
	e := api.NewRouter(api.Dependencies{
		Auth:     service.NewAuthService(store.Users(), store.Permissions(), tokens, denylist, logger.Component("auth")),
		Users:    service.NewUserService(store.Users(), store.Permissions(), store, logger.Component("users")),
		Products: service.NewProductService(store.Products(), store, logger.Component("products")),
		Orders:   service.NewOrderService(store, store.Orders(), idem, audit, logger.Component("orders")),
		Sales:    service.NewSalesService(store.Sales()),
		Access:   service.NewAccessGate(store.Permissions()),

		Tokens:        tokens,
		Issuer:        tokens,
		Revoker:       denylist,
		RefreshWindow: a.cfg.TokenRefreshWindow,

		Database: handler.Dependency{Name: "database", Ping: store.Ping},
		Probes: []handler.Dependency{
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
			{Name: "mongodb", Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
		},
		Log: logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("port", a.cfg.Port).Msg("http server listening")
		if err := e.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
