package gormdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// Driver names accepted by Connect.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the relational store settings.
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Debug           bool
	// Log receives gorm's warnings and, with Debug, every statement.
	// The zero value discards them.
	Log zerolog.Logger
}

// Connect opens the database selected by cfg.Driver and applies pool limits.
// SQLite connections always enforce foreign keys.
func Connect(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger(cfg.Log, cfg.Debug),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	} else if cfg.Driver == DriverSQLite {
		// one writer at a time; avoids "database is locked" under load
		sqlDB.SetMaxOpenConns(1)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

const slowQueryThreshold = 200 * time.Millisecond

// zerologWriter adapts a zerolog.Logger to gorm's logger.Writer.
type zerologWriter struct {
	log   zerolog.Logger
	level zerolog.Level
}

func (w zerologWriter) Printf(format string, args ...interface{}) {
	w.log.WithLevel(w.level).Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// newLogger builds gorm's logger on top of zerolog. Missing rows are normal
// lookups here and are reported as domain.ErrNotFound, not logged.
func newLogger(log zerolog.Logger, debug bool) logger.Interface {
	mode, level := logger.Warn, zerolog.WarnLevel
	if debug {
		mode, level = logger.Info, zerolog.InfoLevel
	}
	return logger.New(zerologWriter{log: log, level: level}, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  mode,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "inventory.db"
	}
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// Store groups the repositories over one *gorm.DB handle. A Store bound to a
// transaction is handed to ports.TxRunner callbacks.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() ports.UserRepository             { return NewUserRepository(s.db) }
func (s *Store) Permissions() ports.PermissionRepository { return NewPermissionRepository(s.db) }
func (s *Store) Products() ports.ProductRepository       { return NewProductRepository(s.db) }
func (s *Store) Orders() ports.OrderRepository           { return NewOrderRepository(s.db) }
func (s *Store) Sales() ports.SalesRepository            { return NewSalesRepository(s.db) }

// WithinTx runs fn in a database transaction. Errors returned by fn pass
// through unchanged; commit failures are reported as storage failures.
func (s *Store) WithinTx(ctx context.Context, fn func(tx ports.Tx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
	if err != nil && !isDomainError(err) {
		return fmt.Errorf("transaction: %w: %w", domain.ErrStorageFailure, err)
	}
	return err
}

// Migrate creates or updates the schema.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps driver errors to domain error kinds.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isDomainError(err):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageFailure, err)
	}
}

func isDomainError(err error) bool {
	for _, kind := range []error{
		domain.ErrAuthFailure,
		domain.ErrPermissionDenied,
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrConflict,
		domain.ErrStorageFailure,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
