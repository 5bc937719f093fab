package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/giftkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/giftkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/giftkeeper/internal/common"
	"github.com/dmitrijs2005/giftkeeper/internal/filex"
	"github.com/dmitrijs2005/giftkeeper/internal/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Storage is an opened backend. Close releases the underlying connection.
type Storage struct {
	Driver string
	Repo   kv.Repository
	closer io.Closer
}

func (s *Storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Open connects to the backend named by driver and prepares it for use.
func Open(ctx context.Context, driver, dsn string, log logging.Logger) (*Storage, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite:
		if path, ok := filex.SQLiteFilePath(dsn); ok {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, fmt.Errorf("failed to prepare sqlite directory: %w", err)
			}
		}
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		// one writer; avoids SQLITE_BUSY and keeps :memory: on a single conn
		db.SetMaxOpenConns(1)
		if err := RunMigrations(ctx, db, DriverSQLite, log); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Storage{Driver: DriverSQLite, Repo: kv.NewSQLiteRepository(db), closer: db}, nil

	case DriverPostgres:
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("postgres unreachable: %w", err)
		}
		if err := RunMigrations(ctx, db, DriverPostgres, log); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Storage{Driver: DriverPostgres, Repo: kv.NewPostgresRepository(db), closer: db}, nil

	case DriverRedis:
		repo, client, err := kv.OpenRedis(dsn)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis unreachable: %w", err)
		}
		return &Storage{Driver: DriverRedis, Repo: repo, closer: client}, nil

	case DriverMemory:
		return &Storage{Driver: DriverMemory, Repo: kv.NewMemoryRepository()}, nil
	}

	return nil, fmt.Errorf("%w: %q", common.ErrUnknownDriver, driver)
}

// goose keeps its base FS, dialect and logger in package globals.
var gooseMu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for driver (sqlite or
// postgres). It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB, driver string, log logging.Logger) error {
	var dialect, dir string
	switch driver {
	case DriverSQLite:
		dialect, dir = "sqlite3", migrations.SQLiteDir
	case DriverPostgres:
		dialect, dir = "pgx", migrations.PostgresDir
	default:
		return fmt.Errorf("%w: no migrations for %q", common.ErrUnknownDriver, driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{ctx: ctx, log: log})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// gooseLogger routes goose output into the structured logger.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Debug(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}
