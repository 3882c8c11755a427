package conn

import (
	"context"
	"database/sql"
	"fmt"

	"studymate-backend/config"
)

type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

// Open returns a ready connection pool for the configured driver.
func Open(ctx context.Context, cfg config.Database) (*sql.DB, Dialect, error) {
	switch cfg.Driver {
	case "mysql":
		db, err := openMySQL(ctx, cfg)
		return db, MySQL, err
	case "sqlite":
		db, err := openSQLite(ctx, cfg.SQLitePath)
		return db, SQLite, err
	default:
		return nil, "", fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}
