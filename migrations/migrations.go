package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"studymate-backend/conn"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		email VARCHAR(191) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME(6) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
	`CREATE TABLE IF NOT EXISTS topics (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL,
		topic TEXT NOT NULL,
		difficulty VARCHAR(20) NOT NULL,
		explanation MEDIUMTEXT NOT NULL,
		quiz MEDIUMTEXT NOT NULL,
		score INT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_topics_user_created (user_id, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS topics (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		topic TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		explanation TEXT NOT NULL,
		quiz TEXT NOT NULL,
		score INTEGER NULL,
		created_at DATETIME NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_topics_user_created ON topics (user_id, created_at);`,
}

// Migrate creates the users and topics tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB, dialect conn.Dialect) error {
	if db == nil {
		return fmt.Errorf("db is not initialized")
	}
	var stmts []string
	switch dialect {
	case conn.MySQL:
		stmts = mysqlSchema
	case conn.SQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("no schema for dialect %q", dialect)
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
