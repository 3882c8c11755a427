package conn

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"studymate-backend/config"
)

func mysqlDSN(cfg config.Database, withName bool) string {
	name := ""
	if withName {
		name = cfg.Name
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC", cfg.User, cfg.Password, cfg.Host, cfg.Port, name)
}

// openMySQL makes sure the database exists by connecting without a schema first,
// then opens the real pool.
func openMySQL(ctx context.Context, cfg config.Database) (*sql.DB, error) {
	adminDB, err := sql.Open("mysql", mysqlDSN(cfg, false))
	if err != nil {
		return nil, err
	}
	if err := adminDB.PingContext(ctx); err != nil {
		adminDB.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	if _, err := adminDB.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS `"+cfg.Name+"` DEFAULT CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci"); err != nil {
		adminDB.Close()
		return nil, fmt.Errorf("create database: %w", err)
	}
	adminDB.Close()

	db, err := sql.Open("mysql", mysqlDSN(cfg, true))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}
