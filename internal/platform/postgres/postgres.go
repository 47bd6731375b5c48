// Package postgres owns the GORM connection the commerce repositories run on.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const pingTimeout = 5 * time.Second

// Connect opens the commerce database through GORM and pings it before
// handing the connection out.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// ConnectFromEnv dials POSTGRES_DSN and returns the handle plus a cleanup
// function. A missing DSN or a failed dial is not fatal: the commerce API
// keeps serving from in-memory repositories, so this logs the downgrade
// and returns nil with a no-op cleanup.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		warn(logger, "POSTGRES_DSN not set, commerce repositories run in memory", nil)
		return nil, noop
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		warn(logger, "postgres unavailable, commerce repositories run in memory", err)
		return nil, noop
	}
	sqlDB, err := db.DB()
	if err != nil {
		warn(logger, "postgres handle unusable, commerce repositories run in memory", err)
		return nil, noop
	}
	if logger != nil {
		logger.Info("commerce database connected")
	}
	return db, func() { _ = sqlDB.Close() }
}

func warn(logger *slog.Logger, msg string, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn(msg, slog.String("error", err.Error()))
		return
	}
	logger.Warn(msg)
}
