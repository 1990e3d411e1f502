package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/readnext/readnext/internal/shared/config"
)

// NewPgxPool creates the PostgreSQL connection pool shared by every request.
// Pool settings: max 10 connections, min 5 connections, 1-hour max lifetime, 30-min idle timeout.
func NewPgxPool(cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse database URL")
		return nil, err
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 5
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = time.Minute * 30

	logger.Debug().
		Int32("max_conns", poolCfg.MaxConns).
		Int32("min_conns", poolCfg.MinConns).
		Dur("max_conns_lifetime", poolCfg.MaxConnLifetime).
		Dur("max_conns_idletime", poolCfg.MaxConnIdleTime).
		Msg("Database connection pool configuration")

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create database connection pool")
		return nil, err
	}

	logger.Debug().Msg("Database connection pool created")
	return pool, nil
}
