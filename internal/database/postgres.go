package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/answerai/answerai/internal/config"
	_ "github.com/lib/pq"
)

// Postgres wraps the SQL database connection
type Postgres struct {
	*sql.DB
}

// poolConfig is the connection pool shape derived from DatabaseConfig.
type poolConfig struct {
	maxOpen        int
	maxIdle        int
	maxLifetime    time.Duration
	maxIdleTime    time.Duration
	connectTimeout time.Duration
}

func newPoolConfig(cfg config.DatabaseConfig) poolConfig {
	p := poolConfig{
		maxOpen:        cfg.MaxConnections,
		maxIdle:        cfg.MaxIdleConnections,
		maxLifetime:    cfg.ConnMaxLifetime,
		maxIdleTime:    cfg.ConnMaxIdleTime,
		connectTimeout: cfg.ConnectTimeout,
	}
	if p.maxOpen <= 0 {
		p.maxOpen = 25
	}
	if p.maxIdle <= 0 {
		p.maxIdle = max(1, p.maxOpen/4)
	}
	p.maxIdle = min(p.maxIdle, p.maxOpen)
	if p.maxLifetime <= 0 {
		p.maxLifetime = time.Hour
	}
	if p.maxIdleTime <= 0 {
		p.maxIdleTime = 30 * time.Minute
	}
	if p.connectTimeout <= 0 {
		p.connectTimeout = 5 * time.Second
	}
	return p
}

// NewPostgres opens the users database and verifies it is reachable.
func NewPostgres(cfg config.DatabaseConfig) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pool := newPoolConfig(cfg)
	db.SetMaxOpenConns(pool.maxOpen)
	db.SetMaxIdleConns(pool.maxIdle)
	db.SetConnMaxLifetime(pool.maxLifetime)
	db.SetConnMaxIdleTime(pool.maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pool.connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s@%s:%d: %w", cfg.Name, cfg.Host, cfg.Port, err)
	}

	return &Postgres{DB: db}, nil
}

// HealthCheck verifies the database connection is healthy
func (p *Postgres) HealthCheck(ctx context.Context) error {
	return p.PingContext(ctx)
}
