package handler

import (
	"context"

	"github.com/answerai/answerai/internal/config"
	"github.com/answerai/answerai/internal/logger"
	"github.com/answerai/answerai/internal/model"
	"github.com/answerai/answerai/internal/surprise"
)

// Version is reported by the health and index endpoints.
const Version = "0.1.0"

// HealthChecker is a dependency that can report its health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Verifier issues and consumes email verification tokens.
type Verifier interface {
	RequestVerification(ctx context.Context, user *model.User) error
	Verify(ctx context.Context, token string) error
}

// Handler holds all HTTP handlers
type Handler struct {
	db        HealthChecker
	rdb       HealthChecker
	log       *logger.Logger
	cfg       *config.Config
	surprises *surprise.Selector
	verifier  Verifier
}

// New creates a new Handler instance
func New(db, rdb HealthChecker, log *logger.Logger, cfg *config.Config, surprises *surprise.Selector, verifier Verifier) *Handler {
	return &Handler{
		db:        db,
		rdb:       rdb,
		log:       log,
		cfg:       cfg,
		surprises: surprises,
		verifier:  verifier,
	}
}
