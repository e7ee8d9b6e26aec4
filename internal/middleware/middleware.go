package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/answerai/answerai/internal/config"
	"github.com/answerai/answerai/internal/logger"
)

// RateCounter is the counter store backing the rate limiter.
type RateCounter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// Middleware holds all HTTP middleware
type Middleware struct {
	counter RateCounter
	log     *logger.Logger
	cfg     *config.Config
}

// New creates a new Middleware instance
func New(counter RateCounter, log *logger.Logger, cfg *config.Config) *Middleware {
	return &Middleware{
		counter: counter,
		log:     log,
		cfg:     cfg,
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}
