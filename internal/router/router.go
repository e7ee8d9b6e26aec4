package router

import (
	"net/http"
	"time"

	"github.com/answerai/answerai/internal/auth"
	"github.com/answerai/answerai/internal/config"
	"github.com/answerai/answerai/internal/handler"
	"github.com/answerai/answerai/internal/metrics"
	"github.com/answerai/answerai/internal/middleware"
	"github.com/answerai/answerai/internal/surprise"
)

// surpriseRoutes maps path segments under /api/v1/surprises to the kind they serve.
var surpriseRoutes = []struct {
	path string
	kind surprise.Kind
}{
	{"quote", surprise.KindQuote},
	{"joke", surprise.KindJoke},
	{"fact", surprise.KindFact},
	{"art", surprise.KindASCIIArt},
	{"challenge", surprise.KindChallenge},
	{"motivation", surprise.KindMotivation},
	{"celebrate", surprise.KindCelebration},
	{"game", surprise.KindGame},
}

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, cfg *config.Config, tokenSvc *auth.TokenService, users middleware.UserLookup) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints (no auth required)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, metrics.Handler())
	}

	mux.HandleFunc("GET /api/v1/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"AnswerAI API v1","version":"` + handler.Version + `"}`))
	})

	authMw := mw.Auth(tokenSvc, users)

	// Verification link target (public, rate limited)
	verifyRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Name:   "verify",
		Limit:  10,
		Window: 15 * time.Minute,
		KeyFn:  middleware.IPKey,
	})
	mux.Handle("GET /auth/verify", verifyRateLimit(http.HandlerFunc(h.VerifyEmail)))

	// Unverified users must be able to ask for a link
	verifyRequestRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Name:   "verify_request",
		Limit:  5,
		Window: 1 * time.Hour,
		KeyFn:  middleware.UserKey,
	})
	mux.Handle("POST /api/v1/auth/verify/request", authMw(verifyRequestRateLimit(http.HandlerFunc(h.RequestVerification))))

	// Surprise routes (verified users only)
	surpriseRateLimit := mw.RateLimit(mw.DefaultRateLimit("surprises", middleware.UserKey))
	verified := func(next http.HandlerFunc) http.Handler {
		return authMw(mw.RequireVerified(surpriseRateLimit(next)))
	}

	mux.Handle("GET /api/v1/surprises/random", verified(h.RandomSurprise))
	mux.Handle("GET /api/v1/surprises/daily", verified(h.DailySurprise))
	for _, route := range surpriseRoutes {
		mux.Handle("GET /api/v1/surprises/"+route.path, verified(h.Surprise(route.kind)))
	}

	// Apply middleware stack
	var handler http.Handler = mux

	handler = mw.CORS(cfg.Server.AllowedOrigins)(handler)

	// Security headers
	handler = mw.SecurityHeaders(handler)

	// Request logging
	handler = mw.Logger(handler)

	// Request ID
	handler = mw.RequestID(handler)

	// Panic recovery (outermost)
	handler = mw.Recover(handler)

	return handler
}
