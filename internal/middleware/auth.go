package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/answerai/answerai/internal/auth"
	"github.com/answerai/answerai/internal/model"
	"github.com/answerai/answerai/internal/repository"
)

const (
	userKey contextKey = "user"

	accessTokenCookie = "answerai_access_token"
)

// UserLookup loads the user an access token was issued for.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Auth creates an authentication middleware that validates JWT tokens and
// loads the token's user into the request context.
func (m *Middleware) Auth(tokenSvc *auth.TokenService, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}

			claims, err := tokenSvc.ValidateAccessToken(tokenString)
			if err != nil {
				m.log.Debug().Err(err).Msg("token validation failed")
				writeError(w, http.StatusUnauthorized, "token_expired", "The access token is invalid or expired")
				return
			}

			user, err := users.GetByID(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					writeError(w, http.StatusUnauthorized, "unauthorized", "Unknown user")
					return
				}
				m.log.Error().Err(err).Str("user_id", claims.Subject).Msg("failed to load user")
				writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireVerified rejects users whose email address is not verified yet.
// It must run after Auth.
func (m *Middleware) RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}
		if !user.EmailVerified {
			writeError(w, http.StatusForbidden, "email_not_verified", "Verify your email address to continue")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// WithUser stores user in ctx the way Auth does.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func bearerToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := r.Cookie(accessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
