package handler

import (
	"errors"
	"net/http"

	"github.com/answerai/answerai/internal/middleware"
	"github.com/answerai/answerai/internal/service"
)

// RequestVerification handles POST /api/v1/auth/verify/request
// Emails a fresh verification link to the authenticated user.
func (h *Handler) RequestVerification(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	err := h.verifier.RequestVerification(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyVerified):
			writeError(w, http.StatusConflict, "already_verified", "Email is already verified")
		case errors.Is(err, service.ErrTooManyResendAttempts):
			writeError(w, http.StatusTooManyRequests, "too_many_requests", "Please wait before requesting a new link")
		case errors.Is(err, service.ErrVerificationDisabled):
			writeError(w, http.StatusBadRequest, "verification_disabled", "Email verification is not enabled")
		case errors.Is(err, service.ErrDeliveryFailed):
			writeError(w, http.StatusBadGateway, "delivery_failed", "The verification email could not be sent")
		default:
			h.log.Error().Err(err).Str("user_id", user.ID).Msg("verification request failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to send verification email")
		}
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "Verification email sent",
	})
}

// VerifyEmail handles GET /auth/verify?token=
// This is the target of the link in the verification email.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "token is required")
		return
	}

	err := h.verifier.Verify(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			writeError(w, http.StatusBadRequest, "invalid_token", "Invalid or already used verification link")
		case errors.Is(err, service.ErrVerificationDisabled):
			writeError(w, http.StatusBadRequest, "verification_disabled", "Email verification is not enabled")
		default:
			h.log.Error().Err(err).Msg("email verification failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to verify email")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Email verified successfully",
		"emailVerified": true,
	})
}
