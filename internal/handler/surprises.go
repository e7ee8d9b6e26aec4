package handler

import (
	"errors"
	"net/http"

	"github.com/answerai/answerai/internal/metrics"
	"github.com/answerai/answerai/internal/middleware"
	"github.com/answerai/answerai/internal/surprise"
)

// Surprise serves a fresh surprise of the given kind.
func (h *Handler) Surprise(kind surprise.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := h.surprises.Pick(kind)
		h.writeSurprise(w, r, s, err)
	}
}

// RandomSurprise serves a surprise of a uniformly chosen kind.
func (h *Handler) RandomSurprise(w http.ResponseWriter, r *http.Request) {
	s, err := h.surprises.Random()
	h.writeSurprise(w, r, s, err)
}

// DailySurprise serves the surprise of the day. Every caller gets the same
// one until the UTC date changes.
func (h *Handler) DailySurprise(w http.ResponseWriter, r *http.Request) {
	s, err := h.surprises.Daily()
	h.writeSurprise(w, r, s, err)
}

func (h *Handler) writeSurprise(w http.ResponseWriter, r *http.Request, s surprise.Surprise, err error) {
	log := h.log.WithRequestID(middleware.GetRequestID(r.Context()))
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		log = log.WithUserID(user.ID)
	}

	if err != nil {
		if errors.Is(err, surprise.ErrEmptyPool) {
			log.Warn().Err(err).Msg("surprise pool is empty")
			writeError(w, http.StatusServiceUnavailable, "no_content", "No content available")
			return
		}
		log.Error().Err(err).Msg("failed to generate surprise")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to generate surprise")
		return
	}

	metrics.SurprisesServed.WithLabelValues(s.Type).Inc()
	log.Debug().Str("type", s.Type).Msg("surprise served")
	writeJSON(w, http.StatusOK, s)
}
