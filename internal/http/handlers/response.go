package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shoyo10/usersvc/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Msgf("write response failed: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// writeError maps a domain failure onto its HTTP status and body. Anything
// outside the closed set answers 500 with the detail surfaced and the full
// fault logged.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMalformedBody):
		respondError(w, http.StatusBadRequest, "Invalid JSON")
	case errors.Is(err, domain.ErrInvalidID):
		respondError(w, http.StatusBadRequest, "Invalid ID parameter")
	case errors.Is(err, domain.ErrInvalidName):
		respondError(w, http.StatusBadRequest, "Valid name is required")
	case errors.Is(err, domain.ErrInvalidEmail):
		respondError(w, http.StatusBadRequest, "Valid email is required")
	case errors.Is(err, domain.ErrInvalidAge):
		respondError(w, http.StatusBadRequest, "Age must be a positive integer")
	case errors.Is(err, domain.ErrEmptyUpdate):
		respondError(w, http.StatusBadRequest, "No valid update data provided")
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrEmailExists):
		respondError(w, http.StatusConflict, "Email already exists")
	default:
		log.Ctx(ctx).Error().Msgf("request failed: %+v", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Something went wrong!",
			Message: err.Error(),
		})
	}
}
