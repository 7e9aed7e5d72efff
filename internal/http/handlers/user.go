package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shoyo10/usersvc/internal/domain"
	"github.com/shoyo10/usersvc/internal/service"
	"github.com/shoyo10/usersvc/internal/validation"
)

// decodeBody reads a JSON payload. A well-formed body carrying the wrong
// JSON type for a known field fails as that field's validation error;
// anything else that does not decode is a malformed body.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			switch typeErr.Field {
			case "name":
				return errors.WithStack(domain.ErrInvalidName)
			case "email":
				return errors.WithStack(domain.ErrInvalidEmail)
			case "age":
				return errors.WithStack(domain.ErrInvalidAge)
			}
		}
		return errors.WithStack(domain.ErrMalformedBody)
	}
	return nil
}

type UserHandler struct {
	svc service.IUserService
}

func NewUserHandler(svc service.IUserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validation.UserID(mux.Vars(r)["id"])
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.UserInput
	if err := decodeBody(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	user, err := h.svc.CreateUser(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// PUT /users/{id}
func (h *UserHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var in domain.UserInput
	if err := decodeBody(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := validation.UserID(mux.Vars(r)["id"])
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	user, err := h.svc.ReplaceUser(r.Context(), id, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// PATCH /users/{id}
func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var in domain.UserPatch
	if err := decodeBody(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := validation.UserID(mux.Vars(r)["id"])
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	user, err := h.svc.PatchUser(r.Context(), id, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DELETE /users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := validation.UserID(mux.Vars(r)["id"])
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	user, err := h.svc.DeleteUser(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User deleted successfully",
		"user":    user,
	})
}
