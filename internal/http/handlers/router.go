package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shoyo10/usersvc/internal/http/middleware"
	"github.com/shoyo10/usersvc/internal/service"
)

// NewRouter wires the route table. An unmatched path or method answers the
// generic route-not-found body.
func NewRouter(svc service.IUserService) *mux.Router {
	h := NewUserHandler(svc)

	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging, middleware.Recover)

	r.HandleFunc("/health", health).Methods(http.MethodGet)

	r.HandleFunc("/users", h.List).Methods(http.MethodGet)
	r.HandleFunc("/users", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.Replace).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", h.Patch).Methods(http.MethodPatch)
	r.HandleFunc("/users/{id}", h.Delete).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(routeNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(routeNotFound)

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "Route not found")
}
