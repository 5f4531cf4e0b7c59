package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"billfold/internal/store"
)

// defaultUserID scopes requests that carry no user_id parameter to the demo
// user. Authentication is out of scope for this service.
const defaultUserID = 1

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("Failed to encode response", "error", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

// storeError maps store failures to responses.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "record not found")
		return
	}
	s.respondError(w, http.StatusBadRequest, err.Error())
}

// userIDParam reads the user scope from the query, defaulting to the demo
// user.
func userIDParam(r *http.Request) int {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return defaultUserID
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return defaultUserID
	}
	return id
}

// pathID parses a numeric id route parameter.
func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}
