package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"taskapi/internal/api/shared"
	"taskapi/internal/store"
)

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context. The user ID is placed in the context by the
// authentication middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID extracts and parses a UUID path parameter. Returns false
// after writing a not-found response when the parameter is missing or
// malformed: an unparseable id can never name an existing resource, and
// answering 404 keeps it indistinguishable from an absent one.
func getPathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return uuid.Nil, false
	}

	return id, true
}

// getPageRequest parses the common list query parameters (page, limit,
// search). Non-integer or non-positive values fall back to the defaults
// via Normalize, matching the list engine's coercion rules.
func getPageRequest(r *http.Request) store.PageRequest {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	return store.PageRequest{
		Page:   page,
		Limit:  limit,
		Search: query.Get("search"),
	}.Normalize()
}
