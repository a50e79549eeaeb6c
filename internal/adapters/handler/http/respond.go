package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskboard/api/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}

// writeDomainError translates the service error taxonomy into an HTTP
// response. Anything unclassified becomes a generic 500 so internal error
// text never leaks to callers.
func writeDomainError(w http.ResponseWriter, err error) {
	var fields domain.FieldErrors
	switch {
	case errors.As(err, &fields):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": fields,
		})
	case errors.Is(err, domain.ErrDuplicateIdentity):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthenticated")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, domain.ErrUserNotFound.Error())
	case errors.Is(err, domain.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, domain.ErrTaskNotFound.Error())
	case errors.Is(err, domain.ErrOwnerNotFound):
		writeError(w, http.StatusNotFound, domain.ErrOwnerNotFound.Error())
	default:
		slog.Error("unexpected service error", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, domain.ErrInternal.Error())
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(dst)
}
