package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"cabanas-backoffice/internal/domain"
)

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type dataResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataResponse{OK: true, Data: data})
}

// StatusFor maps an error kind to its HTTP status
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	msg := err.Error()
	var de *domain.Error
	if !errors.As(err, &de) {
		msg = "internal error"
	}
	writeJSON(w, StatusFor(err), errorResponse{OK: false, Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dest); err != nil {
		return domain.NewValidationError("", "malformed request body")
	}
	return nil
}
