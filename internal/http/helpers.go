package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

const (
	msgServerError   = "Server error"
	msgNotFound      = "Not found"
	msgNotAuthorized = "Not authorized"
	msgInvalidJSON   = "Invalid JSON"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

type msgResponse struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, msgResponse{Msg: msg})
}

// writeServiceError maps service and store errors onto the API's status
// codes. notFound is the message used for a missing record.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeMsg(w, http.StatusNotFound, notFound)
	case errors.Is(err, services.ErrUnauthorized):
		writeMsg(w, http.StatusUnauthorized, msgNotAuthorized)
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			log.FieldPath, r.URL.Path,
			log.FieldError, err)
		writeMsg(w, http.StatusInternalServerError, msgServerError)
	}
}

// decodeJSON reads a JSON body into v. Malformed JSON is answered with 400;
// values of the wrong shape or type go through writeServiceError like any
// other failed write. It reports whether the handler may continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(v)
	if err == nil {
		return true
	}
	var (
		syntaxErr *json.SyntaxError
		tooLarge  *http.MaxBytesError
	)
	if errors.As(err, &tooLarge) {
		writeMsg(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return false
	}
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		writeMsg(w, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	writeServiceError(w, r, err, msgNotFound)
	return false
}
