package handler

import (
	"errors"
	"net/http"
	"strings"

	"promptbase/internal/domain"
	"promptbase/internal/httputil"
)

// handleError maps domain errors onto HTTP status codes. Store failures that
// carry no mapping default to 502: the record store is an upstream
// collaborator, not this process.
func handleError(w http.ResponseWriter, err error, messages []string) {
	detail := err.Error()
	if len(messages) > 0 {
		detail = strings.Join(messages, " ")
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), detail)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, detail)
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, detail)
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, detail)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, detail)
	default:
		httputil.RespondError(w, http.StatusBadGateway, detail)
	}
}
