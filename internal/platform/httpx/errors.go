package httpx

import (
	"errors"
	"net/http"
)

// Sentinels understood by RespondError. Domain errors are wrapped with one
// of these to choose the response status.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("confirmation required")
	ErrUnavailable  = errors.New("service unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

var problemMap = []struct {
	err    error
	status int
	title  string
}{
	{ErrNotFound, http.StatusNotFound, "Not Found"},
	{ErrValidation, http.StatusBadRequest, "Validation Failed"},
	{ErrConflict, http.StatusConflict, "Confirmation Required"},
	{ErrUnavailable, http.StatusServiceUnavailable, "Service Unavailable"},
	{ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
}

// RespondError writes err as a problem document. Unmapped errors become a
// 500 without detail.
func RespondError(w http.ResponseWriter, err error) {
	for _, p := range problemMap {
		if errors.Is(err, p.err) {
			Problem(w, p.status, p.title, err.Error())
			return
		}
	}
	Problem(w, http.StatusInternalServerError, "Internal Error", "")
}
