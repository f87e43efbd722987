// Package web holds the JSON request/response helpers used by every module handler.
package web

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
)

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Fail writes {"error": msg} with the given status.
func Fail(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, map[string]string{"error": msg})
}

// Error maps err to a status code by kind and writes it as {"error": ...}.
func Error(w http.ResponseWriter, err error) {
	Fail(w, StatusFor(err), err.Error())
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		// upstream failures surface as 500 like every other unexpected error
		return http.StatusInternalServerError
	}
}

// Decode reads a JSON body into v, reporting malformed input as a validation error.
func Decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("invalid request body: %s", err.Error())
	}
	return nil
}

// Page holds pagination parameters parsed from the query string.
type Page struct {
	Page  int
	Limit int
}

// Skip returns the number of records before the requested page.
func (p Page) Skip() int { return (p.Page - 1) * p.Limit }

// ParsePage reads ?page= and ?limit=, defaulting to page 1 of 20 and capping limit at 100.
// Page is clamped so Skip stays within int32.
func ParsePage(r *http.Request) Page {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if maxPage := math.MaxInt32 / limit; page > maxPage {
		page = maxPage
	}
	return Page{Page: page, Limit: limit}
}

// OptionalBool parses a "true"/"false" query value; anything else is nil.
func OptionalBool(r *http.Request, key string) *bool {
	switch r.URL.Query().Get(key) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}
