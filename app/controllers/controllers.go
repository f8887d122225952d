// Package controllers holds the HTTP handlers. Controllers parse input,
// invoke repository operations, and map results and errors to responses;
// nothing else lives here.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// pathID parses a numeric path parameter. The ok result is false when the
// segment is not a positive integer.
func pathID(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
