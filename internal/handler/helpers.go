package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
)

// idParam parses a numeric URL parameter. A malformed id is answered with
// not-found rather than a parse error; the URL space simply contains no such
// resource.
func idParam(r *http.Request, name string) (int64, *middleware.AppError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, notFoundError(errors.New("malformed id parameter " + raw))
	}
	return id, nil
}

func notFoundError(err error) *middleware.AppError {
	return &middleware.AppError{Error: err, Message: "Page not found", Code: http.StatusNotFound}
}

// serviceError translates a service failure into the response the caller
// gets: a RedirectError becomes a 302 to the canonical location, ErrNotFound
// becomes the 404 page, anything else is a 500.
func serviceError(w http.ResponseWriter, r *http.Request, err error, msg string) *middleware.AppError {
	var redirect *service.RedirectError
	if errors.As(err, &redirect) {
		http.Redirect(w, r, redirect.Location, http.StatusFound)
		return nil
	}
	if errors.Is(err, service.ErrNotFound) {
		return notFoundError(err)
	}
	return &middleware.AppError{Error: err, Message: msg, Code: http.StatusInternalServerError}
}
