package handler

import (
	"net/http"

	"go-blog-app/internal/middleware"
	"go-blog-app/internal/view"
)

// PagesHandler serves the static informational pages.
type PagesHandler struct {
	view *view.View
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(v *view.View) *PagesHandler {
	return &PagesHandler{view: v}
}

func (h *PagesHandler) aboutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderStatic(w, r, "about.html")
}

func (h *PagesHandler) rulesHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderStatic(w, r, "rules.html")
}

func (h *PagesHandler) renderStatic(w http.ResponseWriter, r *http.Request, name string) *middleware.AppError {
	data := map[string]interface{}{
		"UserInfo": middleware.GetUserInfo(r.Context()),
	}
	if err := h.view.Render(w, name, data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render page", Code: http.StatusInternalServerError}
	}
	return nil
}
