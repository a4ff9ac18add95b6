package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-blog-app/internal/logger"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/view"
)

// ProfileHandler holds the dependencies for the profile handlers.
type ProfileHandler struct {
	postService    *service.PostService
	profileService *service.ProfileService
	view           *view.View
	log            logger.Logger
}

// NewProfileHandler creates a new ProfileHandler with the given dependencies.
func NewProfileHandler(ps *service.PostService, prs *service.ProfileService, v *view.View, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		postService:    ps,
		profileService: prs,
		view:           v,
		log:            log,
	}
}

// profileHandler renders a user's profile with a page of their posts. The
// owner sees their unpublished and future-dated posts here too.
func (h *ProfileHandler) profileHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	username := chi.URLParam(r, "username")
	userInfo := middleware.GetUserInfo(r.Context())

	profile, page, err := h.postService.ListProfile(r.Context(), userInfo.Viewer(), username, r.URL.Query().Get("page"))
	if err != nil {
		return serviceError(w, r, err, "Failed to load profile")
	}

	data := map[string]interface{}{
		"Profile":  profile,
		"Page":     page,
		"UserInfo": userInfo,
		"IsOwner":  userInfo.Viewer().Owns(profile.ID),
	}
	if err := h.view.Render(w, "profile.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render profile", Code: http.StatusInternalServerError}
	}
	return nil
}

// editFormHandler renders the profile form for the logged-in user.
func (h *ProfileHandler) editFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())

	user, err := h.profileService.GetOwnProfile(r.Context(), userInfo.Viewer())
	if err != nil {
		return serviceError(w, r, err, "Failed to load profile for editing")
	}

	data := map[string]interface{}{
		"User":     user,
		"UserInfo": userInfo,
	}
	if err := h.view.Render(w, "profile_form.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render profile form", Code: http.StatusInternalServerError}
	}
	return nil
}

// editHandler applies a profile edit and redirects to the user's profile.
func (h *ProfileHandler) editHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())

	input := service.ProfileInput{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
	}
	dest, err := h.profileService.UpdateProfile(r.Context(), userInfo.Viewer(), input)
	if err != nil {
		return serviceError(w, r, err, "Failed to update profile")
	}
	http.Redirect(w, r, dest, http.StatusFound)
	return nil
}
