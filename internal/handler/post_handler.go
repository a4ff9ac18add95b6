package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"go-blog-app/internal/data"
	"go-blog-app/internal/logger"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/view"
)

// pubDateFormats are the accepted formats of the publication date form
// field, in order of preference (datetime-local input value, then a bare
// date).
var pubDateFormats = []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

// PostHandler holds the dependencies for the post handlers.
type PostHandler struct {
	postService *service.PostService
	view        *view.View
	log         logger.Logger
}

// NewPostHandler creates a new PostHandler with the given dependencies.
func NewPostHandler(ps *service.PostService, v *view.View, log logger.Logger) *PostHandler {
	return &PostHandler{
		postService: ps,
		view:        v,
		log:         log,
	}
}

// indexHandler renders the public front page feed.
func (h *PostHandler) indexHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())

	page, err := h.postService.ListIndex(r.Context(), userInfo.Viewer(), r.URL.Query().Get("page"))
	if err != nil {
		return serviceError(w, r, err, "Failed to load the feed")
	}

	data := map[string]interface{}{
		"Page":     page,
		"UserInfo": userInfo,
	}
	if err := h.view.Render(w, "index.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render index", Code: http.StatusInternalServerError}
	}
	return nil
}

// detailHandler renders one post with its published comments. Whether the
// viewer may see the post at all is decided by the service; a hidden post
// 404s exactly like an absent one.
func (h *PostHandler) detailHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	postID, appErr := idParam(r, "postID")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	post, comments, err := h.postService.ViewPost(r.Context(), userInfo.Viewer(), postID)
	if err != nil {
		return serviceError(w, r, err, "Failed to load post")
	}

	data := map[string]interface{}{
		"Post":     post,
		"Comments": comments,
		"UserInfo": userInfo,
	}
	if err := h.view.Render(w, "detail.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render post", Code: http.StatusInternalServerError}
	}
	return nil
}

// categoryHandler renders a category page. Unpublished categories are
// indistinguishable from unknown ones.
func (h *PostHandler) categoryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	slug := chi.URLParam(r, "slug")
	userInfo := middleware.GetUserInfo(r.Context())

	category, page, err := h.postService.ListCategory(r.Context(), userInfo.Viewer(), slug, r.URL.Query().Get("page"))
	if err != nil {
		return serviceError(w, r, err, "Failed to load category")
	}

	data := map[string]interface{}{
		"Category": category,
		"Page":     page,
		"UserInfo": userInfo,
	}
	if err := h.view.Render(w, "category.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render category", Code: http.StatusInternalServerError}
	}
	return nil
}

// createFormHandler renders the empty post form.
func (h *PostHandler) createFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderPostForm(w, r, nil)
}

// createHandler stores a new post and redirects to the author's profile.
func (h *PostHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	input, appErr := parsePostInput(r)
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	_, dest, err := h.postService.CreatePost(r.Context(), userInfo.Viewer(), input)
	if err != nil {
		return serviceError(w, r, err, "Failed to create post")
	}
	http.Redirect(w, r, dest, http.StatusFound)
	return nil
}

// editFormHandler renders the post form pre-filled with an existing post.
// A non-owner is redirected to the post's detail page.
func (h *PostHandler) editFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	postID, appErr := idParam(r, "postID")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	post, err := h.postService.GetPostForEdit(r.Context(), userInfo.Viewer(), postID)
	if err != nil {
		return serviceError(w, r, err, "Failed to load post for editing")
	}
	return h.renderPostForm(w, r, post)
}

// editHandler applies an edit and redirects to the post's detail page.
func (h *PostHandler) editHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	postID, appErr := idParam(r, "postID")
	if appErr != nil {
		return appErr
	}
	input, appErr := parsePostInput(r)
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	_, dest, err := h.postService.UpdatePost(r.Context(), userInfo.Viewer(), postID, input)
	if err != nil {
		return serviceError(w, r, err, "Failed to update post")
	}
	http.Redirect(w, r, dest, http.StatusFound)
	return nil
}

// deleteHandler deletes a post and redirects to the index.
func (h *PostHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	postID, appErr := idParam(r, "postID")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	dest, err := h.postService.DeletePost(r.Context(), userInfo.Viewer(), postID)
	if err != nil {
		return serviceError(w, r, err, "Failed to delete post")
	}
	http.Redirect(w, r, dest, http.StatusFound)
	return nil
}

func (h *PostHandler) renderPostForm(w http.ResponseWriter, r *http.Request, post *data.Post) *middleware.AppError {
	categories, locations, err := h.postService.FormOptions(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load form options", Code: http.StatusInternalServerError}
	}
	data := map[string]interface{}{
		"Post":       post,
		"Categories": categories,
		"Locations":  locations,
		"UserInfo":   middleware.GetUserInfo(r.Context()),
	}
	if err := h.view.Render(w, "post_form.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render post form", Code: http.StatusInternalServerError}
	}
	return nil
}

// parsePostInput reads the post form fields. A malformed publication date is
// a client error; optional category and location stay nil when unselected.
func parsePostInput(r *http.Request) (service.PostInput, *middleware.AppError) {
	var input service.PostInput
	if err := r.ParseForm(); err != nil {
		return input, &middleware.AppError{Error: err, Message: "Malformed form data", Code: http.StatusBadRequest}
	}

	input.Title = r.PostFormValue("title")
	input.Text = r.PostFormValue("text")
	input.ImagePath = r.PostFormValue("image_path")
	input.IsPublished = r.PostFormValue("is_published") != ""

	rawDate := r.PostFormValue("pub_date")
	var parseErr error
	for _, format := range pubDateFormats {
		var t time.Time
		if t, parseErr = time.Parse(format, rawDate); parseErr == nil {
			input.PubDate = t
			break
		}
	}
	if parseErr != nil {
		return input, &middleware.AppError{Error: parseErr, Message: "Invalid publication date", Code: http.StatusBadRequest}
	}

	input.CategoryID = optionalID(r.PostFormValue("category_id"))
	input.LocationID = optionalID(r.PostFormValue("location_id"))
	return input, nil
}

func optionalID(raw string) *int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil
	}
	return &id
}
