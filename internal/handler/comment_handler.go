package handler

import (
	"net/http"

	"go-blog-app/internal/logger"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/view"
)

// CommentHandler holds the dependencies for the comment handlers.
type CommentHandler struct {
	commentService *service.CommentService
	view           *view.View
	log            logger.Logger
}

// NewCommentHandler creates a new CommentHandler with the given dependencies.
func NewCommentHandler(cs *service.CommentService, v *view.View, log logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: cs,
		view:           v,
		log:            log,
	}
}

// addHandler stores a new comment under a post and redirects back to the
// post. Anonymous attempts 404; the comment form is only rendered for
// authenticated viewers but the policy decides, not the template.
func (h *CommentHandler) addHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	postID, appErr := idParam(r, "postID")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	dest, err := h.commentService.AddComment(r.Context(), userInfo.Viewer(), postID, r.PostFormValue("text"))
	if err != nil {
		return serviceError(w, r, err, "Failed to add comment")
	}
	http.Redirect(w, r, dest, http.StatusFound)
	return nil
}

// editFormHandler renders the comment edit form. Only the comment's owner
// ever sees it; everyone else gets the 404 page.
func (h *CommentHandler) editFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	postID, appErr := idParam(r, "postID")
	if appErr != nil {
		return appErr
	}
	commentID, appErr := idParam(r, "commentID")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	comment, err := h.commentService.GetCommentForEdit(r.Context(), userInfo.Viewer(), postID, commentID)
	if err != nil {
		return serviceError(w, r, err, "Failed to load comment for editing")
	}

	data := map[string]interface{}{
		"Comment":  comment,
		"UserInfo": userInfo,
	}
	if err := h.view.Render(w, "comment_form.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render comment form", Code: http.StatusInternalServerError}
	}
	return nil
}

// editHandler applies a comment edit and redirects to the owning post.
func (h *CommentHandler) editHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	postID, appErr := idParam(r, "postID")
	if appErr != nil {
		return appErr
	}
	commentID, appErr := idParam(r, "commentID")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	dest, err := h.commentService.UpdateComment(r.Context(), userInfo.Viewer(), postID, commentID, r.PostFormValue("text"))
	if err != nil {
		return serviceError(w, r, err, "Failed to update comment")
	}
	http.Redirect(w, r, dest, http.StatusFound)
	return nil
}

// deleteHandler deletes a comment and redirects to the owning post.
func (h *CommentHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	postID, appErr := idParam(r, "postID")
	if appErr != nil {
		return appErr
	}
	commentID, appErr := idParam(r, "commentID")
	if appErr != nil {
		return appErr
	}
	userInfo := middleware.GetUserInfo(r.Context())

	dest, err := h.commentService.DeleteComment(r.Context(), userInfo.Viewer(), postID, commentID)
	if err != nil {
		return serviceError(w, r, err, "Failed to delete comment")
	}
	http.Redirect(w, r, dest, http.StatusFound)
	return nil
}
