package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"go-blog-app/internal/middleware"
	"go-blog-app/internal/session"
	"go-blog-app/web"
)

// NewRouter creates and configures a new chi router.
//
// Every route runs through the session loader and the route-level
// authorizer; the handlers returning AppError are additionally wrapped by
// the error middleware so failures render the shared error page.
func NewRouter(
	postHandler *PostHandler,
	commentHandler *CommentHandler,
	profileHandler *ProfileHandler,
	pagesHandler *PagesHandler,
	authHandler *AuthHandler,
	seoHandler *SeoHandler,
	authzMiddleware func(http.Handler) http.Handler,
	errorMiddleware func(middleware.AppHandler) http.Handler,
	sessionManager session.Manager,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(authzMiddleware)

	// Listings and static pages
	r.Method(http.MethodGet, "/", errorMiddleware(postHandler.indexHandler))
	r.Method(http.MethodGet, "/category/{slug}", errorMiddleware(postHandler.categoryHandler))
	r.Method(http.MethodGet, "/profile/{username}", errorMiddleware(profileHandler.profileHandler))
	r.Method(http.MethodGet, "/about", errorMiddleware(pagesHandler.aboutHandler))
	r.Method(http.MethodGet, "/rules", errorMiddleware(pagesHandler.rulesHandler))

	// Posts. The static /posts/create route must not be captured by the
	// {postID} parameter; chi prefers static segments, so the order here is
	// only for readability.
	r.Method(http.MethodGet, "/posts/create", errorMiddleware(postHandler.createFormHandler))
	r.Method(http.MethodPost, "/posts/create", errorMiddleware(postHandler.createHandler))
	r.Method(http.MethodGet, "/posts/{postID}", errorMiddleware(postHandler.detailHandler))
	r.Method(http.MethodGet, "/posts/{postID}/edit", errorMiddleware(postHandler.editFormHandler))
	r.Method(http.MethodPost, "/posts/{postID}/edit", errorMiddleware(postHandler.editHandler))
	r.Method(http.MethodPost, "/posts/{postID}/delete", errorMiddleware(postHandler.deleteHandler))

	// Comments
	r.Method(http.MethodPost, "/posts/{postID}/comment", errorMiddleware(commentHandler.addHandler))
	r.Method(http.MethodGet, "/posts/{postID}/edit_comment/{commentID}", errorMiddleware(commentHandler.editFormHandler))
	r.Method(http.MethodPost, "/posts/{postID}/edit_comment/{commentID}", errorMiddleware(commentHandler.editHandler))
	r.Method(http.MethodPost, "/posts/{postID}/delete_comment/{commentID}", errorMiddleware(commentHandler.deleteHandler))

	// Own profile
	r.Method(http.MethodGet, "/edit_profile", errorMiddleware(profileHandler.editFormHandler))
	r.Method(http.MethodPost, "/edit_profile", errorMiddleware(profileHandler.editHandler))

	// Authentication
	r.Get("/auth/login", authHandler.handleLogin)
	r.Get("/auth/callback", authHandler.handleCallback)
	r.Post("/auth/logout", authHandler.handleLogout)

	// SEO + static assets
	r.Get("/robots.txt", seoHandler.robotsHandler)
	r.Get("/sitemap.xml", seoHandler.sitemapHandler)
	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	return r
}
