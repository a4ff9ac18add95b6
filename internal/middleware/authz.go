package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"

	"go-blog-app/internal/session"
)

// Authorizer creates a new middleware for route-level authorization.
//
// It resolves the viewer identity from the session, attaches it to the
// request context, and checks the route against the casbin policy. This
// gate is deliberately coarse (may this class of user reach this route at
// all); the per-resource ownership and visibility decisions are made by the
// policy core inside the services.
func Authorizer(e *casbin.Enforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Resolve the user's subject from the session, falling back to
			// the anonymous subject for requests with no session.
			subject := sm.GetString(r.Context(), "user_subject")
			if subject == "" {
				subject = "anonymous"
			}
			userInfo := &UserInfo{
				Subject: subject,
				UserID:  sm.GetInt64(r.Context(), "user_id"),
			}
			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			allowed, err := e.Enforce(subject, r.URL.Path, r.Method)
			if err != nil {
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
