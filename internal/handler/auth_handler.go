package handler

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"

	"go-blog-app/internal/auth"
	"go-blog-app/internal/service"
	"go-blog-app/internal/session"
)

// AuthHandler holds the dependencies for the authentication handlers.
type AuthHandler struct {
	auth     *auth.Authenticator
	sessions session.Manager
	enforcer casbin.IEnforcer
	users    service.UserRepository
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(a *auth.Authenticator, sm session.Manager, e casbin.IEnforcer, users service.UserRepository) *AuthHandler {
	return &AuthHandler{auth: a, sessions: sm, enforcer: e, users: users}
}

// handleLogin redirects the user to the OIDC provider to log in.
// It uses a random 'state' string for CSRF protection.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randString(16)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	// Store the state in a short-lived cookie to verify on callback.
	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
	})
	http.Redirect(w, r, h.auth.AuthCodeURL(state), http.StatusFound)
}

// handleCallback is the redirect URL for the OIDC provider. It exchanges
// the authorization code, verifies the ID token, upserts the local user for
// the token's subject, and attaches the identity to the session.
func (h *AuthHandler) handleCallback(w http.ResponseWriter, r *http.Request) {
	// Verify the state parameter to prevent CSRF attacks.
	stateCookie, err := r.Cookie("state")
	if err != nil {
		http.Error(w, "state cookie not found", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		http.Error(w, "state did not match", http.StatusBadRequest)
		return
	}

	oauth2Token, err := h.auth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "Failed to exchange token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		http.Error(w, "No id_token field in oauth2 token", http.StatusInternalServerError)
		return
	}

	// The OIDC library internally checks the issuer, audience, and expiry.
	idToken, err := h.auth.IDTokenVerifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		http.Error(w, "Failed to verify ID Token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var claims struct {
		Email             string `json:"email"`
		PreferredUsername string `json:"preferred_username"`
	}
	if err := idToken.Claims(&claims); err != nil {
		http.Error(w, "Failed to parse ID Token claims: "+err.Error(), http.StatusInternalServerError)
		return
	}

	user, err := h.users.UpsertBySubject(r.Context(), idToken.Subject, usernameFromClaims(idToken.Subject, claims.PreferredUsername, claims.Email), claims.Email)
	if err != nil {
		http.Error(w, "Failed to store user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Authenticated users act with the author role. Which posts and
	// comments are theirs to touch is decided per resource elsewhere.
	if has, _ := h.enforcer.HasRoleForUser(idToken.Subject, auth.AuthorRole); !has {
		if _, err := h.enforcer.AddRoleForUser(idToken.Subject, auth.AuthorRole); err != nil {
			http.Error(w, "Failed to grant role: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	h.sessions.Put(r.Context(), "user_subject", idToken.Subject)
	h.sessions.Put(r.Context(), "user_id", user.ID)

	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogout destroys the session and sends the user to the index.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		http.Error(w, "Failed to destroy session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// usernameFromClaims picks a profile handle for a first login: the
// provider's preferred username, else the email local part, else the raw
// subject.
func usernameFromClaims(subject, preferred, email string) string {
	if preferred != "" {
		return preferred
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return subject
}

// randString is a helper function to generate a random string for the
// 'state' parameter.
func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
