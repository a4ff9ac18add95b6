package middleware

import (
	"context"

	"go-blog-app/internal/policy"
)

// contextKey defines a custom type for context keys to avoid collisions.
type contextKey string

const userContextKey = contextKey("user")

// UserInfo represents the essential user information stored in the session
// and request context. Subject is the OIDC subject ("anonymous" when the
// request carries no session); UserID is the local user row, zero for
// anonymous requests.
type UserInfo struct {
	Subject string
	UserID  int64
}

// Viewer converts the request's user information into the policy core's
// viewer identity.
func (u *UserInfo) Viewer() policy.Viewer {
	if u == nil || u.UserID == 0 {
		return policy.Anonymous()
	}
	return policy.Identity(u.UserID)
}

// GetUserInfo retrieves the user information from the request context.
func GetUserInfo(ctx context.Context) *UserInfo {
	if userInfo, ok := ctx.Value(userContextKey).(*UserInfo); ok {
		return userInfo
	}
	// Return an anonymous user if no user info is found in the context.
	return &UserInfo{Subject: "anonymous"}
}

// SetUserInfo adds the user information to the request context.
func SetUserInfo(ctx context.Context, userInfo *UserInfo) context.Context {
	return context.WithValue(ctx, userContextKey, userInfo)
}
