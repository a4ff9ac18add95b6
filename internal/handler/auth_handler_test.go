//go:build unit

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-blog-app/internal/session"
)

// mockSessionManager is a mock implementation of the session.Manager interface.
type mockSessionManager struct {
	destroyCalled bool
	putKeys       []string
}

// Ensure mockSessionManager implements the session.Manager interface.
var _ session.Manager = (*mockSessionManager)(nil)

func (m *mockSessionManager) LoadAndSave(next http.Handler) http.Handler { return next }
func (m *mockSessionManager) Put(ctx context.Context, key string, val interface{}) {
	m.putKeys = append(m.putKeys, key)
}
func (m *mockSessionManager) GetString(ctx context.Context, key string) string { return "" }
func (m *mockSessionManager) GetInt64(ctx context.Context, key string) int64   { return 0 }
func (m *mockSessionManager) PopString(ctx context.Context, key string) string { return "" }
func (m *mockSessionManager) Remove(ctx context.Context, key string)           {}
func (m *mockSessionManager) Destroy(ctx context.Context) error {
	m.destroyCalled = true
	return nil
}

func TestLogoutHandler(t *testing.T) {
	mockSession := &mockSessionManager{}
	// The authenticator, enforcer and user repository are not touched by
	// the logout handler.
	authHandler := NewAuthHandler(nil, mockSession, nil, nil)

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	rr := httptest.NewRecorder()

	authHandler.handleLogout(rr, req)

	if !mockSession.destroyCalled {
		t.Error("expected session.Destroy to be called, but it wasn't")
	}

	if rr.Code != http.StatusFound {
		t.Errorf("want status code %d; got %d", http.StatusFound, rr.Code)
	}

	location, err := rr.Result().Location()
	if err != nil {
		t.Fatalf("could not get redirect location: %v", err)
	}
	if location.Path != "/" {
		t.Errorf("want redirect to '/'; got '%s'", location.Path)
	}
}

func TestUsernameFromClaims(t *testing.T) {
	testCases := []struct {
		name      string
		subject   string
		preferred string
		email     string
		want      string
	}{
		{"preferred username wins", "sub-1", "alice", "alice@example.com", "alice"},
		{"email local part as fallback", "sub-1", "", "bob@example.com", "bob"},
		{"raw subject as last resort", "sub-1", "", "", "sub-1"},
		{"email without local part falls through", "sub-1", "", "@example.com", "sub-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := usernameFromClaims(tc.subject, tc.preferred, tc.email); got != tc.want {
				t.Errorf("usernameFromClaims() = %q, want %q", got, tc.want)
			}
		})
	}
}
