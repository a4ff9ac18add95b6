//go:build unit

package service

import (
	"context"
	"errors"
	"testing"

	"go-blog-app/internal/data"
	"go-blog-app/internal/policy"
)

func TestGetOwnProfile(t *testing.T) {
	users := &mockUserRepository{users: []*data.User{
		{ID: 10, Subject: "sub-alice", Username: "alice"},
	}}
	svc := NewProfileService(users)

	user, err := svc.GetOwnProfile(context.Background(), policy.Identity(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want alice", user.Username)
	}

	if _, err := svc.GetOwnProfile(context.Background(), policy.Anonymous()); !errors.Is(err, ErrNotFound) {
		t.Errorf("anonymous: got %v, want ErrNotFound", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	users := &mockUserRepository{users: []*data.User{
		{ID: 10, Subject: "sub-alice", Username: "alice"},
	}}
	svc := NewProfileService(users)

	input := ProfileInput{FirstName: "Alice", LastName: "Smith", Email: "alice@example.com"}
	dest, err := svc.UpdateProfile(context.Background(), policy.Identity(10), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest != "/profile/alice" {
		t.Errorf("destination = %q, want /profile/alice", dest)
	}
	if users.users[0].FirstName != "Alice" || users.users[0].Email != "alice@example.com" {
		t.Errorf("profile not applied: %+v", users.users[0])
	}

	if _, err := svc.UpdateProfile(context.Background(), policy.Anonymous(), input); !errors.Is(err, ErrNotFound) {
		t.Errorf("anonymous: got %v, want ErrNotFound", err)
	}
}
