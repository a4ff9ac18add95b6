package service

import (
	"context"

	"go-blog-app/internal/data"
	"go-blog-app/internal/policy"
)

// ProfileInput carries the editable fields of a user profile.
type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
}

// ProfileService provides the business logic for a user editing their own
// profile. Viewing profiles is part of PostService.ListProfile.
type ProfileService struct {
	users UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// GetOwnProfile returns the viewer's own user record for the profile form.
func (s *ProfileService) GetOwnProfile(ctx context.Context, viewer policy.Viewer) (*data.User, error) {
	if !viewer.Authenticated {
		return nil, ErrNotFound
	}
	user, err := s.users.GetUserByID(ctx, viewer.UserID)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the input to the viewer's own profile and returns
// the destination to redirect to (the viewer's profile page). Only the
// authenticated user themselves can be edited; there is no edit-other-user
// path at all.
func (s *ProfileService) UpdateProfile(ctx context.Context, viewer policy.Viewer, input ProfileInput) (string, error) {
	if !viewer.Authenticated {
		return "", ErrNotFound
	}
	user, err := s.users.GetUserByID(ctx, viewer.UserID)
	if err != nil {
		if notFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = input.Email
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return "", err
	}
	return policy.ProfilePath(user.Username), nil
}
