package policy

// Viewer is the acting identity of one inbound request: either anonymous or
// an authenticated user. It is built fresh from the session on every request
// and never persisted.
type Viewer struct {
	UserID        int64
	Authenticated bool
}

// Anonymous returns the viewer for an unauthenticated request.
func Anonymous() Viewer {
	return Viewer{}
}

// Identity returns the viewer for a request authenticated as the given user.
func Identity(userID int64) Viewer {
	return Viewer{UserID: userID, Authenticated: true}
}

// Owns reports whether the viewer is the authenticated owner of a resource
// authored by authorID. Anonymous viewers own nothing.
func (v Viewer) Owns(authorID int64) bool {
	return v.Authenticated && v.UserID == authorID
}
