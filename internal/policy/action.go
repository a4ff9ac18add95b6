package policy

// Action identifies what a request is trying to do with a resource. It is
// passed explicitly into the authorization functions; there is no per-handler
// mutable state behind these decisions.
type Action int

const (
	ActionCreate Action = iota
	ActionView
	ActionEdit
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionView:
		return "view"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// Decision is the outcome of an authorization check.
//
// DenyNotFound deliberately collapses "does not exist" and "exists but is
// hidden from you" into one outcome, so a denied caller can never learn that
// the resource exists. RedirectToCanonical is the softer failure used only
// for a non-owner trying to edit a post: the caller is sent to the post's
// public detail page instead.
type Decision int

const (
	Allow Decision = iota
	RedirectToCanonical
	DenyNotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToCanonical:
		return "redirect"
	case DenyNotFound:
		return "not-found"
	}
	return "unknown"
}
