package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"go-blog-app/internal/logger"
)

// AuthorRole is the casbin role granted to every authenticated user. The
// route policy only distinguishes anonymous readers from authenticated
// authors; who may touch which post or comment is decided per resource by
// the policy core, not here.
const AuthorRole = "author"

// openRoutes are reachable by anonymous readers and authors alike. The
// mutation routes on EXISTING posts and comments are open at route level on
// purpose: the policy core answers them with not-found or a redirect so a
// denied caller never learns the resource exists. A 403 or login prompt
// here would leak that.
var openRoutes = [][]string{
	{"/", "GET"},
	{"/posts/:id", "GET"},
	{"/posts/:id/edit", "GET"},
	{"/category/:slug", "GET"},
	{"/profile/:username", "GET"},
	{"/about", "GET"},
	{"/rules", "GET"},
	{"/robots.txt", "GET"},
	{"/sitemap.xml", "GET"},
	{"/auth/login", "GET"},
	{"/auth/callback", "GET"},
	{"/static/*", "GET"},

	{"/posts/:id/edit", "POST"},
	{"/posts/:id/delete", "POST"},
	{"/posts/:id/comment", "POST"},
	{"/posts/:id/edit_comment/:commentID", "GET"},
	{"/posts/:id/edit_comment/:commentID", "POST"},
	{"/posts/:id/delete_comment/:commentID", "POST"},
}

// gatedRoutes require a logged-in author. They carry no per-resource
// decision, so a plain 403 leaks nothing. Each one gets an explicit deny
// for anonymous because keyMatch2 treats "create" as just another segment:
// without the deny, the open "/posts/:id" pattern would admit anonymous
// requests to "/posts/create".
var gatedRoutes = [][]string{
	{"/posts/create", "GET"},
	{"/posts/create", "POST"},
	{"/edit_profile", "GET"},
	{"/edit_profile", "POST"},
	{"/auth/logout", "POST"},
}

// SeedDefaultPolicies ensures that the application has a baseline set of
// route authorization rules. It checks if each policy exists before adding
// it, making the operation idempotent and safe to run on every application
// start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	for _, route := range openRoutes {
		for _, role := range []string{"anonymous", AuthorRole} {
			ensurePolicy(e, log, role, route[0], route[1], "allow")
		}
	}
	for _, route := range gatedRoutes {
		ensurePolicy(e, log, AuthorRole, route[0], route[1], "allow")
		ensurePolicy(e, log, "anonymous", route[0], route[1], "deny")
	}

	log.Info("Policy seeding complete.")
}

func ensurePolicy(e casbin.IEnforcer, log logger.Logger, sub, obj, act, eft string) {
	policy := []string{sub, obj, act, eft}
	if has, _ := e.HasPolicy(policy); !has {
		if _, err := e.AddPolicy(policy); err != nil {
			log.Error(err, fmt.Sprintf("Failed to add policy %v", policy))
		}
	}
}
