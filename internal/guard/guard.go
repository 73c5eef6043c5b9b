// Package guard decides, for a navigation attempt, whether the current
// session may reach the destination. The decision function is pure: token
// and role are handed in by the caller, and the result is a routing verdict,
// not an error.
package guard

// Session is the token/role pair read from wherever session state lives.
// An empty token means no one is signed in.
type Session struct {
	Token string
	Role  string
}

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect:login"
	case RedirectForbidden:
		return "redirect:forbidden"
	default:
		return "unknown"
	}
}

// Destination is one navigable screen. An empty Roles set means any
// authenticated session may enter.
type Destination struct {
	Name  string
	Roles []string
}

// RoleAdmin passes every role restriction.
const RoleAdmin = "admin"

// Authorize evaluates the rules in order: unauthenticated sessions are sent
// to login (unless already headed there), sessions lacking a required role
// are sent to forbidden, everything else is allowed.
func Authorize(dest Destination, s Session) Decision {
	if s.Token == "" {
		if dest.Name == RouteLogin.Name {
			return Allow
		}
		return RedirectLogin
	}

	if len(dest.Roles) == 0 || s.Role == RoleAdmin {
		return Allow
	}
	for _, role := range dest.Roles {
		if s.Role == role {
			return Allow
		}
	}
	return RedirectForbidden
}
