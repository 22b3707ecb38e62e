package authclient

// Decision is the outcome of a route guard evaluation.
type Decision int

const (
	// Allow renders the guarded content.
	Allow Decision = iota
	// ShowLoading renders a placeholder; never a redirect while loading.
	ShowLoading
	// RedirectLogin sends an unauthenticated visitor to the login route.
	RedirectLogin
	// RedirectHome sends an authenticated but under-privileged visitor home.
	// Identity is known, so login would be the wrong destination.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// Decide gates a route on the current session state. It is pure: callers must
// re-evaluate it on every navigation and every session change, never caching
// a decision across a role change.
//
// Roles outside the closed user/admin set never satisfy a role requirement.
func Decide(user *User, loading bool, requiredRoles ...string) Decision {
	if loading {
		return ShowLoading
	}
	if user == nil {
		return RedirectLogin
	}
	if len(requiredRoles) == 0 {
		return Allow
	}
	if user.Role != RoleUser && user.Role != RoleAdmin {
		return RedirectHome
	}
	for _, r := range requiredRoles {
		if user.Role == r {
			return Allow
		}
	}
	return RedirectHome
}

// Guard evaluates the guard against a live session snapshot.
func (s *Session) Guard(requiredRoles ...string) Decision {
	snap := s.Snapshot()
	return Decide(snap.User, snap.Loading, requiredRoles...)
}
