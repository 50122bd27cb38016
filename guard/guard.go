// Package guard decides whether a protected view may proceed, from session
// state and the view's required permissions. Decisions are pure and
// recomputed on every call; nothing is cached.
package guard

import "github.com/ledgerline/ledgerline-go/session"

// Outcome is the guard's verdict.
type Outcome int

const (
	// Loading means the session is still resolving; show a wait state,
	// do not navigate.
	Loading Outcome = iota
	// Granted means the view may proceed.
	Granted
	// RedirectLogin means the caller must authenticate first.
	RedirectLogin
	// RedirectUnauthorized means the user lacks a required permission.
	RedirectUnauthorized
)

func (o Outcome) String() string {
	switch o {
	case Loading:
		return "loading"
	case Granted:
		return "granted"
	case RedirectLogin:
		return "redirect-login"
	case RedirectUnauthorized:
		return "redirect-unauthorized"
	default:
		return "unknown"
	}
}

// Redirect targets, the login and unauthorized entry points.
const (
	LoginRoute        = "/login"
	UnauthorizedRoute = "/unauthorized"
)

// Decision carries the verdict plus navigation hints. From preserves the
// originally requested target on a login redirect so the caller can return
// there after authenticating.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
	From       string
}

// Check gates access to a view requesting the given permissions. Elevated
// roles (business owner, admin) bypass permission checks; everyone else needs
// their permission set to cover the required set. A view requiring no
// permissions only needs an authenticated session.
func Check(st session.State, required []string, from string) Decision {
	if st.IsLoading {
		return Decision{Outcome: Loading}
	}

	if !st.IsAuthenticated || st.User == nil {
		return Decision{Outcome: RedirectLogin, RedirectTo: LoginRoute, From: from}
	}

	if len(required) == 0 {
		return Decision{Outcome: Granted}
	}

	if st.User.IsElevated() {
		return Decision{Outcome: Granted}
	}

	if !st.User.HasPermissions(required) {
		return Decision{Outcome: RedirectUnauthorized, RedirectTo: UnauthorizedRoute}
	}

	return Decision{Outcome: Granted}
}
