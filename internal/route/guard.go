// Package route declares which views require a session and decides, per
// navigation, whether to render, wait, or redirect. Decisions are pure
// functions of the route declaration and current session state; nothing is
// cached, so a logout re-gates the very next navigation.
package route

// Access is a route's declared access level.
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessAdminOnly
)

// Route names. These double as the redirect "from" paths.
const (
	RouteShop    = "shop"
	RouteDeals   = "deals"
	RouteNews    = "news"
	RouteCart    = "cart"
	RouteAccount = "account"
	RouteAdmin   = "admin"
	RouteLogin   = "login"
)

// LoginTarget is where unauthenticated navigations are redirected.
const LoginTarget = RouteLogin

// LandingTarget is the default view for users with a valid session but
// insufficient privilege. Deliberately not the login view: they are signed in.
const LandingTarget = RouteAccount

// Table is the static access declaration for every route.
var Table = map[string]Access{
	RouteShop:    AccessPublic,
	RouteDeals:   AccessPublic,
	RouteNews:    AccessPublic,
	RouteLogin:   AccessPublic,
	RouteCart:    AccessAuthenticated,
	RouteAccount: AccessAuthenticated,
	RouteAdmin:   AccessAdminOnly,
}

// Reason explains a redirect to whoever renders it.
type Reason string

const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonForbidden       Reason = "forbidden"
)

// Redirect is the typed payload attached to a redirect decision. From is the
// originally requested route so the login flow can return the user there.
type Redirect struct {
	Target string
	Reason Reason
	From   string
}

// SessionState is the slice of the session store the guard reads.
type SessionState interface {
	Loading() bool
	IsAuthenticated() bool
	IsAdmin() bool
}

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	// Wait: hydration has not finished; render a neutral indicator and make
	// no access decision yet.
	Wait bool
	// Allow: render the requested view.
	Allow bool
	// Redirect is set when neither Wait nor Allow holds.
	Redirect *Redirect
}

// Evaluate gates one navigation. It fails closed: any uncertain state denies
// access to authenticated and admin routes.
func Evaluate(name string, access Access, s SessionState) Decision {
	if access == AccessPublic {
		return Decision{Allow: true}
	}
	if s.Loading() {
		return Decision{Wait: true}
	}
	if !s.IsAuthenticated() {
		return Decision{Redirect: &Redirect{
			Target: LoginTarget,
			Reason: ReasonUnauthenticated,
			From:   name,
		}}
	}
	if access == AccessAdminOnly && !s.IsAdmin() {
		return Decision{Redirect: &Redirect{
			Target: LandingTarget,
			Reason: ReasonForbidden,
			From:   name,
		}}
	}
	return Decision{Allow: true}
}

// Check looks up name in the table and evaluates it. Unknown routes are
// treated as admin-only, the most restrictive level.
func Check(name string, s SessionState) Decision {
	access, ok := Table[name]
	if !ok {
		access = AccessAdminOnly
	}
	return Evaluate(name, access, s)
}
