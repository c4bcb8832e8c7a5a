// Package guard decides, for every navigation, whether the requested route
// renders or the user is sent to the auth or setup screen. Decisions depend
// only on the session contents at the time of the call.
package guard

import (
	"lifeos/internal/models"
	"lifeos/internal/session"
)

// Routes of the application.
const (
	RouteHome       = "/"
	RouteAuth       = "/auth"
	RouteSetup      = "/setup"
	RouteTasks      = "/tasks"
	RouteFinances   = "/finances"
	RouteResources  = "/resources"
	RoutePlanner    = "/planner"
	RouteProfile    = "/profile"
	RouteEditBudget = "/edit-budget"
	RouteLogExpense = "/log-expense"
)

// ProtectedRoutes need a token and a completed profile.
var ProtectedRoutes = []string{
	RouteHome, RouteTasks, RouteFinances, RouteResources, RoutePlanner,
	RouteProfile, RouteEditBudget, RouteLogExpense,
}

// State is what the guard reads from the session.
type State struct {
	HasToken bool
	User     *models.User
}

// FromSession snapshots sess.
func FromSession(sess *session.Session) State {
	return State{HasToken: sess.Authenticated(), User: sess.User()}
}

// setUp reports whether the cached profile has finished setup.
func (s State) setUp() bool {
	return s.User != nil && s.User.SetupComplete
}

// Decision is the route to render. Redirected is set when it differs from
// the one requested.
type Decision struct {
	Route      string
	Redirected bool
}

// Decide returns the route to render for a navigation to route.
func Decide(route string, st State) Decision {
	target := route
	if !Known(target) {
		target = RouteHome
	}

	switch {
	case target == RouteAuth:
	case target == RouteSetup:
		if !st.HasToken {
			target = RouteAuth
		}
	case !st.HasToken:
		target = RouteAuth
	case !st.setUp():
		target = RouteSetup
	}

	return Decision{Route: target, Redirected: target != route}
}

// Known reports whether route is one of the application's routes.
func Known(route string) bool {
	if route == RouteAuth || route == RouteSetup {
		return true
	}
	return IsProtected(route)
}

// IsProtected reports whether route needs a completed profile.
func IsProtected(route string) bool {
	for _, r := range ProtectedRoutes {
		if r == route {
			return true
		}
	}
	return false
}
