package session

// RouteClass categorizes screens by who may see them.
type RouteClass int

const (
	// RouteProtected screens require an authenticated session.
	RouteProtected RouteClass = iota
	// RoutePublicOnly screens (login) are for anonymous sessions only.
	RoutePublicOnly
)

// String returns the display name for a route class.
func (rc RouteClass) String() string {
	switch rc {
	case RouteProtected:
		return "protected"
	case RoutePublicOnly:
		return "public-only"
	default:
		return "unknown"
	}
}

// Decision is the gate's verdict for a screen under a given session.
type Decision int

const (
	// ShowContent renders the requested screen.
	ShowContent Decision = iota
	// ShowLoading renders a neutral placeholder while the session is
	// being established; neither content nor a redirect.
	ShowLoading
	// RedirectLogin sends an anonymous session to the login screen.
	RedirectLogin
	// RedirectHome sends an authenticated session away from public-only
	// screens to the protected root.
	RedirectHome
)

// String returns the display name for a decision.
func (d Decision) String() string {
	switch d {
	case ShowContent:
		return "show"
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

// Decide is the access gate. It is a pure function of the session
// snapshot and must be re-evaluated on every session change; callers
// never cache its result.
func Decide(s Session, rc RouteClass) Decision {
	switch rc {
	case RoutePublicOnly:
		if s.LoggedIn {
			return RedirectHome
		}
		return ShowContent
	default:
		if s.Loading {
			return ShowLoading
		}
		if !s.LoggedIn {
			return RedirectLogin
		}
		return ShowContent
	}
}
