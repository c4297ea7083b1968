package client

// SessionState describes what the client currently knows about its session.
// It is advisory: the server remains the source of truth, and the state is
// updated from observed responses.
type SessionState int32

const (
	// StateAnonymous: no session established (never logged in, or logged out).
	StateAnonymous SessionState = iota
	// StateAuthenticated: last request or refresh succeeded.
	StateAuthenticated
	// StateAccessExpired: a 401 was observed and a refresh is in flight.
	StateAccessExpired
	// StateExpired: refresh failed; a new login is required.
	StateExpired
)

func (s SessionState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateAccessExpired:
		return "access_expired"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}
