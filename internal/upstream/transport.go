package upstream

import (
	"net/http"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/session"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/apperrors"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/metrics"
)

// authTransport intercepts every round-trip to the booking API. Outbound: if
// the request context carries a session store with a token, the token is
// attached as a bearer credential; otherwise the request goes out
// unauthenticated and the API decides per endpoint. Inbound: a 401 response
// unconditionally clears the session store. That invalidation is global and
// not recoverable in place, unlike ordinary error propagation; callers see
// ErrSessionExpired and the HTTP layer redirects to the login entry point.
type authTransport struct {
	base http.RoundTripper
}

func newAuthTransport(base http.RoundTripper) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	store := session.FromContext(req.Context())

	if store != nil {
		if token, ok := store.Token(); ok {
			// RoundTrippers must not mutate the caller's request
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if store != nil {
			store.Clear()
		}
		metrics.SessionInvalidations.Inc()
		resp.Body.Close()
		return nil, apperrors.NewUpstreamError(http.StatusUnauthorized, "")
	}

	return resp, nil
}
