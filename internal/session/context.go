package session

import "context"

type contextKey struct{}

// NewContext returns a context carrying the session store. The upstream
// transport reads the store back out to attach the bearer token and to clear
// the session when the API answers 401.
func NewContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext extracts the session store, or nil when the request is not
// bound to a browser session.
func FromContext(ctx context.Context) *Store {
	store, _ := ctx.Value(contextKey{}).(*Store)
	return store
}
