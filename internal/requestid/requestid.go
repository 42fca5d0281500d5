// Package requestid carries a per-request correlation ID through the
// context. The ID is attached by the HTTP middleware, echoed in the
// response header, and stamped onto every log record, so one grep ties a
// failed upload or verify to its full request trace.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header the ID is read from and echoed back on.
const Header = "X-Request-ID"

type ctxKey struct{}

// New mints a fresh request ID for requests that arrive without one.
func New() string {
	return uuid.NewString()
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID attached to ctx, or "" when the call
// did not pass through the middleware (startup, janitor runs).
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
