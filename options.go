package dyntools

import (
	"log/slog"

	"github.com/wagiedev/dyntools-go/internal/session"
)

// Option configures a Server using the functional options pattern.
type Option func(*serverOptions)

type serverOptions struct {
	logger   *slog.Logger
	tools    []*Tool
	policies []Policy
}

func applyServerOptions(opts []Option) *serverOptions {
	options := &serverOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *serverOptions) {
		o.logger = logger
	}
}

// WithTools sets the seed tools every new session starts with.
func WithTools(tools ...*Tool) Option {
	return func(o *serverOptions) {
		o.tools = append(o.tools, tools...)
	}
}

// WithPolicies sets the mutation policies applied after every successful
// dispatch, in order. Later policies see the registry as earlier ones
// left it within the same pass.
func WithPolicies(policies ...Policy) Option {
	return func(o *serverOptions) {
		o.policies = append(o.policies, policies...)
	}
}

// Notifier delivers the content-free "tool list changed" signal for one
// session. Supplied by the transport collaborator; it may fail, and
// failure never affects the mutation already committed.
type Notifier = session.Notifier

// SessionOption configures a Session at creation time.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	notifier Notifier
}

// WithListChangedNotifier wires the transport's change signal for this
// session. Without it the session mutates silently and clients see
// changes on their next listing.
func WithListChangedNotifier(n Notifier) SessionOption {
	return func(o *sessionOptions) {
		o.notifier = n
	}
}
