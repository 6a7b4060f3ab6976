package dyntools

import (
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/dyntools-go/internal/session"
)

// Server is the template from which sessions are created: a name and
// version, the seed tools, the mutation policies, and a logger.
//
// The server holds configuration only. It keeps no table of live
// sessions; the transport collaborator owns that keyed collection and
// calls CreateSession and DestroySession around each client's lifetime.
type Server struct {
	name    string
	version string
	log     *slog.Logger
	opts    *serverOptions
}

// NewServer creates a session template.
//
// Parameters:
//   - name: server name, presented to clients by the transport
//   - version: server version string
func NewServer(name, version string, opts ...Option) *Server {
	options := applyServerOptions(opts)

	log := options.logger
	if log == nil {
		log = NopLogger()
	}

	return &Server{
		name:    name,
		version: version,
		log:     log.With("server", name),
		opts:    options,
	}
}

// Name returns the server name.
func (s *Server) Name() string { return s.name }

// Version returns the server version.
func (s *Server) Version() string { return s.version }

// CreateSession creates a fresh isolated session seeded with the
// server's tools. Call DestroySession when the client disconnects;
// nothing in the session outlives it.
func (s *Server) CreateSession(opts ...SessionOption) *Session {
	options := &sessionOptions{}
	for _, opt := range opts {
		opt(options)
	}

	id := ulid.Make().String()

	state := session.New(id, s.log, seedTools(s.opts.tools), s.opts.policies, options.notifier)

	s.log.Debug("session created", "session", id, "tools", len(s.opts.tools))

	return &Session{state: state}
}

// DestroySession discards a session and its registry. Idempotent; nil is
// a no-op. In-flight dispatches finish, later ones fail with
// ErrSessionClosed.
func (s *Server) DestroySession(sess *Session) {
	if sess == nil {
		return
	}

	sess.state.Close()

	s.log.Debug("session destroyed", "session", sess.ID())
}

// seedTools copies the descriptor slice so sessions never alias the
// server's configuration slice. Descriptors themselves are immutable and
// safely shared.
func seedTools(tools []*Tool) []*Tool {
	seed := make([]*Tool, len(tools))
	copy(seed, tools)

	return seed
}
