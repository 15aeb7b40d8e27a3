package authclient

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	// DefaultRefreshInterval is how often the manager re-issues the access
	// token. The Finam Trade API documents a 10 minute cadence.
	DefaultRefreshInterval = 10 * time.Minute

	// DefaultFetchTimeout bounds a single token-issuing round trip. It is
	// deliberately much shorter than the refresh interval so a stuck call
	// cannot starve the loop.
	DefaultFetchTimeout = 30 * time.Second
)

// TokenIssuer issues a fresh access token for the given secret.
// Implementations perform the actual round trip to the auth endpoint
// (see tradeapi.Issuer for the gRPC-backed one).
type TokenIssuer interface {
	IssueToken(ctx context.Context, secret string) (string, error)
}

// IssuerFunc adapts a plain function to the TokenIssuer interface.
type IssuerFunc func(ctx context.Context, secret string) (string, error)

// IssueToken calls the underlying function.
func (f IssuerFunc) IssueToken(ctx context.Context, secret string) (string, error) {
	return f(ctx, secret)
}

// Logger is an interface for optional logging in Manager.
// Implementations can log token refresh events if desired.
type Logger interface {
	Printf(format string, args ...any)
}

// accessToken is the single value published by the refresh loop.
type accessToken struct {
	value     string
	expiresAt time.Time // zero when the token carries no exp claim
}

// Manager keeps a Finam Trade API access token fresh for as long as it is
// open. It performs one synchronous fetch at construction, then refreshes the
// token on a fixed interval from a single background goroutine. Reads never
// block on the network: Token returns the last published value from an
// in-memory cell guarded by a read-write lock.
//
// The background goroutine is bound to the Manager: Close stops it and no
// token write happens after Close returns. A Manager that failed to construct
// owns no goroutine at all.
type Manager struct {
	issuer       TokenIssuer
	secret       string
	interval     time.Duration
	fetchTimeout time.Duration
	logger       Logger // optional logger
	clock        clockwork.Clock

	mu      sync.RWMutex
	current accessToken

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// Option is a functional option for configuring Manager.
type Option func(*Manager)

// WithRefreshInterval overrides the refresh cadence.
// The default of 10 minutes matches the Finam Trade API documentation.
func WithRefreshInterval(d time.Duration) Option {
	return func(m *Manager) {
		m.interval = d
	}
}

// WithFetchTimeout overrides the timeout applied to each token-issuing call.
func WithFetchTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.fetchTimeout = d
	}
}

// WithLogger sets a custom logger for token refresh events.
// If not set, no logging will occur.
func WithLogger(logger Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLoggingEnabled enables logging using the default Go log package.
// This is a convenience option that sets the logger to log.Default().
func WithLoggingEnabled() Option {
	return func(m *Manager) {
		m.logger = log.Default()
	}
}

// WithClock replaces the wall clock driving the refresh loop.
// Intended for tests that advance simulated time.
func WithClock(clock clockwork.Clock) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

// NewManager fetches an initial access token and starts the refresh loop.
//
// The initial fetch is synchronous and bounded by the fetch timeout; if it
// fails, NewManager returns the error and no background work is started. The
// provided context governs the initial fetch only — the refresh loop runs on
// its own context until Close.
//
// Parameters:
//   - ctx: Context for the initial token fetch
//   - issuer: Performs the token-issuing round trip
//   - secret: Long-lived API secret supplied by the caller
//   - opts: Optional configuration (WithRefreshInterval, WithLogger, ...)
func NewManager(ctx context.Context, issuer TokenIssuer, secret string, opts ...Option) (*Manager, error) {
	if issuer == nil {
		return nil, errors.New("authclient: token issuer is required")
	}
	if secret == "" {
		return nil, errors.New("authclient: secret is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := &Manager{
		issuer:       issuer,
		secret:       secret,
		interval:     DefaultRefreshInterval,
		fetchTimeout: DefaultFetchTimeout,
		clock:        clockwork.NewRealClock(),
		done:         make(chan struct{}),
	}

	// Apply options
	for _, opt := range opts {
		opt(m)
	}

	if m.interval <= 0 {
		return nil, errors.New("authclient: refresh interval must be positive")
	}
	if m.fetchTimeout <= 0 {
		return nil, errors.New("authclient: fetch timeout must be positive")
	}
	if m.fetchTimeout >= m.interval {
		return nil, errors.New("authclient: fetch timeout must be shorter than the refresh interval")
	}

	tok, err := m.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("authclient: initial token fetch failed: %w", err)
	}
	m.publish(tok)

	// Keep refresh fetches independent from the constructor's context while
	// preserving its values; the loop stops only via Close.
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel
	go m.refreshLoop(loopCtx)

	return m, nil
}

// Token returns the last published access token. It never blocks on a fetch
// in flight and is never empty for a successfully constructed Manager.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.value
}

// ExpiresAt returns the expiry of the current token as carried in its exp
// claim. ok is false when the token is not a JWT or has no expiry.
func (m *Manager) ExpiresAt() (expiry time.Time, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.expiresAt, !m.current.expiresAt.IsZero()
}

// Close stops the refresh loop and waits for it to exit. Any fetch in flight
// is aborted and its result discarded, so no token write happens after Close
// returns. Close is idempotent and safe to call concurrently.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.cancel()
		<-m.done
	})
}

// refreshLoop re-issues the token every interval until cancelled. A failed
// fetch keeps the previously published token: an auth-endpoint hiccup must
// not invalidate credentials that are still valid.
func (m *Manager) refreshLoop(ctx context.Context) {
	defer close(m.done)

	timer := m.clock.NewTimer(m.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.Chan():
		}

		tok, err := m.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if m.logger != nil {
				m.logger.Printf("authclient: token refresh failed, keeping previous token: %v", err)
			}
			timer.Reset(m.interval)
			continue
		}

		// A result that raced with cancellation must not be published.
		if ctx.Err() != nil {
			return
		}
		m.publish(tok)
		timer.Reset(m.interval)
	}
}

// fetch performs one token-issuing round trip bounded by the fetch timeout.
func (m *Manager) fetch(ctx context.Context) (accessToken, error) {
	ctx, cancel := context.WithTimeout(ctx, m.fetchTimeout)
	defer cancel()

	value, err := m.issuer.IssueToken(ctx, m.secret)
	if err != nil {
		return accessToken{}, err
	}
	if value == "" {
		return accessToken{}, errors.New("auth endpoint returned an empty token")
	}

	return accessToken{value: value, expiresAt: tokenExpiry(value)}, nil
}

// publish atomically replaces the stored token. The refresh loop is the only
// writer; readers go through Token / ExpiresAt.
func (m *Manager) publish(tok accessToken) {
	m.mu.Lock()
	m.current = tok
	m.mu.Unlock()

	if m.logger != nil {
		if tok.expiresAt.IsZero() {
			m.logger.Printf("authclient: obtained new access token")
		} else {
			m.logger.Printf("authclient: obtained new access token (expires: %s)", tok.expiresAt.Format(time.RFC3339))
		}
	}
}

// tokenExpiry extracts the exp claim from the issued JWT without verifying
// the signature — the token is opaque to this SDK and only the server
// validates it; the expiry is used for logging and TokenSource interop.
func tokenExpiry(value string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// UnaryClientInterceptor returns a gRPC unary client interceptor that adds
// the current access token to outgoing request metadata.
//
// The token is attached as "authorization: <token>" — the Finam Trade API
// expects the bare JWT without a Bearer prefix.
//
// Usage:
//
//	conn, err := grpc.NewClient(
//	    "api.finam.ru:443",
//	    grpc.WithUnaryInterceptor(manager.UnaryClientInterceptor()),
//	)
func (m *Manager) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", m.Token())
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor returns a gRPC stream client interceptor that adds
// the current access token to outgoing request metadata.
//
// Usage:
//
//	conn, err := grpc.NewClient(
//	    "api.finam.ru:443",
//	    grpc.WithStreamInterceptor(manager.StreamClientInterceptor()),
//	)
func (m *Manager) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", m.Token())
		return streamer(ctx, desc, cc, method, opts...)
	}
}
