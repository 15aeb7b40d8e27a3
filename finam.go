package finam

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"google.golang.org/grpc"

	"github.com/artemevsevev/finam/authclient"
	"github.com/artemevsevev/finam/grpcclient"
	"github.com/artemevsevev/finam/tradeapi"
)

// DefaultAddress is the production endpoint of the Finam Trade API.
const DefaultAddress = "api.finam.ru:443"

// SDK is an authenticated session with the Finam Trade API.
//
// It owns two gRPC connections to the same endpoint — a plain one used only
// for token issuing and an authenticated one for everything else — plus the
// token manager whose refresh loop is bound to the SDK's lifetime. Close the
// SDK when done; dropping it without Close leaks the refresh goroutine.
type SDK struct {
	authConn *grpc.ClientConn
	conn     *grpc.ClientConn
	manager  *authclient.Manager

	closeOnce sync.Once
	closeErr  error
}

type sdkConfig struct {
	address     string
	dialOpts    []grpc.DialOption
	tlsCAFile   string
	tlsCertFile string
	tlsKeyFile  string
	tlsServer   string
	tlsEnabled  bool
	managerOpts []authclient.Option
}

// Option is a functional option for configuring the SDK.
type Option func(*sdkConfig)

// WithAddress overrides the API endpoint (default: api.finam.ru:443).
func WithAddress(address string) Option {
	return func(c *sdkConfig) {
		c.address = address
	}
}

// WithDialOptions adds custom gRPC dial options to both SDK connections.
// A WithTransportCredentials passed here overrides the default TLS credentials.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *sdkConfig) {
		c.dialOpts = append(c.dialOpts, opts...)
	}
}

// WithTLS supplies a custom trust configuration for both SDK connections.
// See grpcclient.Builder.WithTLS for parameter semantics.
func WithTLS(caFile, certFile, keyFile, serverName string) Option {
	return func(c *sdkConfig) {
		c.tlsEnabled = true
		c.tlsCAFile = caFile
		c.tlsCertFile = certFile
		c.tlsKeyFile = keyFile
		c.tlsServer = serverName
	}
}

// WithRefreshInterval overrides the token refresh cadence (default 10 minutes).
func WithRefreshInterval(d time.Duration) Option {
	return func(c *sdkConfig) {
		c.managerOpts = append(c.managerOpts, authclient.WithRefreshInterval(d))
	}
}

// WithFetchTimeout overrides the timeout applied to each token-issuing call.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *sdkConfig) {
		c.managerOpts = append(c.managerOpts, authclient.WithFetchTimeout(d))
	}
}

// WithLogger sets a custom logger for token refresh events.
func WithLogger(logger authclient.Logger) Option {
	return func(c *sdkConfig) {
		c.managerOpts = append(c.managerOpts, authclient.WithLogger(logger))
	}
}

// WithLoggingEnabled enables token refresh logging via the default Go log package.
func WithLoggingEnabled() Option {
	return func(c *sdkConfig) {
		c.managerOpts = append(c.managerOpts, authclient.WithLoggingEnabled())
	}
}

// WithClock replaces the wall clock driving the refresh loop.
// Intended for tests that advance simulated time.
func WithClock(clock clockwork.Clock) Option {
	return func(c *sdkConfig) {
		c.managerOpts = append(c.managerOpts, authclient.WithClock(clock))
	}
}

// New opens an authenticated session with the Finam Trade API.
//
// It exchanges the secret for an access token synchronously — if the secret
// is rejected or the endpoint unreachable, New returns the error and no
// background work is started. On success the returned SDK carries a token
// manager that re-issues the token every refresh interval until Close.
//
// The token-issuing RPC must itself run unauthenticated, and gRPC
// interceptors are fixed at dial time, so the SDK keeps a dedicated plain
// connection for the issuer alongside the authenticated API connection.
//
// Parameters:
//   - ctx: Context for the initial token fetch
//   - secret: API token from the Finam account settings
//   - opts: Optional configuration (WithAddress, WithRefreshInterval, ...)
func New(ctx context.Context, secret string, opts ...Option) (*SDK, error) {
	cfg := &sdkConfig{
		address: DefaultAddress,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	authBuilder := grpcclient.NewBuilder().
		WithAddress(cfg.address).
		WithDialOptions(cfg.dialOpts...)
	if cfg.tlsEnabled {
		authBuilder.WithTLS(cfg.tlsCAFile, cfg.tlsCertFile, cfg.tlsKeyFile, cfg.tlsServer)
	}

	authConn, err := authBuilder.Build()
	if err != nil {
		return nil, fmt.Errorf("finam: auth connection: %w", err)
	}

	manager, err := authclient.NewManager(ctx, tradeapi.NewIssuer(authConn), secret, cfg.managerOpts...)
	if err != nil {
		_ = authConn.Close()
		return nil, err
	}

	apiBuilder := grpcclient.NewBuilder().
		WithAddress(cfg.address).
		WithAuth(manager).
		WithDialOptions(cfg.dialOpts...)
	if cfg.tlsEnabled {
		apiBuilder.WithTLS(cfg.tlsCAFile, cfg.tlsCertFile, cfg.tlsKeyFile, cfg.tlsServer)
	}

	conn, err := apiBuilder.Build()
	if err != nil {
		manager.Close()
		_ = authConn.Close()
		return nil, fmt.Errorf("finam: api connection: %w", err)
	}

	return &SDK{
		authConn: authConn,
		conn:     conn,
		manager:  manager,
	}, nil
}

// Conn returns the authenticated gRPC connection. Create generated Trade API
// service clients (accounts, assets, market data, orders) over it; every call
// carries the current access token.
func (s *SDK) Conn() *grpc.ClientConn {
	return s.conn
}

// Auth returns a client for the Trade API AuthService.
func (s *SDK) Auth() tradeapi.AuthServiceClient {
	return tradeapi.NewAuthServiceClient(s.conn)
}

// TokenManager returns the token manager backing this session, for use with
// httpclient or custom transports.
func (s *SDK) TokenManager() *authclient.Manager {
	return s.manager
}

// Token returns the current access token.
func (s *SDK) Token() string {
	return s.manager.Token()
}

// Close stops the token refresh loop and closes both connections. It is
// idempotent; subsequent calls return the first result.
func (s *SDK) Close() error {
	s.closeOnce.Do(func() {
		s.manager.Close()

		err := s.conn.Close()
		if cerr := s.authConn.Close(); err == nil {
			err = cerr
		}
		s.closeErr = err
	})
	return s.closeErr
}
