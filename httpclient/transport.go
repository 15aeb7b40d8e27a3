package httpclient

import (
	"fmt"
	"net/http"

	"github.com/artemevsevev/finam/authclient"
)

// AuthTransport is an http.RoundTripper that automatically adds the current
// Finam access token to outgoing HTTP requests.
//
// It wraps an existing transport (typically http.DefaultTransport) and
// injects the Authorization header before each request. The REST gateway
// accepts the same bare JWT the gRPC API does.
type AuthTransport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// TokenManager provides the current access token.
	TokenManager *authclient.Manager
}

// RoundTrip implements http.RoundTripper interface.
// It reads the current token and adds it as "Authorization: <token>" to the
// request headers before delegating to the base transport. The read is an
// in-memory lookup and never blocks on a token fetch.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.TokenManager == nil {
		return nil, fmt.Errorf("httpclient: TokenManager is nil")
	}

	// Clone the request to avoid modifying the original
	reqClone := req.Clone(req.Context())

	// Add Authorization header
	reqClone.Header.Set("Authorization", t.TokenManager.Token())

	// Use base transport or default
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(reqClone)
}

// NewAuthTransport creates a new AuthTransport with the given token manager.
// The base transport defaults to http.DefaultTransport if not specified.
func NewAuthTransport(tm *authclient.Manager, base http.RoundTripper) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &AuthTransport{
		Base:         base,
		TokenManager: tm,
	}
}
