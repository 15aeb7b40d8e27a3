package authclient

import (
	"golang.org/x/oauth2"
)

// tokenSource adapts a Manager to the oauth2.TokenSource interface.
type tokenSource struct {
	m *Manager
}

// Token returns the current access token wrapped in an oauth2.Token.
// It never performs a network call; the Manager's refresh loop keeps the
// underlying token fresh.
func (s tokenSource) Token() (*oauth2.Token, error) {
	tok := &oauth2.Token{
		AccessToken: s.m.Token(),
		TokenType:   "Bearer",
	}
	if expiry, ok := s.m.ExpiresAt(); ok {
		tok.Expiry = expiry
	}
	return tok, nil
}

// TokenSource returns an oauth2.TokenSource view of the manager for
// integration with libraries that consume golang.org/x/oauth2 credentials.
//
// The returned source is read-only: it reflects whatever token the refresh
// loop last published and never triggers a fetch of its own.
func (m *Manager) TokenSource() oauth2.TokenSource {
	return tokenSource{m: m}
}
