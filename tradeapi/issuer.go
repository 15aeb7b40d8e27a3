package tradeapi

import (
	"context"
	"errors"

	"google.golang.org/grpc"
)

// Issuer issues access tokens via the AuthService. It satisfies
// authclient.TokenIssuer and is the production issuer used by the SDK.
type Issuer struct {
	client AuthServiceClient
}

// NewIssuer creates an Issuer over the given connection. The connection must
// not attach authentication of its own — the Auth RPC is the call that
// establishes it.
func NewIssuer(cc grpc.ClientConnInterface) *Issuer {
	return &Issuer{client: NewAuthServiceClient(cc)}
}

// IssueToken performs one Auth round trip and returns the issued JWT.
func (i *Issuer) IssueToken(ctx context.Context, secret string) (string, error) {
	resp, err := i.client.Auth(ctx, &AuthRequest{Secret: secret})
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("tradeapi: auth response carried no token")
	}
	return resp.Token, nil
}
