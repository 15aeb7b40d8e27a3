package tradeapi

import (
	"context"

	"google.golang.org/grpc"
)

// Full method name of the token-issuing RPC, per the published
// grpc.tradeapi.v1.auth protobuf definitions.
const authServiceAuthMethod = "/grpc.tradeapi.v1.auth.AuthService/Auth"

// AuthRequest asks the AuthService to exchange the long-lived API secret for
// a short-lived JWT. The protobuf struct tags make the message wire-compatible
// with the published schema without carrying generated code.
type AuthRequest struct {
	// Secret is the API token issued in the Finam account settings.
	Secret string `protobuf:"bytes,1,opt,name=secret,proto3" json:"secret,omitempty"`
}

// Reset implements the protobuf message interface.
func (m *AuthRequest) Reset() { *m = AuthRequest{} }

// String redacts the secret so request logging cannot leak it.
func (m *AuthRequest) String() string { return "auth_request{secret:<redacted>}" }

// ProtoMessage implements the protobuf message interface.
func (*AuthRequest) ProtoMessage() {}

// AuthResponse carries the issued session token.
type AuthResponse struct {
	// Token is the short-lived JWT attached to all subsequent API calls.
	Token string `protobuf:"bytes,1,opt,name=token,proto3" json:"token,omitempty"`
}

// Reset implements the protobuf message interface.
func (m *AuthResponse) Reset() { *m = AuthResponse{} }

// String implements the protobuf message interface.
func (m *AuthResponse) String() string { return "auth_response{token:<redacted>}" }

// ProtoMessage implements the protobuf message interface.
func (*AuthResponse) ProtoMessage() {}

// AuthServiceClient is the client API for the Finam Trade API AuthService.
type AuthServiceClient interface {
	// Auth exchanges the API secret for a session JWT.
	Auth(ctx context.Context, in *AuthRequest, opts ...grpc.CallOption) (*AuthResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAuthServiceClient creates an AuthService client over the given connection.
func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc: cc}
}

func (c *authServiceClient) Auth(ctx context.Context, in *AuthRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := new(AuthResponse)
	if err := c.cc.Invoke(ctx, authServiceAuthMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
