package testutil

import (
	"context"
	"net"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/artemevsevev/finam/tradeapi"
)

const bufSize = 1024 * 1024

// AuthHandler produces the response for one Auth RPC.
type AuthHandler func(ctx context.Context, req *tradeapi.AuthRequest) (*tradeapi.AuthResponse, error)

// StaticToken returns an AuthHandler that always issues the given token.
func StaticToken(token string) AuthHandler {
	return func(context.Context, *tradeapi.AuthRequest) (*tradeapi.AuthResponse, error) {
		return &tradeapi.AuthResponse{Token: token}, nil
	}
}

// AuthServer is an in-memory Finam AuthService backed by bufconn.
// It records the number of Auth calls and lets tests swap the handler
// mid-flight to simulate changing endpoint behavior.
type AuthServer struct {
	listener *bufconn.Listener
	server   *grpc.Server

	mu      sync.Mutex
	handler AuthHandler
	calls   int
}

type authService interface {
	Auth(ctx context.Context, req *tradeapi.AuthRequest) (*tradeapi.AuthResponse, error)
}

func authMethodHandler(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	in := new(tradeapi.AuthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	return srv.(authService).Auth(ctx, in)
}

// Hand-rolled service descriptor matching the tradeapi binding; the test
// server has no generated code to lean on either.
var authServiceDesc = grpc.ServiceDesc{
	ServiceName: "grpc.tradeapi.v1.auth.AuthService",
	HandlerType: (*authService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Auth", Handler: authMethodHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "grpc/tradeapi/v1/auth/auth_service.proto",
}

// StartAuthServer starts an in-memory AuthService and registers cleanup on tb.
func StartAuthServer(tb testing.TB, handler AuthHandler) *AuthServer {
	tb.Helper()

	s := &AuthServer{
		listener: bufconn.Listen(bufSize),
		server:   grpc.NewServer(),
		handler:  handler,
	}
	s.server.RegisterService(&authServiceDesc, s)

	go func() {
		_ = s.server.Serve(s.listener)
	}()
	tb.Cleanup(s.server.Stop)

	return s
}

// Auth dispatches to the current handler and counts the call.
func (s *AuthServer) Auth(ctx context.Context, req *tradeapi.AuthRequest) (*tradeapi.AuthResponse, error) {
	s.mu.Lock()
	s.calls++
	handler := s.handler
	s.mu.Unlock()

	return handler(ctx, req)
}

// SetHandler replaces the handler used for subsequent Auth calls.
func (s *AuthServer) SetHandler(handler AuthHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
}

// Calls returns how many Auth RPCs the server has received.
func (s *AuthServer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// DialOptions returns dial options routing a client connection to this server.
func (s *AuthServer) DialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			return s.listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
}

// Dial opens a client connection to this server and registers cleanup on tb.
func (s *AuthServer) Dial(tb testing.TB) *grpc.ClientConn {
	tb.Helper()

	conn, err := grpc.NewClient("passthrough:///bufnet", s.DialOptions()...)
	if err != nil {
		tb.Fatalf("failed to dial bufconn server: %v", err)
	}
	tb.Cleanup(func() { _ = conn.Close() })

	return conn
}
