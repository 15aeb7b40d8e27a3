package tradeapi_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/artemevsevev/finam/internal/testutil"
	"github.com/artemevsevev/finam/tradeapi"
)

func TestIssuer_IssueToken(t *testing.T) {
	server := testutil.StartAuthServer(t, func(_ context.Context, req *tradeapi.AuthRequest) (*tradeapi.AuthResponse, error) {
		if req.Secret != "my-secret" {
			return nil, status.Error(codes.Unauthenticated, "unknown secret")
		}
		return &tradeapi.AuthResponse{Token: "issued-jwt"}, nil
	})

	issuer := tradeapi.NewIssuer(server.Dial(t))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	token, err := issuer.IssueToken(ctx, "my-secret")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if token != "issued-jwt" {
		t.Errorf("expected token %q, got %q", "issued-jwt", token)
	}
	if server.Calls() != 1 {
		t.Errorf("expected one Auth RPC, got %d", server.Calls())
	}
}

func TestIssuer_IssueToken_Rejected(t *testing.T) {
	server := testutil.StartAuthServer(t, func(_ context.Context, _ *tradeapi.AuthRequest) (*tradeapi.AuthResponse, error) {
		return nil, status.Error(codes.Unauthenticated, "secret revoked")
	})

	issuer := tradeapi.NewIssuer(server.Dial(t))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := issuer.IssueToken(ctx, "revoked-secret")
	if err == nil {
		t.Fatal("expected error for rejected secret")
	}
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("expected Unauthenticated status, got %v", status.Code(err))
	}
}

func TestIssuer_IssueToken_EmptyToken(t *testing.T) {
	server := testutil.StartAuthServer(t, testutil.StaticToken(""))

	issuer := tradeapi.NewIssuer(server.Dial(t))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := issuer.IssueToken(ctx, "secret"); err == nil {
		t.Fatal("expected error for empty token in response")
	}
}

func TestAuthMessages_StringRedactsCredentials(t *testing.T) {
	req := &tradeapi.AuthRequest{Secret: "super-secret-value"}
	if s := req.String(); strings.Contains(s, "super-secret-value") {
		t.Errorf("AuthRequest.String leaked the secret: %s", s)
	}

	resp := &tradeapi.AuthResponse{Token: "issued-jwt-value"}
	if s := resp.String(); strings.Contains(s, "issued-jwt-value") {
		t.Errorf("AuthResponse.String leaked the token: %s", s)
	}
}
