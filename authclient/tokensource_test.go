package authclient

import (
	"context"
	"testing"
	"time"

	"github.com/artemevsevev/finam/internal/testutil"
)

func TestManager_TokenSource(t *testing.T) {
	expiry := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	token := testutil.MintJWT(t, expiry)

	issuer := &scriptedIssuer{script: []issueResult{{token: token}}}

	m, err := NewManager(context.Background(), issuer, "secret")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer m.Close()

	ts := m.TokenSource()

	got, err := ts.Token()
	if err != nil {
		t.Fatalf("TokenSource.Token failed: %v", err)
	}
	if got.AccessToken != token {
		t.Errorf("expected access token %q, got %q", token, got.AccessToken)
	}
	if got.TokenType != "Bearer" {
		t.Errorf("expected token type Bearer, got %q", got.TokenType)
	}
	if !got.Expiry.Equal(expiry) {
		t.Errorf("expected expiry %v, got %v", expiry, got.Expiry)
	}
	if !got.Valid() {
		t.Error("expected a fresh token to be valid")
	}
}

func TestManager_TokenSource_OpaqueToken(t *testing.T) {
	issuer := &scriptedIssuer{script: []issueResult{{token: "opaque-token"}}}

	m, err := NewManager(context.Background(), issuer, "secret")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer m.Close()

	got, err := m.TokenSource().Token()
	if err != nil {
		t.Fatalf("TokenSource.Token failed: %v", err)
	}
	if got.AccessToken != "opaque-token" {
		t.Errorf("unexpected access token %q", got.AccessToken)
	}
	if !got.Expiry.IsZero() {
		t.Errorf("expected zero expiry for an opaque token, got %v", got.Expiry)
	}
}
