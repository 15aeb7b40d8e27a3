package httpclient

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/artemevsevev/finam/internal/testutil"
)

func TestNewBuilder_Defaults(t *testing.T) {
	builder := NewBuilder()

	if builder.timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", builder.timeout)
	}
	if !builder.followRedirects {
		t.Error("expected redirects to be followed by default")
	}
}

func TestBuilder_Build_Plain(t *testing.T) {
	client, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if client.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", client.Timeout)
	}
}

func TestBuilder_Build_WithTokenManager(t *testing.T) {
	manager := newTestManager(t, "T0")

	var gotAuth string
	base := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		gotAuth = req.Header.Get("Authorization")
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader("{}")),
			Request:    req,
		}, nil
	})

	client, err := NewBuilder().
		WithTokenManager(manager).
		WithBaseTransport(base).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	resp, err := client.Get("https://api.finam.ru/v1/assets")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if gotAuth != "T0" {
		t.Errorf("expected Authorization header %q, got %q", "T0", gotAuth)
	}
}

func TestBuilder_Build_WithTimeout(t *testing.T) {
	client, err := NewBuilder().WithTimeout(5 * time.Second).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if client.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", client.Timeout)
	}
}

func TestBuilder_Build_WithoutRedirects(t *testing.T) {
	redirects := 0
	server := testutil.NewLocalHTTPServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			redirects++
			http.Redirect(w, r, "/end", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewBuilder().WithoutRedirects().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	resp, err := client.Get(server.URL + "/start")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Errorf("expected redirect response to be returned as-is, got %d", resp.StatusCode)
	}
}

func TestBuilder_Build_InvalidTLSConfig(t *testing.T) {
	_, err := NewBuilder().
		WithTLS("/nonexistent/ca.crt", "", "").
		Build()
	if err == nil {
		t.Error("expected error for invalid CA file")
	}
}

func TestBuilder_BuildTLSConfig_ValidCAFile(t *testing.T) {
	tmpDir := t.TempDir()
	caFile := filepath.Join(tmpDir, "ca.crt")
	testutil.WriteTestCACert(t, caFile)

	builder := NewBuilder().WithTLS(caFile, "", "")

	tlsConfig, err := builder.buildTLSConfig()
	if err != nil {
		t.Fatalf("buildTLSConfig failed: %v", err)
	}

	if tlsConfig.RootCAs == nil {
		t.Error("RootCAs should not be nil")
	}
}

func TestBuilder_BuildTLSConfig_CertWithoutKey(t *testing.T) {
	builder := NewBuilder().WithTLS("", "/path/to/cert.crt", "")

	if _, err := builder.buildTLSConfig(); err == nil {
		t.Error("expected error for cert without key")
	}
}

func TestBuilder_BuildTLSConfig_InsecureSkipVerify(t *testing.T) {
	builder := NewBuilder().WithInsecureSkipVerify()

	tlsConfig, err := builder.buildTLSConfig()
	if err != nil {
		t.Fatalf("buildTLSConfig failed: %v", err)
	}

	if !tlsConfig.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify to be set")
	}
}

func TestNewHTTPClient(t *testing.T) {
	manager := newTestManager(t, "T0")

	client := NewHTTPClient(manager)

	if client.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", client.Timeout)
	}

	if _, ok := client.Transport.(*AuthTransport); !ok {
		t.Errorf("expected AuthTransport, got %T", client.Transport)
	}
}
