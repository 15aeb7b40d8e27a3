// Package httpclient provides HTTP client helpers for the Finam REST gateway
// with automatic access-token injection.
//
// AuthTransport wraps any http.RoundTripper and sets the Authorization header
// from a token manager before each request; Builder constructs a fully
// configured http.Client with TLS options and timeouts.
//
// # Features
//
//   - AuthTransport: drop-in RoundTripper adding the current token
//   - Fluent Builder with TLS/mTLS, timeout, and redirect configuration
//   - NewHTTPClient convenience constructor
//
// # Quick Start
//
//	client, err := httpclient.NewBuilder().
//	    WithTokenManager(sdk.TokenManager()).
//	    WithTimeout(10 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get("https://api.finam.ru/v1/assets")
//
// The token read is a fast in-memory lookup; the background refresh loop in
// authclient keeps it fresh.
package httpclient
