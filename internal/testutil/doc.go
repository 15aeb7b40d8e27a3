// Package testutil provides test helpers for the finam SDK packages.
//
// It includes an in-memory Finam AuthService served over bufconn, utilities
// to spin up IPv4-only local HTTP servers (avoiding IPv6 in sandboxes),
// inline RoundTripper stubs, JWT minting, and self-signed certificate
// generation for TLS tests.
//
// # Utilities
//
//   - StartAuthServer / StaticToken: stub the token-issuing RPC and count calls
//   - NewLocalHTTPServer: start httptest server bound to 127.0.0.1
//   - RoundTripFunc and StaticJSONResponse: inline http.RoundTripper implementations
//   - MintJWT: signed HS256 tokens with a chosen expiry
//   - WriteTestCACert / WriteTestCertAndKey: temporary CA and leaf certificates
package testutil
