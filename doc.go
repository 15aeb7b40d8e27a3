// Package finam is a Go SDK for the Finam Trade API.
//
// The SDK wraps the gRPC Trade API behind a single handle. New exchanges your
// API secret for a session JWT, keeps it fresh in the background (the token
// is re-issued every 10 minutes), and hands you an authenticated connection
// for the generated Trade API service clients. Close stops the refresh loop
// and releases both connections deterministically.
//
// # Features
//
//   - One-call construction: New(ctx, secret) fails fast on a bad secret
//   - Background token refresh bound to the SDK's lifetime
//   - Authenticated *grpc.ClientConn for any Trade API service client
//   - REST gateway support via httpclient and the shared token manager
//   - Configurable endpoint, cadence, TLS, and logging
//
// # Quick Start
//
//	sdk, err := finam.New(ctx, os.Getenv("FINAM_SECRET"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sdk.Close()
//
//	marketData := pb.NewMarketDataServiceClient(sdk.Conn())
//	quote, err := marketData.LastQuote(ctx, &pb.QuoteRequest{Symbol: "SBER@MISX"})
//
// # Packages
//
//   - authclient: the token lifecycle manager
//   - grpcclient: builder for TLS gRPC connections
//   - httpclient: REST gateway client helpers
//   - tradeapi: binding for the AuthService token-issuing RPC
package finam
