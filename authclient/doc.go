// Package authclient keeps a Finam Trade API access token fresh for the
// lifetime of a Manager.
//
// A Manager performs one synchronous token fetch at construction, then
// refreshes the token from a single background goroutine on a fixed interval
// (10 minutes by default, matching the Finam documentation). Reads are
// lock-protected in-memory lookups that never wait on the network; a failed
// refresh keeps the last known-good token and retries on the next tick.
// Close stops the loop deterministically — no token write happens after it
// returns.
//
// # Features
//
//   - Synchronous initial fetch; construction fails cleanly with no leaked goroutine
//   - Fixed-interval refresh with per-fetch timeout and prompt cancellation
//   - Non-blocking Token reads safe for unlimited concurrent callers
//   - gRPC unary and stream client interceptors that inject the token
//   - oauth2.TokenSource interop for HTTP consumers
//   - Optional logging (WithLogger, WithLoggingEnabled)
//
// # Quick Start
//
//	manager, err := authclient.NewManager(
//	    ctx,
//	    tradeapi.NewIssuer(authConn),
//	    os.Getenv("FINAM_SECRET"),
//	    authclient.WithLoggingEnabled(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.Close()
//
//	conn, err := grpc.NewClient(
//	    "api.finam.ru:443",
//	    grpc.WithUnaryInterceptor(manager.UnaryClientInterceptor()),
//	    grpc.WithStreamInterceptor(manager.StreamClientInterceptor()),
//	)
//
// # Notes
//
//   - The interceptors attach the bare JWT as "authorization" metadata; the
//     Finam Trade API does not use a Bearer prefix.
//   - Manager is safe for concurrent use; the refresh loop is its only writer.
package authclient
