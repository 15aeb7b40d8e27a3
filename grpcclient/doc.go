// Package grpcclient provides a fluent builder for secure gRPC client connections with optional
// access-token authentication.
//
// It defaults to TLS 1.2+ using system roots to avoid accidental plaintext connections. Optional
// methods let you attach a token manager's interceptors, a custom CA or mTLS credentials, and
// extra dial options.
//
// # Features
//
//   - Fluent builder for gRPC clients
//   - Token authentication via authclient.Manager interceptors
//   - Secure-by-default TLS; optional custom CA and mTLS
//   - Additional dial options via WithDialOptions
//
// # Quick Start
//
//	conn, err := grpcclient.NewBuilder().
//	    WithAddress("api.finam.ru:443").
//	    WithAuth(manager).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	client := pb.NewMarketDataServiceClient(conn)
//
// # TLS Behavior
//
// TLS is enabled by default with system CAs and TLS 1.2 minimum. WithTLS allows supplying a custom
// root CA and optional client cert/key for mTLS; both cert and key must be provided together.
package grpcclient
