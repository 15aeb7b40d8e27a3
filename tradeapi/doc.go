// Package tradeapi binds the slice of the Finam Trade API gRPC surface that
// the SDK itself calls: the AuthService Auth RPC that exchanges the API
// secret for a session JWT.
//
// The messages are hand-written, wire-compatible structs relying on protobuf
// struct tags rather than generated code — one RPC with two single-field
// messages does not justify a codegen pipeline. Every other Trade API service
// (accounts, assets, market data, orders) is a pass-through call: create its
// generated client over the SDK's authenticated connection.
//
// # Quick Start
//
//	issuer := tradeapi.NewIssuer(conn)
//	token, err := issuer.IssueToken(ctx, secret)
package tradeapi
