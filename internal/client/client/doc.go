// Package client talks to the linekeeper UserAdmin service.
//
// The Client interface is the contract the CLI depends on. GRPCClient
// implements it over a gRPC connection, attaches the access token to every
// call through a unary interceptor and maps gRPC status codes onto the
// sentinel errors ErrUnavailable, ErrUnauthorized and ErrNotFound.
package client
