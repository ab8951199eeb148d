// Package client contains the client-side building blocks for the accounts
// service.
//
// # Overview
//
// The package provides a concrete gRPC client (see GRPCClient) that manages
// a connection, selects the service's JSON content subtype, injects the
// bearer token via an interceptor, and maps gRPC status codes to sentinel
// errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized.
package client
