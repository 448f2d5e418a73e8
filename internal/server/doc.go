// Package server wires and runs the application's transport servers.
//
// It owns the HTTP and gRPC server lifecycles: listener setup, timeouts,
// signal handling, background workers bound to the server context and
// graceful shutdown of all enabled transports.
package server
