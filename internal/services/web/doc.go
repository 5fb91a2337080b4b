// Package web hosts the invoicing dashboard HTTP server.
//
// The server resolves the session cookie into a viewer, composes public and
// protected modules behind the session gate, and wraps the result with
// request ids, panic recovery, request logging and a per-request timeout.
package web
