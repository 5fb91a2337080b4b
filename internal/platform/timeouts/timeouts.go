// Package timeouts defines shared timeout constants for the HTTP surface and
// storage calls.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Request caps the time a single page or form handler may spend on storage.
const Request = 10 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Idle limits how long keep-alive connections stay open between requests.
const Idle = 60 * time.Second
