// Package httpserver exposes a kernel over HTTP. Every route except the
// health check becomes a master request handed to Kernel.Serve.
package httpserver
