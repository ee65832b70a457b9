// Package kernel implements the boot lifecycle of the application runtime.
//
// A Kernel moves through a small state machine:
//
//	Unbooted --Boot--> Booting --ok--> Booted
//	                      |
//	                      +--error--> Failed --safe retry--> Unbooted (error returned)
//
// Boot runs three steps in a fixed order: load the environment's
// configuration artifact, construct a fresh container, then build every
// registered module in registration order. Boot is idempotent once it has
// succeeded. When a step fails, the kernel enters safe mode and retries the
// sequence exactly once, building only the modules that opted into safe mode,
// and then reports the original failure to the caller.
//
// Serve is the request entry point. It boots lazily and converts any failure
// while processing a request into an error response; it never returns an
// error and never panics.
package kernel
