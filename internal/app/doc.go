// Package app is the concrete application built on the kernel. It decides
// which modules are compiled in for an environment, how the process is
// configured, and how requests and failures are turned into responses,
// decoupled from any specific entrypoint like a CLI or server.
package app
