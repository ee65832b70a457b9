// Package cli is the command-line surface of the kernel. It owns the cobra
// command tree, attaches the commands modules registered on the kernel
// console, and maps failures to process exit codes.
package cli
