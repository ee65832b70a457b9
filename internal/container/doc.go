// Package container provides the service registry the kernel constructs on
// every boot.
//
// The kernel treats a Container as an opaque handle: it only needs to be able
// to construct one through a Factory. Populating it is the job of modules,
// which register services during their build step and resolve the services
// registered by modules built before them.
package container
