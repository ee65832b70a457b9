// Package hcl provides the HCL implementation of config.Loader, the default
// configuration format of the kernel.
//
// An artifact is a flat list of attributes. Each attribute expression is
// evaluated once at load time with a small evaluation context: the variable
// `environment` holds the environment being booted and the function
// `env(name, [default])` reads process environment variables.
//
//	greeting = "Hello from ${environment}!"
//	database = {
//	  host = env("DB_HOST", "localhost")
//	  port = 5432
//	}
package hcl
