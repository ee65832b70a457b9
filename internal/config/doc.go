// Package config defines the format-agnostic configuration model the kernel
// loads during boot, and the Loader contract format-specific readers satisfy.
//
// A configuration artifact is identified by a directory, an environment and
// a file extension: the kernel asks for "<dir>/config_<environment><ext>" and
// stores whatever Model the loader returns. The Model keeps values as
// cty.Value so that modules can decode them into their own Go types with the
// same conversion rules regardless of whether the artifact was HCL, YAML or
// TOML.
package config
