// Package config defines the format-agnostic configuration model for an
// evaluation run, along with the Loader interface implemented by the
// concrete configuration formats.
//
// The `config.Model` is the single source of truth for the resolution engine
// and the application. Concrete implementations of the Loader interface, for
// HCL and YAML, are provided in separate packages.
package config
