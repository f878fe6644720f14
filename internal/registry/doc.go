// Package registry provides the static table of renderer kinds compiled
// into the binary.
//
// Renderer adapters register a constructor for their kind through a Module.
// At startup the application registers every module and then instantiates
// the renderers declared in the configuration from this table, so that the
// kinds a configuration may use are known without any runtime discovery.
package registry
