// Package yaml_adapter loads evaluation configurations written in YAML.
//
// Mappings are decoded as yaml.MapSlice so that renderers, parameter sets
// and parameter groups keep the order in which they were declared, and so
// that duplicated names survive decoding and can be reported later.
package yaml_adapter
