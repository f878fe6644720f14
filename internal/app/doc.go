// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the evaluation lifecycle: loading and
// validating a configuration, rendering every scene-case and summarizing
// the outcome. It is decoupled from any specific entrypoint like a CLI.
package app
