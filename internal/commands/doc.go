// Package commands holds the todoterm CLI commands. Each command registers
// itself on the root cli.Command and reads the shared Flags, whose Config is
// populated by the root Before hook.
package commands
