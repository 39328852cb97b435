// Package config loads todoterm's TOML settings.
//
// # Resolution
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/todoterm/config.toml
//  3. If the file doesn't exist, fall back to built-in defaults
//  4. Fields that are missing or blank keep their defaults
//
// Command-line flags are applied on top of the loaded Config by the caller,
// then Validate checks the result.
//
// # Format
//
//	api_url = "http://127.0.0.1:3005"
//	user_id = 1
//	request_timeout = "5s"
//	error_timeout = "3s"
//	log_file = "~/.local/state/todoterm/todoterm.log"
//
// Durations use time.ParseDuration syntax. Tilde expansion is applied to
// log_file and to the config path itself.
//
// # Errors
//
// Load fails on unreadable files, TOML syntax errors and malformed durations.
// Validate returns criterio.FieldErrors naming every bad field, so a user
// with several mistakes sees all of them in one run.
package config
