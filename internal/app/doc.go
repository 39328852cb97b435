// Package app is the composition root. It turns a validated config into a
// todos client, a state store and a controller, then hands the controller
// to the UI. The headless CLI commands reuse Build so they exercise the
// same request path as the TUI.
package app
