// Package file loads and persists the application configuration as a
// TOML file under the workmirror config directory.
package file
