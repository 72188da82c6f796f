// Package config loads, normalizes, and validates discfolio configuration.
//
// It supplies defaults for every section, reads a TOML file when one exists,
// and honours environment overrides such as PORT and DISCFOLIO_CONTENT_URL so
// the binary can run on a platform that injects its listen port. The Config
// type gathers every knob the server, the terminal player and the frame
// renderer need.
//
// Always obtain settings through this package so downstream code receives
// trimmed URLs, canonical log formats, and clear validation errors.
package config
