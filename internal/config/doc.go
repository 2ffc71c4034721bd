// Package config loads, normalizes, and validates cstag configuration data.
//
// It supplies defaults (a 5-gram model over a 26-letter alphabet, the Eng/Spn
// tag pair and its alias table), expands user paths including tilde
// shortcuts, and reads TOML files over those defaults. Library packages never
// import config; the facade converts a Config into the per-package settings
// structs.
package config
