// Package config layers read-only configuration stores.
// Values from different sources (TOML file, environment, flags) arrive with
// different dynamic types; the conversion helpers here give every store the
// same typed accessors.
//
// Subpackages:
//   - file: TOML configuration file
//   - env: process environment and .env files
//   - memory: in-memory values, used for command line overrides
package config
