// Package config handles application configuration loading and validation.
//
// Configuration is read from config.yml, overlaid with environment
// variables (a local .env file is honoured), and validated using struct
// tags. Every field has a default so the tool can run without a config
// file given a data directory.
package config
