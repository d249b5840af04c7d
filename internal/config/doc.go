// Package config loads, normalizes, and validates ytscript configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a .env file from the working directory,
// and honours YTSCRIPT_* environment overrides. Language preferences are
// canonicalized here so downstream code receives BCP 47 tags in a stable form.
//
// Always obtain settings through this package so the CLI and the extraction
// workflow see the same sanitized values and clear validation errors.
package config
