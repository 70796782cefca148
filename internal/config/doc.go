// Package config loads, normalizes, and validates museo configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a working-directory .env file, and
// honours environment fallbacks such as MUSEO_API_URL and MUSEO_TOKEN. The
// Config type centralizes the backend location, token storage, and logging
// knobs so the CLI discovers everything in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized URLs, expanded paths, and clear validation errors.
package config
