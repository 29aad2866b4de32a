// Package config loads, normalizes, and validates subtran configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SUBTRAN_API_KEY. Configuration is resolved from an explicit --config path,
// then ~/.config/subtran/config.toml, then ./subtran.toml; a missing file
// falls back to defaults so the tool runs without any configuration at all.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language codes, and clear validation errors.
package config
