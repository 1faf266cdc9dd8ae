// Package config loads, normalizes, and validates seekr configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SEEKR_MUSIC_DIR and SEEKR_LIBRARY_PATH. The Config type centralizes every
// knob the CLI needs: where the music collection and DJ library live, where
// reports go, the matching threshold, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
