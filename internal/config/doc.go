// Package config loads, normalizes, and validates RoostaBoosta configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// WEATHER_API_KEY. The Config type centralizes every knob the daemon and CLI
// need, so the serial bridge device, sound directory, and weather credentials
// are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
