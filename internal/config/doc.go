// Package config loads and validates application configuration from
// environment variables. All settings are read once at startup; adapters
// receive their configuration at construction time and never consult the
// environment afterwards.
package config
