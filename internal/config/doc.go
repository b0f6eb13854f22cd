// Package config provides configuration loading and validation for the
// payment gateway. Configuration is read from a YAML file, selected
// environment variables override file values, and an fsnotify-based watcher
// supports hot reload of cache TTL policy.
package config
