// Package config handles configuration management for medialink.
// Values are layered from the embedded defaults, the user's config file,
// MEDIALINK_* environment variables and command-line flags, in that order.
package config
