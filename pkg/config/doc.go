// Package config handles configuration management for promptfill.
// It merges the embedded defaults, the user's config file, an explicit
// config file and PROMPTFILL_ environment variables, in that order.
package config
