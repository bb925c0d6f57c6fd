// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Environment variables use the TASKIFY_ prefix with dots replaced by
// underscores, e.g. TASKIFY_SERVER_PORT or TASKIFY_DATABASE_URI. The plain
// PORT variable is honoured as a fallback for the listen port.
package config
