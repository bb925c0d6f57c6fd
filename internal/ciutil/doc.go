// Package ciutil detects CI environments and resolves the settings that
// integration tests read from the environment, such as the MongoDB URI.
package ciutil
