package ciutil

import (
	"log/slog"
)

// DefaultCIMongoURI is where CI pipelines run their MongoDB service container.
const DefaultCIMongoURI = "mongodb://localhost:27017"

// GetTestMongoURI returns the MongoDB URI integration tests should use.
// It checks TASKIFY_TEST_MONGO_URI, then TASKIFY_DATABASE_URI. In CI it
// falls back to DefaultCIMongoURI; elsewhere it returns "" so tests skip.
func GetTestMongoURI(logger *slog.Logger) string {
	fallback := ""
	if IsCI() {
		fallback = DefaultCIMongoURI
	}

	uri := GetEnvWithFallbacks([]string{EnvTestMongoURI, EnvDatabaseURI}, fallback, logger)
	if logger != nil {
		if uri == "" {
			logger.Info("no test MongoDB URI configured")
		} else {
			logger.Info("using test MongoDB URI", "value", MaskSensitiveValue(uri))
		}
	}
	return uri
}
