// Package service contains the application-specific use cases for tasks.
// It sits between the HTTP handlers in internal/api and the persistence
// interfaces in internal/store, applying domain validation and defaults
// before anything reaches storage.
//
// Error handling:
//   - Validation failures are returned unwrapped so callers can match
//     domain.ErrValidation directly.
//   - Storage failures are wrapped in a *TaskServiceError that keeps the
//     underlying store error reachable through errors.Is and errors.As.
package service
