// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying document store from the
// application's core logic, so business rules stay independent of the
// driver or the shape of stored documents.
package store
