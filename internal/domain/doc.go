// Package domain defines the Task entity, its enumerations and the
// validation errors shared by every layer above it. It has no knowledge of
// HTTP or MongoDB.
package domain
