// Package mongodb implements the store interfaces on top of MongoDB using the
// official Go driver. Each task is a single document in the "tasks" collection
// and relies on MongoDB's per-document atomicity.
package mongodb
