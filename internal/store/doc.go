// Package store defines interfaces for data persistence operations.
// These interfaces abstract the two storage backends — the relational
// primary store (system of record) and the key-value secondary store
// (best-effort replica) — from the application's core logic, allowing
// the dual-backend repositories to remain independent of specific
// database technologies.
package store
