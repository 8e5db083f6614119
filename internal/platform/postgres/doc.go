// Package postgres implements the primary-store interfaces from the store
// package using a PostgreSQL database. The primary store is the system of
// record: it assigns identity, enforces uniqueness, and is strongly
// consistent. Pagination here is offset-based and 1-indexed, with real total
// counts; when the database is unreachable, paginated reads fail closed to an
// empty page so the repository fallback contract holds.
package postgres
