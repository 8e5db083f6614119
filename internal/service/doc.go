// Package service contains the application's use cases, composed from the
// dual-backend repositories, the primary-store transaction helper, and the
// notification port. Services define the narrow interfaces they consume, so
// tests can substitute in-memory fakes without touching either backend.
package service
