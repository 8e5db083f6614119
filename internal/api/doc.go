// Package api contains the HTTP handlers, request/response models, and
// error mapping for the public REST surface. Routing uses chi; handlers
// consume narrow service interfaces so tests can run against fakes.
package api
