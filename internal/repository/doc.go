// Package repository composes the two persistence backends into one surface.
//
// Each repository pairs an authoritative primary store (relational, strongly
// consistent, assigns identity) with a best-effort secondary replica
// (key-value, eventually consistent). The composition rules are uniform
// across entities:
//
//   - Reads prefer the replica and fall back to the primary transparently.
//     A replica fault is never visible to callers as an error.
//   - Creates go to the primary first; only a successfully persisted entity
//     is mirrored to the replica, and a failed mirror degrades to a logged
//     ReplicaSync result rather than failing the operation.
//   - Updates go to the primary only. The replica is allowed to go stale on
//     mutation; the next create refreshes the mirrored row.
//
// Pagination follows two protocols. Books and orders use the replica's
// native cursor pagination (opaque continuation tokens, no total count).
// Users are small enough to paginate by slicing a full replica scan, which
// preserves offset semantics including a real total count.
package repository
