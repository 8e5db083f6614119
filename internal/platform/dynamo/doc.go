// Package dynamo implements the secondary-store interface from the store
// package on top of DynamoDB. The secondary store is a best-effort replica,
// not a system of record, and the implementation enforces that posture at
// the boundary: every operation catches its own failures — connectivity,
// throttling, auth, malformed data — logs them, and degrades to an empty
// result or a false return. No error ever propagates to a caller.
//
// Tables are addressed by partition key ("id") only. Pagination is native
// cursor pagination via Limit + ExclusiveStartKey; total counts are never
// computed because the store cannot do so cheaply.
package dynamo
