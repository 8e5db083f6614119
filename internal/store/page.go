package store

// Page is the single pagination contract exposed to callers, regardless of
// which backing store produced it. The two stores support fundamentally
// different pagination primitives (offset vs. cursor), so only the fields a
// protocol can honestly populate are set:
//
//   - Offset protocol (primary store): TotalCount is set, NextToken is empty,
//     HasNext/HasPrev derive from page arithmetic.
//   - Cursor protocol (secondary store): TotalCount is nil — the store cannot
//     count cheaply and a fabricated total would be worse than none — and
//     HasNext is true iff the store returned a continuation key, re-encoded
//     into NextToken.
type Page[T any] struct {
	Items    []T
	Page     int // 1-indexed; 0 under the cursor protocol
	PageSize int

	// TotalCount is the number of entities across all pages, when the backing
	// store can compute it. Nil means unknown, not zero.
	TotalCount *int

	HasNext bool
	HasPrev bool

	// NextToken is the opaque cursor for the next page under the cursor
	// protocol. Callers must round-trip it verbatim and never inspect it.
	NextToken string
}

// EmptyPage returns a well-formed zero-item page for the given position.
// Used by the primary adapter's fail-closed pagination path.
func EmptyPage[T any](page, pageSize int) *Page[T] {
	zero := 0
	return &Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		TotalCount: &zero,
	}
}

// ContinuationKey is the secondary store's position marker: the partition key
// of the last item evaluated. The stores here are keyed by partition key only,
// so a single ID is sufficient to resume a scan.
type ContinuationKey struct {
	ID string `json:"id" dynamodbav:"id"`
}

// SyncStatus describes the outcome of a best-effort secondary-store write.
type SyncStatus string

const (
	// SyncOK means the entity was mirrored to the secondary store.
	SyncOK SyncStatus = "synced"

	// SyncSkipped means no mirror was attempted (e.g. the primary write failed
	// first, or no secondary store is configured).
	SyncSkipped SyncStatus = "skipped"

	// SyncFailed means the mirror write failed and the stores have diverged
	// until the next successful sync. The primary write still stands.
	SyncFailed SyncStatus = "failed"
)

// ReplicaSync reports what happened to the secondary-store mirror of a
// write-through operation. It is deliberately a separate value from the
// primary write result: the primary store is the system of record and its
// result is authoritative, while this is advisory.
type ReplicaSync struct {
	Status SyncStatus
}

// Synced reports whether the replica write went through.
func (r ReplicaSync) Synced() bool {
	return r.Status == SyncOK
}
