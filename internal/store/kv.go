package store

import "context"

// Item is the raw record shape of the secondary store: a flat field map keyed
// by the domain field names, with every value rendered as a string. Monetary
// amounts travel as string-convertible decimals (never floating point) and
// identity/foreign-key fields are strings regardless of the primary store's
// native ID type. The dual-backend repositories own the coercion between
// Items and typed entities.
type Item map[string]string

// ID returns the item's partition key, or "" when absent.
func (i Item) ID() string {
	return i["id"]
}

// KVStore is the secondary-store (key-value) interface, one instance per
// entity table. The secondary store is advisory, not authoritative, and that
// shapes the whole contract: no method returns an error. Every operation
// degrades to a logged no-op or empty result on any fault — timeout, auth,
// throttling, malformed data — so callers only ever observe "success" or
// "treat as absent/empty".
type KVStore interface {
	// GetByID looks an item up by partition key. The second return is false
	// when the item is absent or the store is unreachable; the two cases are
	// deliberately indistinguishable.
	GetByID(ctx context.Context, id string) (Item, bool)

	// ScanAll reads the entire table. Expensive (no pushdown filtering);
	// used only for total-count fallback paths and small entity types.
	// The bool is false when the store faulted mid-scan, so callers can
	// tell "empty table" from "unreachable store" and fall back accordingly.
	ScanAll(ctx context.Context) ([]Item, bool)

	// GetPage reads up to limit items starting after the continuation key
	// (nil for the first page). The returned key is nil when the scan is
	// exhausted; the bool is false on a store fault. The store cannot
	// compute total counts cheaply, so this method never does.
	GetPage(ctx context.Context, limit int, start *ContinuationKey) ([]Item, *ContinuationKey, bool)

	// Put upserts an item by partition key, converting numeric fields to the
	// store's arbitrary-precision representation. Returns false on any
	// failure; never raises.
	Put(ctx context.Context, item Item) bool

	// ScanByAttribute returns items whose named attribute equals value.
	// This is a full-table scan filtered client side — O(table size) — and
	// is acceptable only at current data volumes. A query index is the
	// upgrade path if order history outgrows it. The bool is false on a
	// store fault.
	ScanByAttribute(ctx context.Context, name, value string) ([]Item, bool)
}
