package dynamo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// Table implements store.KVStore for one DynamoDB table keyed by "id".
// Per-table attribute typing decides which item fields are written as the
// store's arbitrary-precision number type or as booleans; everything else,
// ids and foreign keys included, is a string.
type Table struct {
	client  API
	name    string
	numeric map[string]bool
	boolean map[string]bool
}

// NewBooksTable returns the secondary-store adapter for the books table.
func NewBooksTable(client API, name string) *Table {
	return &Table{
		client:  client,
		name:    name,
		numeric: map[string]bool{"price": true, "stock": true},
	}
}

// NewOrdersTable returns the secondary-store adapter for the orders table.
func NewOrdersTable(client API, name string) *Table {
	return &Table{
		client:  client,
		name:    name,
		numeric: map[string]bool{"quantity": true, "totalPrice": true},
	}
}

// NewUsersTable returns the secondary-store adapter for the users table.
// isValidated is persisted here as well as in the primary store, so a
// fallback read never silently flips an account back to unvalidated.
func NewUsersTable(client API, name string) *Table {
	return &Table{
		client:  client,
		name:    name,
		boolean: map[string]bool{"isValidated": true},
	}
}

// Ensure Table implements store.KVStore.
var _ store.KVStore = (*Table)(nil)

// GetByID implements store.KVStore.GetByID
// Lookup by partition key; absence and failure are indistinguishable.
func (t *Table) GetByID(ctx context.Context, id string) (store.Item, bool) {
	key, err := attributevalue.MarshalMap(store.ContinuationKey{ID: id})
	if err != nil {
		t.logFault(ctx, "get_item", err)
		return nil, false
	}

	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.name),
		Key:       key,
	})
	if err != nil {
		t.logFault(ctx, "get_item", err)
		return nil, false
	}
	if out.Item == nil {
		return nil, false
	}

	return t.toItem(out.Item), true
}

// ScanAll implements store.KVStore.ScanAll
// Full scan, following pagination until exhaustion. Expensive; callers know.
func (t *Table) ScanAll(ctx context.Context) ([]store.Item, bool) {
	var items []store.Item
	var start map[string]types.AttributeValue

	for {
		out, err := t.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(t.name),
			ExclusiveStartKey: start,
		})
		if err != nil {
			t.logFault(ctx, "scan", err)
			return nil, false
		}

		for _, raw := range out.Items {
			items = append(items, t.toItem(raw))
		}

		if out.LastEvaluatedKey == nil {
			return items, true
		}
		start = out.LastEvaluatedKey
	}
}

// GetPage implements store.KVStore.GetPage
// Native cursor pagination. The returned continuation key is nil when the
// scan is exhausted; totals are never computed.
func (t *Table) GetPage(ctx context.Context, limit int, start *store.ContinuationKey) ([]store.Item, *store.ContinuationKey, bool) {
	if limit < 1 {
		limit = 10
	}

	input := &dynamodb.ScanInput{
		TableName: aws.String(t.name),
		Limit:     aws.Int32(int32(limit)), //nolint:gosec // limit is clamped well below MaxInt32
	}

	if start != nil && start.ID != "" {
		key, err := attributevalue.MarshalMap(start)
		if err != nil {
			t.logFault(ctx, "get_page", err)
			return nil, nil, false
		}
		input.ExclusiveStartKey = key
	}

	out, err := t.client.Scan(ctx, input)
	if err != nil {
		t.logFault(ctx, "get_page", err)
		return nil, nil, false
	}

	items := make([]store.Item, 0, len(out.Items))
	for _, raw := range out.Items {
		items = append(items, t.toItem(raw))
	}

	var next *store.ContinuationKey
	if out.LastEvaluatedKey != nil {
		// A continuation key that cannot be re-issued would end pagination
		// early and drop every page past this one. Report a fault instead
		// so callers switch to primary-store pagination.
		var key store.ContinuationKey
		if err := attributevalue.UnmarshalMap(out.LastEvaluatedKey, &key); err != nil {
			t.logFault(ctx, "get_page", err)
			return nil, nil, false
		}
		if key.ID == "" {
			t.logFault(ctx, "get_page", errContinuationKey)
			return nil, nil, false
		}
		next = &key
	}

	return items, next, true
}

// Put implements store.KVStore.Put
// Upsert by partition key. Returns false — never an error — on any failure,
// including items whose numeric fields do not parse.
func (t *Table) Put(ctx context.Context, item store.Item) bool {
	if item.ID() == "" {
		logger.FromContext(ctx).Warn("dynamo put rejected: item has no id",
			slog.String("table", t.name))
		return false
	}

	raw, err := t.fromItem(item)
	if err != nil {
		t.logFault(ctx, "put_item", err)
		return false
	}

	if _, err := t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.name),
		Item:      raw,
	}); err != nil {
		t.logFault(ctx, "put_item", err)
		return false
	}

	return true
}

// ScanByAttribute implements store.KVStore.ScanByAttribute
// A filtered full scan: the filter is applied after items are read, so the
// cost is O(table size) regardless of how many items match. Acceptable only
// at current data volumes; a query index is the upgrade path.
func (t *Table) ScanByAttribute(ctx context.Context, name, value string) ([]store.Item, bool) {
	var items []store.Item
	var start map[string]types.AttributeValue

	for {
		out, err := t.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                aws.String(t.name),
			FilterExpression:         aws.String("#attr = :val"),
			ExpressionAttributeNames: map[string]string{"#attr": name},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":val": &types.AttributeValueMemberS{Value: value},
			},
			ExclusiveStartKey: start,
		})
		if err != nil {
			t.logFault(ctx, "scan_by_attribute", err)
			return nil, false
		}

		for _, raw := range out.Items {
			items = append(items, t.toItem(raw))
		}

		if out.LastEvaluatedKey == nil {
			return items, true
		}
		start = out.LastEvaluatedKey
	}
}

var errContinuationKey = errors.New("continuation key has no usable id")

func (t *Table) logFault(ctx context.Context, operation string, err error) {
	logger.FromContext(ctx).Warn("secondary store operation degraded",
		slog.String("table", t.name),
		slog.String("operation", operation),
		slog.String("error", err.Error()))
}
