package dynamo

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// toItem flattens a DynamoDB attribute map into the store's raw item shape.
// Numbers keep their exact decimal string form, booleans become "true"/
// "false", and unsupported attribute types are dropped rather than guessed
// at — a malformed item must degrade, not error.
func (t *Table) toItem(raw map[string]types.AttributeValue) store.Item {
	item := make(store.Item, len(raw))
	for name, av := range raw {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			item[name] = v.Value
		case *types.AttributeValueMemberN:
			item[name] = v.Value
		case *types.AttributeValueMemberBOOL:
			item[name] = strconv.FormatBool(v.Value)
		}
	}
	return item
}

// fromItem types a raw item for the wire. Fields declared numeric for this
// table are validated as decimals and written as the store's
// arbitrary-precision number type; declared booleans as BOOL; everything
// else — ids and foreign keys included — as strings.
func (t *Table) fromItem(item store.Item) (map[string]types.AttributeValue, error) {
	raw := make(map[string]types.AttributeValue, len(item))
	for name, value := range item {
		switch {
		case t.numeric[name]:
			d, err := decimal.NewFromString(value)
			if err != nil {
				return nil, fmt.Errorf("attribute %q is not a valid decimal: %w", name, err)
			}
			raw[name] = &types.AttributeValueMemberN{Value: d.String()}
		case t.boolean[name]:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("attribute %q is not a valid boolean: %w", name, err)
			}
			raw[name] = &types.AttributeValueMemberBOOL{Value: b}
		default:
			raw[name] = &types.AttributeValueMemberS{Value: value}
		}
	}
	return raw, nil
}
