/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package store

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	dserrors "github.com/suparena/dynasim/errors"
	"github.com/suparena/dynasim/storagemodels"
)

// Item is a stored item: attribute name to scalar attribute value. Only the
// scalar members S, N, BOOL and NULL are admitted; the dispatcher rejects
// anything else before it reaches the store.
type Item = map[string]types.AttributeValue

// KeySchema names the key attributes of a table. SortKey is optional.
type KeySchema struct {
	PartitionKey string `json:"partitionKey" yaml:"partition_key"`
	SortKey      string `json:"sortKey,omitempty" yaml:"sort_key,omitempty"`
}

// TableDescription is the read-only view of a table returned by describe
// operations.
type TableDescription struct {
	Name        string            `json:"name"`
	KeySchema   KeySchema         `json:"keySchema"`
	BillingMode types.BillingMode `json:"billingMode"`
	ItemCount   int               `json:"itemCount"`
	CreatedAt   strfmt.DateTime   `json:"createdAt"`
}

// table owns one table's definition, items and stream event log. All of it is
// guarded by a single mutex so that a read-modify-write update and its stream
// event are applied atomically.
type table struct {
	mu          sync.Mutex
	name        string
	keySchema   KeySchema
	billingMode types.BillingMode
	createdAt   time.Time
	items       map[string]Item
	order       []string // key insertion order; scans iterate in this order
	events      []*storagemodels.StreamEvent
}

func newTable(name string, schema KeySchema, billing types.BillingMode) *table {
	return &table{
		name:        name,
		keySchema:   schema,
		billingMode: billing,
		createdAt:   time.Now(),
		items:       make(map[string]Item),
	}
}

func (t *table) description() *TableDescription {
	return &TableDescription{
		Name:        t.name,
		KeySchema:   t.keySchema,
		BillingMode: t.billingMode,
		ItemCount:   len(t.items),
		CreatedAt:   strfmt.DateTime(t.createdAt),
	}
}

// keyString computes the store's lookup identity for an item: the encoded
// partition key value, plus the sort key value when the schema has one.
// Returns MissingKeyError if the item omits a key attribute.
func (t *table) keyString(item Item) (string, error) {
	pk, ok := item[t.keySchema.PartitionKey]
	if !ok {
		return "", dserrors.NewMissingKeyError(t.name, t.keySchema.PartitionKey)
	}
	key := encodeKeyPart(pk)
	if t.keySchema.SortKey != "" {
		sk, ok := item[t.keySchema.SortKey]
		if !ok {
			return "", dserrors.NewMissingKeyError(t.name, t.keySchema.SortKey)
		}
		key += "|" + encodeKeyPart(sk)
	}
	return key, nil
}

// keyProjection extracts the key attributes of an item into a fresh map.
func (t *table) keyProjection(item Item) Item {
	keys := Item{t.keySchema.PartitionKey: item[t.keySchema.PartitionKey]}
	if t.keySchema.SortKey != "" {
		if sk, ok := item[t.keySchema.SortKey]; ok {
			keys[t.keySchema.SortKey] = sk
		}
	}
	return keys
}

func (t *table) removeFromOrder(key string) {
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

// encodeKeyPart renders a scalar attribute value as a collision-free key
// segment. The kind prefix keeps the string "1" and the number 1 distinct;
// string segments are length-prefixed so a value containing the "|" joiner
// cannot collide with a neighboring segment. Numbers are normalized to their
// canonical rendering so 1 and 1.0 share one identity.
func encodeKeyPart(v types.AttributeValue) string {
	switch tv := v.(type) {
	case *types.AttributeValueMemberS:
		return fmt.Sprintf("S:%d:%s", len(tv.Value), tv.Value)
	case *types.AttributeValueMemberN:
		return "N:" + normalizeNumber(tv.Value)
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("B:%v", tv.Value)
	case *types.AttributeValueMemberNULL:
		return "NULL"
	}
	return fmt.Sprintf("?:%v", v)
}

func normalizeNumber(literal string) string {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return literal
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// CloneItem returns a shallow copy of an item. Attribute values are immutable
// once stored, so sharing them between copies is safe.
func CloneItem(item Item) Item {
	if item == nil {
		return nil
	}
	clone := make(Item, len(item))
	for k, v := range item {
		clone[k] = v
	}
	return clone
}

// ItemSize approximates the encoded size of an item in bytes: attribute name
// length plus the rendered value length, the same accounting real DynamoDB
// bills capacity against.
func ItemSize(item Item) int {
	size := 0
	for name, value := range item {
		size += len(name)
		switch tv := value.(type) {
		case *types.AttributeValueMemberS:
			size += len(tv.Value)
		case *types.AttributeValueMemberN:
			size += len(tv.Value)
		case *types.AttributeValueMemberBOOL:
			size++
		case *types.AttributeValueMemberNULL:
			size++
		}
	}
	return size
}

// NormalizeBillingMode maps a caller-supplied billing mode string onto the
// DynamoDB enum. ON_DEMAND is accepted as an alias of PAY_PER_REQUEST, and an
// empty mode defaults to on-demand.
func NormalizeBillingMode(mode string) (types.BillingMode, error) {
	switch strings.ToUpper(strings.TrimSpace(mode)) {
	case "", "ON_DEMAND", "PAY_PER_REQUEST":
		return types.BillingModePayPerRequest, nil
	case "PROVISIONED":
		return types.BillingModeProvisioned, nil
	}
	return "", dserrors.NewInvalidParametersError("billing_mode",
		fmt.Sprintf("unknown billing mode %q (expected ON_DEMAND, PAY_PER_REQUEST or PROVISIONED)", mode))
}
