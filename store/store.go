/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package store

import (
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	streamtypes "github.com/aws/aws-sdk-go-v2/service/dynamodbstreams/types"

	dserrors "github.com/suparena/dynasim/errors"
	"github.com/suparena/dynasim/expression"
	"github.com/suparena/dynasim/storagemodels"
)

// Store owns all table definitions and item data for one simulation. Tables
// are independent: each carries its own lock, so cross-table operations need
// no coordination. Construct one Store per simulation; there is no ambient
// global state.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*table

	// seqMu guards sequences, the per-table-name stream sequence counters.
	// Counters are keyed by name rather than held on the table so they
	// survive table deletion and recreation within the process.
	seqMu     sync.Mutex
	sequences map[string]int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		tables:    make(map[string]*table),
		sequences: make(map[string]int64),
	}
}

// CreateTable registers a new table. The key schema must name a partition
// key; the table name must be unused.
func (s *Store) CreateTable(name string, schema KeySchema, billing types.BillingMode) (*TableDescription, error) {
	if schema.PartitionKey == "" {
		return nil, dserrors.NewInvalidSchemaError("partition key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tables[name]; exists {
		return nil, dserrors.NewAlreadyExistsError("table", name)
	}
	t := newTable(name, schema, billing)
	s.tables[name] = t
	return t.description(), nil
}

// DescribeTable returns the table's schema, billing mode and item count.
func (s *Store) DescribeTable(name string) (*TableDescription, error) {
	t, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.description(), nil
}

// DeleteTable removes a table and all its data. The table's stream sequence
// counter is retained so a recreated table continues numbering where the old
// one stopped.
func (s *Store) DeleteTable(name string) (*TableDescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, exists := s.tables[name]
	if !exists {
		return nil, dserrors.NewNotFoundError("table", name)
	}
	t.mu.Lock()
	desc := t.description()
	t.mu.Unlock()
	delete(s.tables, name)
	return desc, nil
}

// TableNames returns the names of all tables, in no particular order.
func (s *Store) TableNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	return names
}

// PutResult reports the outcome of a put: whether an existing item was
// replaced, and the synthesized stream event.
type PutResult struct {
	Replaced  bool
	Item      Item
	SizeBytes int
	Event     *storagemodels.StreamEvent
}

// PutItem stores an item, overwriting any item with the same key. The item
// must carry values for every key-schema attribute.
func (s *Store) PutItem(name string, item Item) (*PutResult, error) {
	t, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return s.putLocked(t, item)
}

func (s *Store) putLocked(t *table, item Item) (*PutResult, error) {
	key, err := t.keyString(item)
	if err != nil {
		return nil, err
	}
	stored := CloneItem(item)
	old, existed := t.items[key]
	t.items[key] = stored
	if !existed {
		t.order = append(t.order, key)
	}

	kind := streamtypes.OperationTypeInsert
	if existed {
		kind = streamtypes.OperationTypeModify
	}
	event := s.appendEventLocked(t, kind, t.keyProjection(stored), old, stored)

	return &PutResult{
		Replaced:  existed,
		Item:      stored,
		SizeBytes: ItemSize(stored),
		Event:     event,
	}, nil
}

// GetItem returns the item at key, or nil if no item exists. Absence is a
// successful result, not an error.
func (s *Store) GetItem(name string, key Item) (Item, error) {
	t, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return s.getLocked(t, key)
}

func (s *Store) getLocked(t *table, key Item) (Item, error) {
	keyStr, err := t.keyString(key)
	if err != nil {
		return nil, err
	}
	item, ok := t.items[keyStr]
	if !ok {
		return nil, nil
	}
	return CloneItem(item), nil
}

// UpdateResult reports the outcome of an update: the resulting item, whether
// the update created the item (upsert), and the synthesized stream event.
type UpdateResult struct {
	Created   bool
	Item      Item
	SizeBytes int
	Event     *storagemodels.StreamEvent
}

// UpdateItem applies a SET/REMOVE update expression to the item at key. If no
// item exists, the update creates one holding exactly the key attributes plus
// the attributes the expression sets. Key attributes cannot be modified.
func (s *Store) UpdateItem(name string, key Item, updateExpr string, values map[string]types.AttributeValue) (*UpdateResult, error) {
	expr, err := expression.ParseUpdate(updateExpr)
	if err != nil {
		return nil, err
	}
	t, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	keyStr, err := t.keyString(key)
	if err != nil {
		return nil, err
	}

	old, existed := t.items[keyStr]
	base := old
	if !existed {
		base = t.keyProjection(key)
	}
	updated, err := expression.ApplyUpdate(expr, base, values)
	if err != nil {
		return nil, err
	}

	// The updated item must still live at the same key.
	newKeyStr, err := t.keyString(updated)
	if err != nil || newKeyStr != keyStr {
		return nil, dserrors.NewInvalidExpressionError(updateExpr, "update expression cannot modify key attributes")
	}

	t.items[keyStr] = updated
	if !existed {
		t.order = append(t.order, keyStr)
	}

	kind := streamtypes.OperationTypeModify
	if !existed {
		kind = streamtypes.OperationTypeInsert
	}
	event := s.appendEventLocked(t, kind, t.keyProjection(updated), old, updated)

	return &UpdateResult{
		Created:   !existed,
		Item:      CloneItem(updated),
		SizeBytes: ItemSize(updated),
		Event:     event,
	}, nil
}

// DeleteResult reports the outcome of a delete: whether an item actually
// existed, and the synthesized stream event (nil when nothing was deleted).
type DeleteResult struct {
	Existed   bool
	OldItem   Item
	SizeBytes int
	Event     *storagemodels.StreamEvent
}

// DeleteItem removes the item at key. Deleting an absent key succeeds with
// zero effect and emits no stream event.
func (s *Store) DeleteItem(name string, key Item) (*DeleteResult, error) {
	t, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	keyStr, err := t.keyString(key)
	if err != nil {
		return nil, err
	}
	old, existed := t.items[keyStr]
	if !existed {
		return &DeleteResult{}, nil
	}
	delete(t.items, keyStr)
	t.removeFromOrder(keyStr)

	event := s.appendEventLocked(t, streamtypes.OperationTypeRemove, t.keyProjection(old), old, nil)

	return &DeleteResult{
		Existed:   true,
		OldItem:   CloneItem(old),
		SizeBytes: ItemSize(old),
		Event:     event,
	}, nil
}

func (s *Store) lookup(name string) (*table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[name]
	if !ok {
		return nil, dserrors.NewNotFoundError("table", name)
	}
	return t, nil
}
