/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package store

import (
	"github.com/suparena/dynasim/storagemodels"
)

// BatchItemResult is the independent outcome of one item within a batch
// operation. Err is set when that item failed; the batch itself continues.
type BatchItemResult struct {
	Index    int
	Err      error
	Replaced bool
	Found    bool
	Item     Item
	Event    *storagemodels.StreamEvent
}

// BatchWriteResult aggregates per-item put outcomes.
type BatchWriteResult struct {
	Results   []BatchItemResult
	Written   int
	SizeBytes int
}

// BatchWriteItem applies put semantics to each item. A failure on one item
// (for example a missing key attribute) is reported in that item's result and
// does not abort the rest; only a bad table name fails the whole call. The
// batch holds the table lock once, so its stream events are contiguous.
func (s *Store) BatchWriteItem(name string, items []Item) (*BatchWriteResult, error) {
	t, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	result := &BatchWriteResult{Results: make([]BatchItemResult, len(items))}
	for i, item := range items {
		result.Results[i].Index = i
		put, err := s.putLocked(t, item)
		if err != nil {
			result.Results[i].Err = err
			continue
		}
		result.Results[i].Replaced = put.Replaced
		result.Results[i].Item = put.Item
		result.Results[i].Event = put.Event
		result.Written++
		result.SizeBytes += put.SizeBytes
	}
	return result, nil
}

// BatchGetResult aggregates per-key get outcomes.
type BatchGetResult struct {
	Results   []BatchItemResult
	Found     int
	SizeBytes int
}

// BatchGetItem applies get semantics to each key. Absent items are reported
// per key as not found, which is a successful outcome.
func (s *Store) BatchGetItem(name string, keys []Item) (*BatchGetResult, error) {
	t, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	result := &BatchGetResult{Results: make([]BatchItemResult, len(keys))}
	for i, key := range keys {
		result.Results[i].Index = i
		item, err := s.getLocked(t, key)
		if err != nil {
			result.Results[i].Err = err
			continue
		}
		if item != nil {
			result.Results[i].Found = true
			result.Results[i].Item = item
			result.Found++
			result.SizeBytes += ItemSize(item)
		}
	}
	return result, nil
}
