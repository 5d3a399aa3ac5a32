/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package store

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dynasim/expression"
)

// QueryResult carries the matched items plus the classification facts the
// advisory analyzers need: whether the partition key was pinned, whether the
// sort key was constrained, and how many items share the pinned partition.
type QueryResult struct {
	Items              []Item
	ScannedCount       int
	SizeBytes          int
	PartitionPinned    bool
	SortKeyCondition   bool
	PartitionItemCount int
	FilterAttributes   []string
	KeySchema          KeySchema
}

// Query evaluates a key condition against a table. A condition that pins the
// partition key with an equality comparison examines only that partition; a
// condition that fails to pin it degrades to a full iteration (the optimizer
// flags this, the operation still succeeds). Sort-key conjuncts may use
// equality or range comparators. An optional filter expression narrows the
// matches after key evaluation.
func (s *Store) Query(name, keyCondition, filterExpr string, values map[string]types.AttributeValue) (*QueryResult, error) {
	cond, err := expression.ParseCondition(keyCondition)
	if err != nil {
		return nil, err
	}
	var filter expression.Condition
	if filterExpr != "" {
		if filter, err = expression.ParseCondition(filterExpr); err != nil {
			return nil, err
		}
	}

	t, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	result := &QueryResult{KeySchema: t.keySchema}
	if filter != nil {
		result.FilterAttributes = expression.ReferencedAttributes(filter)
	}

	var pinComparison *expression.Comparison
	for _, cmp := range expression.Conjuncts(cond) {
		if cmp.Attr == t.keySchema.PartitionKey && cmp.Op == expression.OpEQ {
			pinComparison = cmp
		}
		if t.keySchema.SortKey != "" && cmp.Attr == t.keySchema.SortKey {
			result.SortKeyCondition = true
		}
	}
	result.PartitionPinned = pinComparison != nil

	for _, keyStr := range t.order {
		item := t.items[keyStr]

		if pinComparison != nil {
			inPartition, err := expression.EvalCondition(pinComparison, item, values)
			if err != nil {
				return nil, err
			}
			if !inPartition {
				continue
			}
			result.PartitionItemCount++
		}
		result.ScannedCount++

		match, err := expression.EvalCondition(cond, item, values)
		if err != nil {
			return nil, err
		}
		if !match {
			continue
		}
		if filter != nil {
			keep, err := expression.EvalCondition(filter, item, values)
			if err != nil {
				return nil, err
			}
			if !keep {
				continue
			}
		}
		result.Items = append(result.Items, CloneItem(item))
		result.SizeBytes += ItemSize(item)
	}
	return result, nil
}

// ScanResult carries the items a scan returned and how many it examined.
type ScanResult struct {
	Items            []Item
	ScannedCount     int
	SizeBytes        int
	FilterAttributes []string
	KeySchema        KeySchema
}

// Scan iterates every item in insertion order, applying the optional filter
// expression and stopping once limit items match (limit <= 0 means no cap).
// A scan is a full-table operation regardless of filter presence.
func (s *Store) Scan(name, filterExpr string, values map[string]types.AttributeValue, limit int) (*ScanResult, error) {
	var filter expression.Condition
	var err error
	if filterExpr != "" {
		if filter, err = expression.ParseCondition(filterExpr); err != nil {
			return nil, err
		}
	}

	t, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	result := &ScanResult{KeySchema: t.keySchema}
	if filter != nil {
		result.FilterAttributes = expression.ReferencedAttributes(filter)
	}

	for _, keyStr := range t.order {
		if limit > 0 && len(result.Items) >= limit {
			break
		}
		item := t.items[keyStr]
		result.ScannedCount++

		if filter != nil {
			keep, err := expression.EvalCondition(filter, item, values)
			if err != nil {
				return nil, err
			}
			if !keep {
				continue
			}
		}
		result.Items = append(result.Items, CloneItem(item))
		result.SizeBytes += ItemSize(item)
	}
	return result, nil
}
