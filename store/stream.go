/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package store

import (
	"time"

	streamtypes "github.com/aws/aws-sdk-go-v2/service/dynamodbstreams/types"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/dynasim/storagemodels"
)

// nextSequence advances the per-table-name stream counter. The counter map is
// keyed by name and never cleared, so deleting and recreating a table does
// not reset or reuse sequence numbers.
func (s *Store) nextSequence(name string) int64 {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	s.sequences[name]++
	return s.sequences[name]
}

// appendEventLocked synthesizes a stream event for a mutation and appends it
// to the table's log. Callers hold the table mutex, which makes the item
// write and its event atomic with respect to other callers.
func (s *Store) appendEventLocked(t *table, kind streamtypes.OperationType, keys, oldImage, newImage Item) *storagemodels.StreamEvent {
	sized := newImage
	if kind == streamtypes.OperationTypeRemove {
		sized = oldImage
	}
	event := &storagemodels.StreamEvent{
		EventID:                 uuid.NewString(),
		Table:                   t.name,
		Kind:                    kind,
		Keys:                    keys,
		NewImage:                newImage,
		OldImage:                oldImage,
		SequenceNumber:          s.nextSequence(t.name),
		SizeBytes:               ItemSize(sized),
		ApproximateCreationTime: strfmt.DateTime(time.Now()),
	}
	t.events = append(t.events, event)
	return event
}

// StreamEvents returns the most recent limit events for a table in sequence
// order (oldest of the window first). limit <= 0 returns the whole log.
func (s *Store) StreamEvents(name string, limit int) ([]*storagemodels.StreamEvent, error) {
	t, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	events := t.events
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	out := make([]*storagemodels.StreamEvent, len(events))
	copy(out, events)
	return out, nil
}
