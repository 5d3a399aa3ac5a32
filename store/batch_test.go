/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package store

import (
	"testing"

	dserrors "github.com/suparena/dynasim/errors"
)

func TestBatchWriteItem(t *testing.T) {
	st := newOrdersStore(t)

	res, err := st.BatchWriteItem("orders", []Item{
		{"order_id": s("o1"), "status": s("pending")},
		{"order_id": s("o2"), "status": s("pending")},
		{"order_id": s("o1"), "status": s("paid")},
	})
	if err != nil {
		t.Fatalf("BatchWriteItem failed: %v", err)
	}
	if res.Written != 3 {
		t.Errorf("Written = %d, want 3", res.Written)
	}
	if res.Results[2].Err != nil || !res.Results[2].Replaced {
		t.Errorf("third put should replace o1: %+v", res.Results[2])
	}

	desc, _ := st.DescribeTable("orders")
	if desc.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", desc.ItemCount)
	}
}

func TestBatchWritePartialFailure(t *testing.T) {
	st := newOrdersStore(t)

	res, err := st.BatchWriteItem("orders", []Item{
		{"order_id": s("o1")},
		{"status": s("no key")},
		{"order_id": s("o2")},
	})
	if err != nil {
		t.Fatalf("BatchWriteItem should not fail the whole call: %v", err)
	}
	if res.Written != 2 {
		t.Errorf("Written = %d, want 2", res.Written)
	}
	if res.Results[1].Err == nil {
		t.Fatal("second item should fail")
	}
	if !dserrors.IsMissingKey(res.Results[1].Err) {
		t.Errorf("expected missing key error, got %v", res.Results[1].Err)
	}
	if res.Results[0].Err != nil || res.Results[2].Err != nil {
		t.Error("surrounding items should succeed")
	}
}

func TestBatchWriteUnknownTableFailsWholeCall(t *testing.T) {
	st := New()

	_, err := st.BatchWriteItem("missing", []Item{{"order_id": s("o1")}})
	if !dserrors.IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestBatchWriteEventsAreContiguous(t *testing.T) {
	st := newOrdersStore(t)

	res, err := st.BatchWriteItem("orders", []Item{
		{"order_id": s("a")},
		{"order_id": s("b")},
		{"order_id": s("c")},
	})
	if err != nil {
		t.Fatalf("BatchWriteItem failed: %v", err)
	}
	for i := 1; i < len(res.Results); i++ {
		prev, cur := res.Results[i-1].Event, res.Results[i].Event
		if cur.SequenceNumber != prev.SequenceNumber+1 {
			t.Errorf("sequences not contiguous: %d then %d", prev.SequenceNumber, cur.SequenceNumber)
		}
	}
}

func TestBatchGetItem(t *testing.T) {
	st := newOrdersStore(t)
	if _, err := st.PutItem("orders", Item{"order_id": s("o1"), "status": s("pending")}); err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}

	res, err := st.BatchGetItem("orders", []Item{
		{"order_id": s("o1")},
		{"order_id": s("ghost")},
		{"status": s("not a key")},
	})
	if err != nil {
		t.Fatalf("BatchGetItem failed: %v", err)
	}
	if res.Found != 1 {
		t.Errorf("Found = %d, want 1", res.Found)
	}
	if !res.Results[0].Found || res.Results[0].Item == nil {
		t.Errorf("first key should be found: %+v", res.Results[0])
	}
	if res.Results[1].Err != nil || res.Results[1].Found {
		t.Errorf("absent key should be a successful miss: %+v", res.Results[1])
	}
	if !dserrors.IsMissingKey(res.Results[2].Err) {
		t.Errorf("malformed key should fail per item, got %v", res.Results[2].Err)
	}
}
