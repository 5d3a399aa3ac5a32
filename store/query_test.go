/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	dserrors "github.com/suparena/dynasim/errors"
)

// seedEvents creates a users/ts table holding three users' activity.
func seedEvents(t *testing.T) *Store {
	t.Helper()
	st := New()
	if _, err := st.CreateTable("events", KeySchema{PartitionKey: "user_id", SortKey: "ts"}, types.BillingModePayPerRequest); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	rows := []Item{
		{"user_id": s("u1"), "ts": n("1"), "action": s("login")},
		{"user_id": s("u1"), "ts": n("2"), "action": s("browse")},
		{"user_id": s("u1"), "ts": n("3"), "action": s("logout")},
		{"user_id": s("u2"), "ts": n("1"), "action": s("login")},
		{"user_id": s("u3"), "ts": n("5"), "action": s("login")},
	}
	for _, row := range rows {
		if _, err := st.PutItem("events", row); err != nil {
			t.Fatalf("PutItem failed: %v", err)
		}
	}
	return st
}

func TestQueryPinnedPartition(t *testing.T) {
	st := seedEvents(t)

	res, err := st.Query("events", "user_id = :u", "", map[string]types.AttributeValue{":u": s("u1")})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(res.Items) != 3 {
		t.Errorf("got %d items, want 3", len(res.Items))
	}
	if !res.PartitionPinned {
		t.Error("PartitionPinned should be true")
	}
	if res.SortKeyCondition {
		t.Error("SortKeyCondition should be false")
	}
	if res.PartitionItemCount != 3 {
		t.Errorf("PartitionItemCount = %d, want 3", res.PartitionItemCount)
	}
	// Only the pinned partition is examined.
	if res.ScannedCount != 3 {
		t.Errorf("ScannedCount = %d, want 3", res.ScannedCount)
	}
}

func TestQuerySortKeyRange(t *testing.T) {
	st := seedEvents(t)

	res, err := st.Query("events", "user_id = :u AND ts >= :t", "",
		map[string]types.AttributeValue{":u": s("u1"), ":t": n("2")})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(res.Items) != 2 {
		t.Errorf("got %d items, want 2", len(res.Items))
	}
	if !res.SortKeyCondition {
		t.Error("SortKeyCondition should be true")
	}
}

func TestQueryWithoutPartitionEqualityDegrades(t *testing.T) {
	st := seedEvents(t)

	// No equality on user_id: the query still runs but examines everything.
	res, err := st.Query("events", "ts > :t", "", map[string]types.AttributeValue{":t": n("1")})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if res.PartitionPinned {
		t.Error("PartitionPinned should be false")
	}
	if res.ScannedCount != 5 {
		t.Errorf("ScannedCount = %d, want 5 (full iteration)", res.ScannedCount)
	}
	if len(res.Items) != 3 {
		t.Errorf("got %d items, want 3", len(res.Items))
	}
}

func TestQueryWithFilter(t *testing.T) {
	st := seedEvents(t)

	res, err := st.Query("events", "user_id = :u", `action = "login"`,
		map[string]types.AttributeValue{":u": s("u1")})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(res.Items) != 1 {
		t.Errorf("got %d items, want 1", len(res.Items))
	}
	if len(res.FilterAttributes) != 1 || res.FilterAttributes[0] != "action" {
		t.Errorf("FilterAttributes = %v, want [action]", res.FilterAttributes)
	}
	// The filter narrows matches but not what was examined.
	if res.ScannedCount != 3 {
		t.Errorf("ScannedCount = %d, want 3", res.ScannedCount)
	}
}

func TestQueryBadExpression(t *testing.T) {
	st := seedEvents(t)

	_, err := st.Query("events", "user_id ~ :u", "", nil)
	if !dserrors.IsInvalidExpression(err) {
		t.Errorf("expected invalid expression error, got %v", err)
	}
}

func TestScanReturnsAllInInsertionOrder(t *testing.T) {
	st := seedEvents(t)

	res, err := st.Scan("events", "", nil, 0)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(res.Items) != 5 {
		t.Fatalf("got %d items, want 5", len(res.Items))
	}
	if res.ScannedCount != 5 {
		t.Errorf("ScannedCount = %d, want 5", res.ScannedCount)
	}
	first := res.Items[0]
	if first["user_id"].(*types.AttributeValueMemberS).Value != "u1" ||
		first["ts"].(*types.AttributeValueMemberN).Value != "1" {
		t.Errorf("scan order should be insertion order, first = %#v", first)
	}
}

func TestScanWithFilter(t *testing.T) {
	st := seedEvents(t)

	res, err := st.Scan("events", `action = "login"`, nil, 0)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(res.Items) != 3 {
		t.Errorf("got %d items, want 3", len(res.Items))
	}
	if res.ScannedCount != 5 {
		t.Errorf("ScannedCount = %d, want 5 (filter does not reduce examined)", res.ScannedCount)
	}
}

func TestScanLimit(t *testing.T) {
	st := seedEvents(t)

	res, err := st.Scan("events", `action = "login"`, nil, 2)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(res.Items) != 2 {
		t.Errorf("got %d items, want 2", len(res.Items))
	}
	// Iteration stops once the limit is reached.
	if res.ScannedCount >= 5 {
		t.Errorf("ScannedCount = %d, want < 5", res.ScannedCount)
	}
}

func TestScanEmptyTable(t *testing.T) {
	st := New()
	if _, err := st.CreateTable("empty", KeySchema{PartitionKey: "pk"}, types.BillingModePayPerRequest); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}

	res, err := st.Scan("empty", "", nil, 0)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(res.Items) != 0 || res.ScannedCount != 0 {
		t.Errorf("empty scan = %d items, %d scanned", len(res.Items), res.ScannedCount)
	}
}
