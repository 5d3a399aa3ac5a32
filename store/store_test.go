/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	dserrors "github.com/suparena/dynasim/errors"
)

func s(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }
func n(v string) types.AttributeValue { return &types.AttributeValueMemberN{Value: v} }

func newOrdersStore(t *testing.T) *Store {
	t.Helper()
	st := New()
	_, err := st.CreateTable("orders", KeySchema{PartitionKey: "order_id"}, types.BillingModePayPerRequest)
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	return st
}

func TestCreateTable(t *testing.T) {
	st := New()

	desc, err := st.CreateTable("users", KeySchema{PartitionKey: "user_id", SortKey: "created"}, types.BillingModePayPerRequest)
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if desc.Name != "users" {
		t.Errorf("Name = %q, want users", desc.Name)
	}
	if desc.KeySchema.PartitionKey != "user_id" || desc.KeySchema.SortKey != "created" {
		t.Errorf("KeySchema = %+v", desc.KeySchema)
	}
	if desc.ItemCount != 0 {
		t.Errorf("ItemCount = %d, want 0", desc.ItemCount)
	}
}

func TestCreateTableRequiresPartitionKey(t *testing.T) {
	st := New()

	_, err := st.CreateTable("bad", KeySchema{}, types.BillingModePayPerRequest)
	if err == nil {
		t.Fatal("CreateTable without partition key should fail")
	}
	if !dserrors.IsInvalidSchema(err) {
		t.Errorf("expected invalid schema error, got %v", err)
	}
}

func TestCreateTableDuplicate(t *testing.T) {
	st := newOrdersStore(t)

	_, err := st.CreateTable("orders", KeySchema{PartitionKey: "order_id"}, types.BillingModePayPerRequest)
	if err == nil {
		t.Fatal("duplicate CreateTable should fail")
	}
	if !dserrors.IsAlreadyExists(err) {
		t.Errorf("expected already exists error, got %v", err)
	}
}

func TestDeleteTable(t *testing.T) {
	st := newOrdersStore(t)

	if _, err := st.DeleteTable("orders"); err != nil {
		t.Fatalf("DeleteTable failed: %v", err)
	}
	if _, err := st.DescribeTable("orders"); !dserrors.IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if _, err := st.DeleteTable("orders"); !dserrors.IsNotFound(err) {
		t.Errorf("second delete should be not found, got %v", err)
	}
}

func TestPutAndGetItem(t *testing.T) {
	st := newOrdersStore(t)

	item := Item{"order_id": s("o1"), "status": s("pending"), "total": n("42.50")}
	res, err := st.PutItem("orders", item)
	if err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}
	if res.Replaced {
		t.Error("first put should not report replaced")
	}
	if res.SizeBytes <= 0 {
		t.Errorf("SizeBytes = %d, want > 0", res.SizeBytes)
	}

	got, err := st.GetItem("orders", Item{"order_id": s("o1")})
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected item")
	}
	if got["status"].(*types.AttributeValueMemberS).Value != "pending" {
		t.Errorf("status = %#v", got["status"])
	}
}

func TestPutReplacesSameKey(t *testing.T) {
	st := newOrdersStore(t)

	if _, err := st.PutItem("orders", Item{"order_id": s("o1"), "status": s("pending")}); err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}
	res, err := st.PutItem("orders", Item{"order_id": s("o1"), "status": s("shipped")})
	if err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}
	if !res.Replaced {
		t.Error("second put with same key should replace")
	}

	desc, err := st.DescribeTable("orders")
	if err != nil {
		t.Fatalf("DescribeTable failed: %v", err)
	}
	if desc.ItemCount != 1 {
		t.Errorf("ItemCount = %d, want 1", desc.ItemCount)
	}
}

func TestKeyIdentityDistinguishesTypes(t *testing.T) {
	st := newOrdersStore(t)

	// The string "1" and the number 1 are different keys.
	if _, err := st.PutItem("orders", Item{"order_id": s("1"), "kind": s("string")}); err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}
	if _, err := st.PutItem("orders", Item{"order_id": n("1"), "kind": s("number")}); err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}

	desc, _ := st.DescribeTable("orders")
	if desc.ItemCount != 2 {
		t.Fatalf("ItemCount = %d, want 2", desc.ItemCount)
	}

	got, err := st.GetItem("orders", Item{"order_id": n("1")})
	if err != nil || got == nil {
		t.Fatalf("GetItem failed: %v, item %v", err, got)
	}
	if got["kind"].(*types.AttributeValueMemberS).Value != "number" {
		t.Errorf("wrong item for numeric key: %#v", got["kind"])
	}
}

func TestCompositeKeySeparatorValuesStayDistinct(t *testing.T) {
	st := New()
	if _, err := st.CreateTable("events", KeySchema{PartitionKey: "pk", SortKey: "sk"}, types.BillingModePayPerRequest); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}

	// Key values containing the internal joiner must not collide across the
	// partition/sort boundary.
	res, err := st.PutItem("events", Item{"pk": s("a|S:x"), "sk": s("y"), "which": s("first")})
	if err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}
	if res.Replaced {
		t.Error("first put should not replace")
	}
	res, err = st.PutItem("events", Item{"pk": s("a"), "sk": s("x|S:y"), "which": s("second")})
	if err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}
	if res.Replaced {
		t.Error("distinct composite key should not replace the first item")
	}

	desc, _ := st.DescribeTable("events")
	if desc.ItemCount != 2 {
		t.Fatalf("ItemCount = %d, want 2", desc.ItemCount)
	}

	got, err := st.GetItem("events", Item{"pk": s("a|S:x"), "sk": s("y")})
	if err != nil || got == nil {
		t.Fatalf("GetItem failed: %v, item %v", err, got)
	}
	if got["which"].(*types.AttributeValueMemberS).Value != "first" {
		t.Errorf("wrong item for separator-bearing key: %#v", got["which"])
	}
}

func TestNumericKeysShareOneIdentity(t *testing.T) {
	st := newOrdersStore(t)

	if _, err := st.PutItem("orders", Item{"order_id": n("1"), "status": s("pending")}); err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}

	// 1 and 1.0 are the same number, so the same key.
	got, err := st.GetItem("orders", Item{"order_id": n("1.0")})
	if err != nil || got == nil {
		t.Fatalf("GetItem with equivalent numeric key: %v, item %v", err, got)
	}

	res, err := st.PutItem("orders", Item{"order_id": n("1.0"), "status": s("paid")})
	if err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}
	if !res.Replaced {
		t.Error("numerically equal key should replace, not insert")
	}
	desc, _ := st.DescribeTable("orders")
	if desc.ItemCount != 1 {
		t.Errorf("ItemCount = %d, want 1", desc.ItemCount)
	}
}

func TestCompositeKey(t *testing.T) {
	st := New()
	if _, err := st.CreateTable("events", KeySchema{PartitionKey: "user_id", SortKey: "ts"}, types.BillingModePayPerRequest); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}

	if _, err := st.PutItem("events", Item{"user_id": s("u1"), "ts": n("1"), "action": s("login")}); err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}
	if _, err := st.PutItem("events", Item{"user_id": s("u1"), "ts": n("2"), "action": s("logout")}); err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}

	desc, _ := st.DescribeTable("events")
	if desc.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", desc.ItemCount)
	}

	// A key missing the sort key is rejected.
	_, err := st.GetItem("events", Item{"user_id": s("u1")})
	if !dserrors.IsMissingKey(err) {
		t.Errorf("expected missing key error, got %v", err)
	}
}

func TestPutItemMissingKeyAttribute(t *testing.T) {
	st := newOrdersStore(t)

	_, err := st.PutItem("orders", Item{"status": s("pending")})
	if !dserrors.IsMissingKey(err) {
		t.Errorf("expected missing key error, got %v", err)
	}
}

func TestGetItemAbsentIsNotAnError(t *testing.T) {
	st := newOrdersStore(t)

	item, err := st.GetItem("orders", Item{"order_id": s("nope")})
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil item, got %v", item)
	}
}

func TestUnknownTable(t *testing.T) {
	st := New()

	_, err := st.PutItem("missing", Item{"order_id": s("o1")})
	if !dserrors.IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestUpdateItemExisting(t *testing.T) {
	st := newOrdersStore(t)
	if _, err := st.PutItem("orders", Item{"order_id": s("o1"), "status": s("pending"), "draft": s("yes")}); err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}

	res, err := st.UpdateItem("orders", Item{"order_id": s("o1")},
		"SET status = :s REMOVE draft",
		map[string]types.AttributeValue{":s": s("shipped")})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if res.Created {
		t.Error("update of existing item should not report created")
	}
	if res.Item["status"].(*types.AttributeValueMemberS).Value != "shipped" {
		t.Errorf("status = %#v", res.Item["status"])
	}
	if _, ok := res.Item["draft"]; ok {
		t.Error("draft should be removed")
	}
}

func TestUpdateItemUpsert(t *testing.T) {
	st := newOrdersStore(t)

	res, err := st.UpdateItem("orders", Item{"order_id": s("o9")},
		"SET status = :s",
		map[string]types.AttributeValue{":s": s("new")})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if !res.Created {
		t.Error("upsert should report created")
	}
	if res.Item["order_id"].(*types.AttributeValueMemberS).Value != "o9" {
		t.Errorf("upserted item should carry the key, got %#v", res.Item)
	}

	got, err := st.GetItem("orders", Item{"order_id": s("o9")})
	if err != nil || got == nil {
		t.Fatalf("GetItem after upsert: %v, %v", err, got)
	}
}

func TestUpdateItemCannotModifyKey(t *testing.T) {
	st := newOrdersStore(t)
	if _, err := st.PutItem("orders", Item{"order_id": s("o1")}); err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}

	_, err := st.UpdateItem("orders", Item{"order_id": s("o1")},
		"SET order_id = :v",
		map[string]types.AttributeValue{":v": s("o2")})
	if !dserrors.IsInvalidExpression(err) {
		t.Errorf("expected invalid expression error, got %v", err)
	}

	// Original item is untouched.
	got, _ := st.GetItem("orders", Item{"order_id": s("o1")})
	if got == nil {
		t.Error("original item should survive a rejected update")
	}
}

func TestUpdateItemBadExpression(t *testing.T) {
	st := newOrdersStore(t)

	_, err := st.UpdateItem("orders", Item{"order_id": s("o1")}, "DROP everything", nil)
	if !dserrors.IsInvalidExpression(err) {
		t.Errorf("expected invalid expression error, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	st := newOrdersStore(t)
	if _, err := st.PutItem("orders", Item{"order_id": s("o1")}); err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}

	res, err := st.DeleteItem("orders", Item{"order_id": s("o1")})
	if err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if !res.Existed {
		t.Error("delete of existing item should report existed")
	}
	if res.Event == nil {
		t.Error("delete of existing item should emit an event")
	}

	got, _ := st.GetItem("orders", Item{"order_id": s("o1")})
	if got != nil {
		t.Error("item should be gone")
	}
}

func TestDeleteItemAbsentIsIdempotent(t *testing.T) {
	st := newOrdersStore(t)

	res, err := st.DeleteItem("orders", Item{"order_id": s("ghost")})
	if err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if res.Existed {
		t.Error("delete of absent item should report existed=false")
	}
	if res.Event != nil {
		t.Error("delete of absent item should emit no event")
	}
}

func TestStoredItemsAreIsolatedFromCallers(t *testing.T) {
	st := newOrdersStore(t)

	item := Item{"order_id": s("o1"), "status": s("pending")}
	if _, err := st.PutItem("orders", item); err != nil {
		t.Fatalf("PutItem failed: %v", err)
	}
	// Mutating the caller's map after the put must not affect the store.
	item["status"] = s("hacked")

	got, _ := st.GetItem("orders", Item{"order_id": s("o1")})
	if got["status"].(*types.AttributeValueMemberS).Value != "pending" {
		t.Error("store should hold its own copy of put items")
	}

	// Mutating a returned item must not affect the store either.
	got["status"] = s("also hacked")
	again, _ := st.GetItem("orders", Item{"order_id": s("o1")})
	if again["status"].(*types.AttributeValueMemberS).Value != "pending" {
		t.Error("GetItem should return a copy")
	}
}

func TestNormalizeBillingMode(t *testing.T) {
	tests := []struct {
		input string
		want  types.BillingMode
		ok    bool
	}{
		{"", types.BillingModePayPerRequest, true},
		{"ON_DEMAND", types.BillingModePayPerRequest, true},
		{"on_demand", types.BillingModePayPerRequest, true},
		{"PAY_PER_REQUEST", types.BillingModePayPerRequest, true},
		{"PROVISIONED", types.BillingModeProvisioned, true},
		{"provisioned", types.BillingModeProvisioned, true},
		{"RESERVED", "", false},
	}
	for _, tt := range tests {
		got, err := NormalizeBillingMode(tt.input)
		if tt.ok {
			if err != nil || got != tt.want {
				t.Errorf("NormalizeBillingMode(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
			}
			continue
		}
		if err == nil {
			t.Errorf("NormalizeBillingMode(%q) should fail", tt.input)
		} else if !dserrors.IsInvalidParameters(err) {
			t.Errorf("NormalizeBillingMode(%q) error should be invalid parameters, got %v", tt.input, err)
		}
	}
}
