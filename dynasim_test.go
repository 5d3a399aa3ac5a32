/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynasim

import (
	"context"
	"testing"

	streamtypes "github.com/aws/aws-sdk-go-v2/service/dynamodbstreams/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dynasim/advisor"
)

func TestOrderLifecycle(t *testing.T) {
	sim := New()
	ctx := context.Background()

	resp := sim.Invoke(ctx, "create_table", map[string]any{
		"table_name": "orders",
		"key_schema": map[string]any{"partition_key": "order_id"},
	})
	require.True(t, resp.Success, resp.Error)

	resp = sim.Invoke(ctx, "put_item", map[string]any{
		"table_name": "orders",
		"item":       map[string]any{"order_id": "o1", "status": "pending", "total": 42.5},
	})
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, 0.00125, resp.Cost)

	resp = sim.Invoke(ctx, "update_item", map[string]any{
		"table_name":        "orders",
		"key":               map[string]any{"order_id": "o1"},
		"update_expression": "SET status = :s",
		"expression_values": map[string]any{":s": "shipped"},
	})
	require.True(t, resp.Success, resp.Error)

	resp = sim.Invoke(ctx, "scan", map[string]any{"table_name": "orders"})
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, 1, resp.Data["count"])
	assert.NotEmpty(t, resp.Advisories, "the scan should be flagged")

	// The stream recorded the put and the update, in order.
	events, err := sim.StreamEvents("orders", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, streamtypes.OperationTypeInsert, events[0].Kind)
	assert.Equal(t, int64(1), events[0].SequenceNumber)
	assert.Equal(t, streamtypes.OperationTypeModify, events[1].Kind)
	assert.Equal(t, int64(2), events[1].SequenceNumber)

	// Four operations in the ledger: create, put, update, scan.
	summary := sim.LedgerSummary()
	assert.Equal(t, 4, summary.TotalOperations)
	assert.InDelta(t, 2*0.00125+0.00025, summary.TotalCost, 1e-12)
}

func TestLedgerPersistsAcrossTables(t *testing.T) {
	sim := New()
	ctx := context.Background()

	sim.Invoke(ctx, "create_table", map[string]any{
		"table_name": "a",
		"key_schema": map[string]any{"partition_key": "pk"},
	})
	sim.Invoke(ctx, "delete_table", map[string]any{"table_name": "a"})
	sim.Invoke(ctx, "create_table", map[string]any{
		"table_name": "b",
		"key_schema": map[string]any{"partition_key": "pk"},
	})

	assert.Equal(t, 3, sim.LedgerSummary().TotalOperations,
		"table churn never resets the ledger")

	sim.ResetLedger()
	assert.Equal(t, 0, sim.LedgerSummary().TotalOperations)
	assert.Equal(t, []string{"b"}, sim.TableNames(), "resetting the ledger keeps table data")
}

func TestIndexSuggestionsAccessor(t *testing.T) {
	sim := New()
	ctx := context.Background()

	sim.Invoke(ctx, "create_table", map[string]any{
		"table_name": "products",
		"key_schema": map[string]any{"partition_key": "sku"},
	})
	sim.Invoke(ctx, "put_item", map[string]any{
		"table_name": "products",
		"item":       map[string]any{"sku": "p1", "category": "tools"},
	})

	for i := 0; i < 10; i++ {
		resp := sim.Invoke(ctx, "scan", map[string]any{
			"table_name":        "products",
			"filter_expression": "category = :c",
			"expression_values": map[string]any{":c": "tools"},
		})
		require.True(t, resp.Success, resp.Error)
	}

	suggestions := sim.IndexSuggestions("products")
	require.NotEmpty(t, suggestions, "repeated filtered scans should produce a GSI suggestion")
	assert.Equal(t, advisor.IndexAdvisorSource, suggestions[0].Source)
	assert.Contains(t, suggestions[0].Message, "category")
}

func TestToolsCatalog(t *testing.T) {
	sim := New()
	tools := sim.Tools()
	assert.Len(t, tools, 11)
	assert.Contains(t, tools, "query")
	assert.Contains(t, tools, "batch_write_item")
}

func TestConfigOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity.Costs["put_item"] = 1.0
	sim := New(WithConfig(cfg))
	ctx := context.Background()

	sim.Invoke(ctx, "create_table", map[string]any{
		"table_name": "t",
		"key_schema": map[string]any{"partition_key": "pk"},
	})
	resp := sim.Invoke(ctx, "put_item", map[string]any{
		"table_name": "t",
		"item":       map[string]any{"pk": "x"},
	})

	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, 1.0, resp.Cost)
}
