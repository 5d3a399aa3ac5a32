/*
Package dynasim is an in-process simulation of a DynamoDB-style key-value
store, exposed through a fixed catalog of named tools that return a uniform
success/error envelope with simulated cost, capacity and advisories.

The simulator is built for teaching and for exercising agent tooling against
realistic NoSQL semantics without any AWS dependency at runtime:
  - Multi-table store with partition/sort key schemas and scalar attributes
  - Key-based operations (put, get, update, delete, batch variants)
  - Query vs scan with DynamoDB-like classification and costs
  - SET/REMOVE update expressions with placeholder bindings
  - Per-table change streams with strictly increasing sequence numbers
  - A cost ledger with RCU/WCU accounting and billing-mode recommendation
  - Advisory analyzers: partition key optimizer and GSI index advisor

Basic Usage:

	sim := dynasim.New(dynasim.WithLogger(logger))

	resp := sim.Invoke(ctx, "create_table", map[string]any{
		"table_name": "orders",
		"key_schema": map[string]any{"partition_key": "order_id"},
	})

	resp = sim.Invoke(ctx, "put_item", map[string]any{
		"table_name": "orders",
		"item":       map[string]any{"order_id": "o1", "status": "pending"},
	})

	summary := sim.LedgerSummary()

Every response reports Success, a Data payload or an Error with a stable
error code, the operation's simulated Cost and Capacity, and zero or more
Advisories. Advisories never affect the outcome of the operation.
*/
package dynasim
