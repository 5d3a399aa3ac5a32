/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

// The fixed tool catalog. Every operation the dispatcher can route is
// declared here; parameter names are the wire names callers use.
func init() {
	RegisterTool(ToolDescriptor{
		Name:        "create_table",
		Class:       ClassTable,
		Required:    []string{"table_name", "key_schema"},
		Optional:    []string{"billing_mode"},
		Description: "Create a table with a partition key and optional sort key",
	})
	RegisterTool(ToolDescriptor{
		Name:        "describe_table",
		Class:       ClassTable,
		Required:    []string{"table_name"},
		Description: "Return a table's key schema, billing mode and item count",
	})
	RegisterTool(ToolDescriptor{
		Name:        "delete_table",
		Class:       ClassTable,
		Required:    []string{"table_name"},
		Description: "Delete a table and all of its items",
	})
	RegisterTool(ToolDescriptor{
		Name:        "put_item",
		Class:       ClassWrite,
		Required:    []string{"table_name", "item"},
		Optional:    []string{"return_stream_event"},
		Description: "Store an item, replacing any item with the same key",
	})
	RegisterTool(ToolDescriptor{
		Name:        "get_item",
		Class:       ClassRead,
		Required:    []string{"table_name", "key"},
		Description: "Fetch a single item by key; absence is a successful empty result",
	})
	RegisterTool(ToolDescriptor{
		Name:        "update_item",
		Class:       ClassWrite,
		Required:    []string{"table_name", "key", "update_expression"},
		Optional:    []string{"expression_values", "return_stream_event"},
		Description: "Apply SET/REMOVE clauses to an item, creating it if absent",
	})
	RegisterTool(ToolDescriptor{
		Name:        "delete_item",
		Class:       ClassWrite,
		Required:    []string{"table_name", "key"},
		Optional:    []string{"return_stream_event"},
		Description: "Delete an item by key; deleting an absent key succeeds",
	})
	RegisterTool(ToolDescriptor{
		Name:        "query",
		Class:       ClassRead,
		Required:    []string{"table_name", "key_condition"},
		Optional:    []string{"filter_expression", "expression_values"},
		Description: "Return items matching a key condition that pins the partition key",
	})
	RegisterTool(ToolDescriptor{
		Name:        "scan",
		Class:       ClassRead,
		Required:    []string{"table_name"},
		Optional:    []string{"filter_expression", "expression_values", "limit"},
		Description: "Iterate every item, applying an optional filter and limit",
	})
	RegisterTool(ToolDescriptor{
		Name:        "batch_write_item",
		Class:       ClassBatchWrite,
		Required:    []string{"table_name", "items"},
		Optional:    []string{"return_stream_event"},
		Description: "Put several items; each item's outcome is reported independently",
	})
	RegisterTool(ToolDescriptor{
		Name:        "batch_get_item",
		Class:       ClassBatchRead,
		Required:    []string{"table_name", "keys"},
		Description: "Fetch several items by key; each key's outcome is reported independently",
	})
}
