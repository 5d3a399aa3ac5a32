/*
Package registry holds the fixed catalog of tool descriptors.

Each descriptor names a tool, classifies how it touches the store (table,
read, write, or a batch variant), and declares its required and optional
parameters. The dispatcher validates invocations against the descriptor
before any work happens; an unknown tool or a missing required parameter is a
structural failure that never reaches the table store.

The catalog is registered at init time and is immutable afterwards;
RegisterTool panics on duplicate names to prevent accidental overrides.
*/
package registry
