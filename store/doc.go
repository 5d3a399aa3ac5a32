/*
Package store implements the simulated multi-table storage engine.

A Store owns table definitions and item data entirely in memory. Items are
maps of attribute name to DynamoDB scalar attribute values (S, N, BOOL, NULL);
the concatenation of an item's partition key and optional sort key is its
unique identity within a table, and a put with an existing key replaces the
stored item.

Operations mirror DynamoDB's semantics: put/get/update/delete by key, query
with a key condition that pins the partition key, scan with an optional filter
and limit, and batch variants with independently reported per-item outcomes.
Update expressions are parsed and applied by the expression package; an
update on an absent key creates the item (upsert).

Every successful mutation synthesizes a stream event (INSERT, MODIFY, REMOVE)
appended to a per-table log with sequence numbers that are strictly monotonic
per table, start at 1, and survive table deletion and recreation. Deleting an
absent key emits no event.

Each table carries its own mutex covering its item map and event log, so a
read-modify-write update and its stream event are atomic; tables never share
locks.
*/
package store
