/*
Package storagemodels defines the data structures shared across dynasim.

Key Types:

Response:
The uniform envelope returned by every tool invocation:

	type Response struct {
	    Success    bool           // operation outcome
	    Data       map[string]any // result payload, if any
	    Error      string         // human-readable error, if any
	    ErrorCode  string         // stable code (NOT_FOUND, MISSING_KEY, ...)
	    Cost       float64        // simulated monetary cost of the call
	    Capacity   CapacityInfo   // simulated RCU/WCU consumed
	    Advisories []Advisory     // analyzer output; empty when no concerns
	}

OperationRecord:
One record per completed invocation, consumed by the capacity accountant and
the advisory analyzers. It captures what the analyzers need to judge the call:
operation kind, item counts, whether the access was key-based, the key schema
involved, and the attributes a filter expression referenced.

StreamEvent:
A change-data-capture record for a single item mutation, with per-table
monotonic sequence numbers and new/old item images.

These types provide a consistent interface between the table store, the
analysis extensions and the tool dispatcher.
*/
package storagemodels
