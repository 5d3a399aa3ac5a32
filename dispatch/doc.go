/*
Package dispatch turns named tool invocations into table-store operations and
uniform response envelopes.

The Dispatcher validates each call against the registry catalog, decodes the
raw parameters into attribute values, routes to the store, and assembles the
response: success flag, data payload, error code, simulated cost and capacity,
and the advisories contributed by the capacity accountant and the analysis
extensions.

Two failure regimes apply. Structural failures (an unknown tool, a missing
required parameter, a value that cannot decode to a scalar attribute) are
rejected before the store is touched and carry zero cost. Failures inside the
store (missing table, bad expression, missing key attribute) are charged and
recorded in the ledger like successful operations.
*/
package dispatch
