/*
Package capacity computes simulated cost and capacity for completed
operations and maintains the process-wide cost ledger.

Each operation kind has a fixed monetary unit cost; batch operations charge
per item rather than per call. Capacity derives from approximate item size:
one RCU covers 4KB of reads, one WCU covers 1KB of writes, with a one-unit
floor per operation. Failed operations that reached the store are still
charged, matching how real DynamoDB consumes capacity on failed requests.

The accountant also watches average per-operation load and recommends
switching to PROVISIONED billing once it exceeds the configured thresholds.
All constants live in Config and default to the values in DefaultConfig.
*/
package capacity
