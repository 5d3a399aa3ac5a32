/*
Package advisor implements the advisory analyzers that annotate tool
responses.

PartitionKeyOptimizer judges each query and scan against the table's key
schema: scans always earn an advisory, queries that fail to pin the partition
key earn a warning, and pinned queries over populous partitions are nudged
toward sort-key conditions.

IndexAdvisor keeps a rolling window of recent query/scan records per table.
When scans dominate the window it names the most frequently filtered non-key
attributes as Global Secondary Index candidates. Suggestions are recomputed on
every evaluation and disappear once the scan ratio drops back below threshold.

Both satisfy the Analyzer interface and never affect the outcome of the
operation they observe.
*/
package advisor
