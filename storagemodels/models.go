/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
)

// Severity grades an advisory.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Advisory is a non-blocking recommendation attached to a response by one of
// the analysis extensions. It never affects the outcome of the operation.
type Advisory struct {
	Source   string   `json:"source"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// CapacityInfo reports the simulated read/write capacity units consumed by a
// single operation.
type CapacityInfo struct {
	RCU float64 `json:"rcu"`
	WCU float64 `json:"wcu"`
}

// Response is the uniform envelope returned by every tool invocation.
// Success and Cost are always meaningful; Data and Error are mutually
// exclusive. Advisories is never nil, only empty.
type Response struct {
	Success    bool           `json:"success"`
	Data       map[string]any `json:"data,omitempty"`
	Error      string         `json:"error,omitempty"`
	ErrorCode  string         `json:"errorCode,omitempty"`
	Cost       float64        `json:"cost"`
	Capacity   CapacityInfo   `json:"capacity"`
	Advisories []Advisory     `json:"advisories"`
}

// OperationRecord describes one completed tool invocation. It is produced by
// the dispatcher after the store call returns and consumed synchronously by
// the capacity accountant and the advisory analyzers, then discarded.
type OperationRecord struct {
	// Table is the target table name ("" for structural failures).
	Table string
	// Kind is the tool name (put_item, query, scan, ...).
	Kind string
	// Success reports whether the store operation succeeded.
	Success bool
	// ItemCount is the number of items affected or returned.
	ItemCount int
	// ScannedCount is the number of items examined (query/scan only).
	ScannedCount int
	// SizeBytes is the approximate encoded size of the items involved.
	SizeBytes int
	// KeyBased reports whether the operation addressed items by key rather
	// than by iteration. Scans are never key-based, regardless of filters.
	KeyBased bool
	// PartitionPinned reports whether a query pinned the partition key with
	// an equality condition.
	PartitionPinned bool
	// SortKeyCondition reports whether a query constrained the sort key.
	SortKeyCondition bool
	// PartitionKeyName and SortKeyName echo the table's key schema.
	PartitionKeyName string
	SortKeyName      string
	// PartitionItemCount is the number of items sharing the pinned partition
	// key value (query only).
	PartitionItemCount int
	// HasFilter reports whether a filter expression was supplied.
	HasFilter bool
	// FilterAttributes lists attribute names referenced by the filter
	// expression, in first-seen order.
	FilterAttributes []string
	// Timestamp is when the operation completed.
	Timestamp strfmt.DateTime
}

// LedgerSummary is a read-only snapshot of the process-wide cost ledger,
// exposed for dashboards via the reporting accessors.
type LedgerSummary struct {
	TotalOperations int                `json:"totalOperations"`
	TotalCost       float64            `json:"totalCost"`
	CostByKind      map[string]float64 `json:"costByKind"`
	CountByKind     map[string]int     `json:"countByKind"`
	ConsumedRCU     float64            `json:"consumedRCU"`
	ConsumedWCU     float64            `json:"consumedWCU"`
	AverageRCU      float64            `json:"averageRCU"`
	AverageWCU      float64            `json:"averageWCU"`
	// RecommendedBillingMode is PAY_PER_REQUEST while average capacity stays
	// under the provisioned thresholds, PROVISIONED once it exceeds them.
	RecommendedBillingMode types.BillingMode `json:"recommendedBillingMode"`
	StartedAt              strfmt.DateTime   `json:"startedAt"`
}
