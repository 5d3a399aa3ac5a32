/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package advisor

import (
	"fmt"

	"github.com/suparena/dynasim/storagemodels"
)

// OptimizerSource identifies the partition key optimizer in advisories.
const OptimizerSource = "partition-key-optimizer"

// OptimizerConfig tunes the partition key optimizer.
type OptimizerConfig struct {
	// HotPartitionThreshold is the partition item count above which a query
	// without a sort-key condition earns an additional advisory.
	HotPartitionThreshold int `yaml:"hot_partition_threshold"`
	// CriticalScanRatio is the examined-to-returned ratio at which a scan's
	// advisory escalates to critical. A scan that returns nothing but
	// examined items is always critical.
	CriticalScanRatio float64 `yaml:"critical_scan_ratio"`
}

// DefaultOptimizerConfig returns the default thresholds.
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		HotPartitionThreshold: 10,
		CriticalScanRatio:     10,
	}
}

// PartitionKeyOptimizer judges query and scan parameters against the table's
// key schema. It is stateless per call: every advisory derives from the
// single record observed.
type PartitionKeyOptimizer struct {
	cfg OptimizerConfig
}

// NewPartitionKeyOptimizer creates the optimizer. Unset config fields fall
// back to their defaults individually.
func NewPartitionKeyOptimizer(cfg OptimizerConfig) *PartitionKeyOptimizer {
	def := DefaultOptimizerConfig()
	if cfg.HotPartitionThreshold <= 0 {
		cfg.HotPartitionThreshold = def.HotPartitionThreshold
	}
	if cfg.CriticalScanRatio <= 0 {
		cfg.CriticalScanRatio = def.CriticalScanRatio
	}
	return &PartitionKeyOptimizer{cfg: cfg}
}

// Observe flags inefficient access patterns. A scan always earns at least an
// info advisory; a query that fails to pin the partition key with an equality
// condition earns a warning; a pinned query over a populous partition with no
// sort-key condition earns an extra advisory when the table has a sort key.
func (o *PartitionKeyOptimizer) Observe(rec storagemodels.OperationRecord) []storagemodels.Advisory {
	switch rec.Kind {
	case "scan":
		return o.observeScan(rec)
	case "query":
		return o.observeQuery(rec)
	}
	return nil
}

func (o *PartitionKeyOptimizer) observeScan(rec storagemodels.OperationRecord) []storagemodels.Advisory {
	severity := storagemodels.SeverityInfo
	detail := "scan examines every item"
	if !rec.HasFilter {
		severity = storagemodels.SeverityWarning
		detail = "unfiltered scan examines and returns every item"
	}
	// Grade efficiency: a scan that examines far more than it returns is the
	// clearest signal the access pattern needs a key or an index.
	if rec.ScannedCount > 0 &&
		float64(rec.ScannedCount) >= o.cfg.CriticalScanRatio*float64(rec.ItemCount) {
		severity = storagemodels.SeverityCritical
		detail = fmt.Sprintf("scan examined %d items to return %d", rec.ScannedCount, rec.ItemCount)
	}
	return []storagemodels.Advisory{{
		Source:   OptimizerSource,
		Severity: severity,
		Message: fmt.Sprintf("%s; use query with an equality condition on partition key %q instead of scan on table %q",
			detail, rec.PartitionKeyName, rec.Table),
	}}
}

func (o *PartitionKeyOptimizer) observeQuery(rec storagemodels.OperationRecord) []storagemodels.Advisory {
	var advisories []storagemodels.Advisory
	if !rec.PartitionPinned {
		advisories = append(advisories, storagemodels.Advisory{
			Source:   OptimizerSource,
			Severity: storagemodels.SeverityWarning,
			Message: fmt.Sprintf("query does not pin partition key %q with an equality condition and degrades to a full iteration of table %q",
				rec.PartitionKeyName, rec.Table),
		})
		return advisories
	}
	if rec.SortKeyName != "" && !rec.SortKeyCondition && rec.PartitionItemCount > o.cfg.HotPartitionThreshold {
		advisories = append(advisories, storagemodels.Advisory{
			Source:   OptimizerSource,
			Severity: storagemodels.SeverityInfo,
			Message: fmt.Sprintf("partition holds %d items; add a sort-key condition on %q to narrow the query",
				rec.PartitionItemCount, rec.SortKeyName),
		})
	}
	return advisories
}
