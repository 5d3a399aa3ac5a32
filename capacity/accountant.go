/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package capacity

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/dynasim/storagemodels"
)

// AdvisorySource identifies the accountant in response advisories.
const AdvisorySource = "capacity-planner"

// Config holds the simulated cost model. The numbers are tunable parameters,
// not law; the defaults mirror DynamoDB's on-demand pricing order of
// magnitude.
type Config struct {
	// Costs maps an operation kind to its monetary unit cost. Batch kinds
	// charge per item rather than per call.
	Costs map[string]float64 `yaml:"costs"`
	// ReadUnitKB is the item size one RCU covers (default 4).
	ReadUnitKB float64 `yaml:"read_unit_kb"`
	// WriteUnitKB is the item size one WCU covers (default 1).
	WriteUnitKB float64 `yaml:"write_unit_kb"`
	// ProvisionedRCUThreshold and ProvisionedWCUThreshold are the average
	// per-operation unit loads above which the accountant recommends
	// switching to provisioned billing.
	ProvisionedRCUThreshold float64 `yaml:"provisioned_rcu_threshold"`
	ProvisionedWCUThreshold float64 `yaml:"provisioned_wcu_threshold"`
	// ProvisionedHeadroom scales the average into the suggested provisioned
	// unit count (default 1.2).
	ProvisionedHeadroom float64 `yaml:"provisioned_headroom"`
}

// DefaultConfig returns the default cost model.
func DefaultConfig() Config {
	return Config{
		Costs: map[string]float64{
			"create_table":     0,
			"describe_table":   0,
			"delete_table":     0,
			"put_item":         0.00125,
			"update_item":      0.00125,
			"delete_item":      0.00125,
			"get_item":         0.00025,
			"query":            0.00025,
			"scan":             0.00025,
			"batch_write_item": 0.00125,
			"batch_get_item":   0.00025,
		},
		ReadUnitKB:              4,
		WriteUnitKB:             1,
		ProvisionedRCUThreshold: 5,
		ProvisionedWCUThreshold: 5,
		ProvisionedHeadroom:     1.2,
	}
}

var batchKinds = map[string]bool{
	"batch_write_item": true,
	"batch_get_item":   true,
}

var writeKinds = map[string]bool{
	"put_item":         true,
	"update_item":      true,
	"delete_item":      true,
	"batch_write_item": true,
}

var readKinds = map[string]bool{
	"get_item":       true,
	"query":          true,
	"scan":           true,
	"batch_get_item": true,
}

// Accountant maps completed operations to simulated cost and capacity and
// maintains the process-wide cost ledger. Charging never fails: once an
// operation's outcome is known its cost is always computable. The ledger is
// appended to by every charged operation, successful or not, and is only
// reset by explicit operator action.
type Accountant struct {
	mu          sync.Mutex
	cfg         Config
	totalOps    int
	totalCost   float64
	costByKind  map[string]float64
	countByKind map[string]int
	totalRCU    float64
	totalWCU    float64
	startedAt   time.Time
}

// NewAccountant creates an Accountant with an empty ledger. Unset config
// fields fall back to their defaults individually, so a caller can override
// one threshold without restating the whole cost model.
func NewAccountant(cfg Config) *Accountant {
	def := DefaultConfig()
	if cfg.Costs == nil {
		cfg.Costs = def.Costs
	}
	if cfg.ReadUnitKB <= 0 {
		cfg.ReadUnitKB = def.ReadUnitKB
	}
	if cfg.WriteUnitKB <= 0 {
		cfg.WriteUnitKB = def.WriteUnitKB
	}
	if cfg.ProvisionedRCUThreshold <= 0 {
		cfg.ProvisionedRCUThreshold = def.ProvisionedRCUThreshold
	}
	if cfg.ProvisionedWCUThreshold <= 0 {
		cfg.ProvisionedWCUThreshold = def.ProvisionedWCUThreshold
	}
	if cfg.ProvisionedHeadroom <= 0 {
		cfg.ProvisionedHeadroom = def.ProvisionedHeadroom
	}
	return &Accountant{
		cfg:         cfg,
		costByKind:  make(map[string]float64),
		countByKind: make(map[string]int),
		startedAt:   time.Now(),
	}
}

// Charge appends one operation to the ledger and returns its cost, the
// simulated capacity it consumed, and any billing-mode advisory. The lock is
// held only for the append, never across table operations.
func (a *Accountant) Charge(rec storagemodels.OperationRecord) (float64, storagemodels.CapacityInfo, []storagemodels.Advisory) {
	cost := a.operationCost(rec)
	info := a.operationCapacity(rec)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.totalOps++
	a.totalCost += cost
	a.costByKind[rec.Kind] += cost
	a.countByKind[rec.Kind]++
	a.totalRCU += info.RCU
	a.totalWCU += info.WCU

	return cost, info, a.billingAdvisoriesLocked()
}

func (a *Accountant) operationCost(rec storagemodels.OperationRecord) float64 {
	unit := a.cfg.Costs[rec.Kind]
	if batchKinds[rec.Kind] {
		return unit * float64(rec.ItemCount)
	}
	return unit
}

func (a *Accountant) operationCapacity(rec storagemodels.OperationRecord) storagemodels.CapacityInfo {
	sizeKB := math.Ceil(float64(rec.SizeBytes) / 1024)
	switch {
	case writeKinds[rec.Kind]:
		return storagemodels.CapacityInfo{WCU: math.Max(1, math.Ceil(sizeKB/a.cfg.WriteUnitKB))}
	case readKinds[rec.Kind]:
		return storagemodels.CapacityInfo{RCU: math.Max(1, math.Ceil(sizeKB/a.cfg.ReadUnitKB))}
	}
	// Table-level operations consume no capacity.
	return storagemodels.CapacityInfo{}
}

func (a *Accountant) billingAdvisoriesLocked() []storagemodels.Advisory {
	if a.totalOps == 0 {
		return nil
	}
	var advisories []storagemodels.Advisory
	avgRCU := a.totalRCU / float64(a.totalOps)
	avgWCU := a.totalWCU / float64(a.totalOps)
	if avgRCU > a.cfg.ProvisionedRCUThreshold {
		advisories = append(advisories, storagemodels.Advisory{
			Source:   AdvisorySource,
			Severity: storagemodels.SeverityWarning,
			Message: fmt.Sprintf("average read load is %.1f RCU per operation; consider PROVISIONED billing with about %d RCU",
				avgRCU, int(avgRCU*a.cfg.ProvisionedHeadroom)),
		})
	}
	if avgWCU > a.cfg.ProvisionedWCUThreshold {
		advisories = append(advisories, storagemodels.Advisory{
			Source:   AdvisorySource,
			Severity: storagemodels.SeverityWarning,
			Message: fmt.Sprintf("average write load is %.1f WCU per operation; consider PROVISIONED billing with about %d WCU",
				avgWCU, int(avgWCU*a.cfg.ProvisionedHeadroom)),
		})
	}
	return advisories
}

// Summary returns a read-only snapshot of the ledger.
func (a *Accountant) Summary() storagemodels.LedgerSummary {
	a.mu.Lock()
	defer a.mu.Unlock()

	summary := storagemodels.LedgerSummary{
		TotalOperations:        a.totalOps,
		TotalCost:              a.totalCost,
		CostByKind:             make(map[string]float64, len(a.costByKind)),
		CountByKind:            make(map[string]int, len(a.countByKind)),
		ConsumedRCU:            a.totalRCU,
		ConsumedWCU:            a.totalWCU,
		RecommendedBillingMode: types.BillingModePayPerRequest,
		StartedAt:              strfmt.DateTime(a.startedAt),
	}
	for k, v := range a.costByKind {
		summary.CostByKind[k] = v
	}
	for k, v := range a.countByKind {
		summary.CountByKind[k] = v
	}
	if a.totalOps > 0 {
		summary.AverageRCU = a.totalRCU / float64(a.totalOps)
		summary.AverageWCU = a.totalWCU / float64(a.totalOps)
	}
	if summary.AverageRCU > a.cfg.ProvisionedRCUThreshold || summary.AverageWCU > a.cfg.ProvisionedWCUThreshold {
		summary.RecommendedBillingMode = types.BillingModeProvisioned
	}
	return summary
}

// Reset clears the ledger. This is the explicit operator action; nothing in
// the invoke path resets it.
func (a *Accountant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.totalOps = 0
	a.totalCost = 0
	a.costByKind = make(map[string]float64)
	a.countByKind = make(map[string]int)
	a.totalRCU = 0
	a.totalWCU = 0
	a.startedAt = time.Now()
}
