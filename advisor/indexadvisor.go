/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package advisor

import (
	"fmt"
	"strings"
	"sync"

	"github.com/suparena/dynasim/storagemodels"
)

// IndexAdvisorSource identifies the index advisor in advisories.
const IndexAdvisorSource = "index-advisor"

// IndexAdvisorConfig tunes the index advisor.
type IndexAdvisorConfig struct {
	// WindowSize is how many recent operation records are kept per table.
	WindowSize int `yaml:"window_size"`
	// ScanRatioThreshold is the scan-to-total ratio above which a GSI is
	// suggested.
	ScanRatioThreshold float64 `yaml:"scan_ratio_threshold"`
	// MinScans is the minimum number of observed scans before any
	// suggestion is made.
	MinScans int `yaml:"min_scans"`
}

// DefaultIndexAdvisorConfig returns the default thresholds.
func DefaultIndexAdvisorConfig() IndexAdvisorConfig {
	return IndexAdvisorConfig{
		WindowSize:         50,
		ScanRatioThreshold: 0.5,
		MinScans:           5,
	}
}

// windowEntry is the slice of an operation record the advisor keeps.
type windowEntry struct {
	kind        string
	filterAttrs []string
	keyAttrs    map[string]bool
}

// IndexAdvisor tracks a rolling window of recent operations per table and
// suggests Global Secondary Index candidates when scans dominate. The
// suggestion is recomputed on every evaluation, so it persists only while the
// scan ratio stays above threshold; indexes are only ever suggested, never
// materialized.
type IndexAdvisor struct {
	mu      sync.Mutex
	cfg     IndexAdvisorConfig
	windows map[string][]windowEntry
}

// NewIndexAdvisor creates the advisor with empty windows. Unset config fields
// fall back to their defaults individually.
func NewIndexAdvisor(cfg IndexAdvisorConfig) *IndexAdvisor {
	def := DefaultIndexAdvisorConfig()
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = def.WindowSize
	}
	if cfg.ScanRatioThreshold <= 0 {
		cfg.ScanRatioThreshold = def.ScanRatioThreshold
	}
	if cfg.MinScans <= 0 {
		cfg.MinScans = def.MinScans
	}
	return &IndexAdvisor{
		cfg:     cfg,
		windows: make(map[string][]windowEntry),
	}
}

// Observe appends the record to the table's window and returns the current
// suggestion, if any. The lock covers only the append and evaluation.
func (a *IndexAdvisor) Observe(rec storagemodels.OperationRecord) []storagemodels.Advisory {
	switch rec.Kind {
	case "query", "scan":
	default:
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	keyAttrs := map[string]bool{rec.PartitionKeyName: true}
	if rec.SortKeyName != "" {
		keyAttrs[rec.SortKeyName] = true
	}
	window := append(a.windows[rec.Table], windowEntry{
		kind:        rec.Kind,
		filterAttrs: rec.FilterAttributes,
		keyAttrs:    keyAttrs,
	})
	if len(window) > a.cfg.WindowSize {
		window = window[len(window)-a.cfg.WindowSize:]
	}
	a.windows[rec.Table] = window

	return a.evaluateLocked(rec.Table)
}

// Current recomputes the suggestion for a table from the present window. It
// backs the read-only get_advisories accessor.
func (a *IndexAdvisor) Current(table string) []storagemodels.Advisory {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.evaluateLocked(table)
}

func (a *IndexAdvisor) evaluateLocked(table string) []storagemodels.Advisory {
	window := a.windows[table]
	if len(window) == 0 {
		return nil
	}

	scans := 0
	counts := make(map[string]int)
	var firstSeen []string
	for _, entry := range window {
		if entry.kind != "scan" {
			continue
		}
		scans++
		for _, attr := range entry.filterAttrs {
			if entry.keyAttrs[attr] {
				continue
			}
			if counts[attr] == 0 {
				firstSeen = append(firstSeen, attr)
			}
			counts[attr]++
		}
	}

	ratio := float64(scans) / float64(len(window))
	if scans < a.cfg.MinScans || ratio <= a.cfg.ScanRatioThreshold {
		return nil
	}

	candidates := topCandidates(counts, firstSeen)
	if len(candidates) == 0 {
		return []storagemodels.Advisory{{
			Source:   IndexAdvisorSource,
			Severity: storagemodels.SeverityWarning,
			Message: fmt.Sprintf("%.0f%% of the last %d operations on table %q were scans; prefer key-based queries",
				ratio*100, len(window), table),
		}}
	}

	names := make([]string, len(candidates))
	for i, attr := range candidates {
		names[i] = fmt.Sprintf("%s (%s-index)", attr, attr)
	}
	return []storagemodels.Advisory{{
		Source:   IndexAdvisorSource,
		Severity: storagemodels.SeverityWarning,
		Message: fmt.Sprintf("%.0f%% of the last %d operations on table %q were scans filtering on %s; consider a Global Secondary Index",
			ratio*100, len(window), table, strings.Join(names, ", ")),
	}}
}

// topCandidates returns the most frequently filtered attributes, ties broken
// by first-seen order.
func topCandidates(counts map[string]int, firstSeen []string) []string {
	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	if best == 0 {
		return nil
	}
	var candidates []string
	for _, attr := range firstSeen {
		if counts[attr] == best {
			candidates = append(candidates, attr)
		}
	}
	return candidates
}
