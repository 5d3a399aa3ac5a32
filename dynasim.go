/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynasim

import (
	"context"

	"go.uber.org/zap"

	"github.com/suparena/dynasim/advisor"
	"github.com/suparena/dynasim/capacity"
	"github.com/suparena/dynasim/dispatch"
	"github.com/suparena/dynasim/registry"
	"github.com/suparena/dynasim/storagemodels"
	"github.com/suparena/dynasim/store"
)

// Simulator is the top-level façade: one multi-table store, one cost ledger,
// and the advisory analyzers, behind a single Invoke entry point. Construct
// one Simulator per simulation; simulators share no state.
type Simulator struct {
	store      *store.Store
	accountant *capacity.Accountant
	advisor    *advisor.IndexAdvisor
	dispatcher *dispatch.Dispatcher
	logger     *zap.Logger
}

// Option configures a Simulator.
type Option func(*options)

type options struct {
	cfg    Config
	logger *zap.Logger
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger attaches a logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a Simulator with an empty store and ledger.
func New(opts ...Option) *Simulator {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	st := store.New()
	acct := capacity.NewAccountant(o.cfg.Capacity)
	idx := advisor.NewIndexAdvisor(o.cfg.Advisor)
	analyzers := []advisor.Analyzer{
		advisor.NewPartitionKeyOptimizer(o.cfg.Optimizer),
		idx,
	}

	return &Simulator{
		store:      st,
		accountant: acct,
		advisor:    idx,
		dispatcher: dispatch.New(st, acct, analyzers, o.logger),
		logger:     o.logger,
	}
}

// Invoke executes one tool call and returns its response envelope. It never
// returns a Go error; failures are reported inside the envelope.
func (s *Simulator) Invoke(ctx context.Context, tool string, params map[string]any) storagemodels.Response {
	return s.dispatcher.Invoke(ctx, tool, params)
}

// Tools returns the names of every tool in the catalog, sorted.
func (s *Simulator) Tools() []string {
	return registry.ListTools()
}

// LedgerSummary returns a snapshot of the cost ledger, including the
// recommended billing mode for the observed workload.
func (s *Simulator) LedgerSummary() storagemodels.LedgerSummary {
	return s.accountant.Summary()
}

// ResetLedger clears the cost ledger. Table data is unaffected.
func (s *Simulator) ResetLedger() {
	s.accountant.Reset()
}

// StreamEvents returns the most recent limit change events for a table in
// sequence order (limit <= 0 returns all).
func (s *Simulator) StreamEvents(table string, limit int) ([]*storagemodels.StreamEvent, error) {
	return s.store.StreamEvents(table, limit)
}

// IndexSuggestions returns the index advisor's current suggestions for a
// table, if its recent access pattern is scan-heavy.
func (s *Simulator) IndexSuggestions(table string) []storagemodels.Advisory {
	return s.advisor.Current(table)
}

// TableNames returns the names of all live tables, in no particular order.
func (s *Simulator) TableNames() []string {
	return s.store.TableNames()
}
