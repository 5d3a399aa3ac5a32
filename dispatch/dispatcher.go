/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"go.uber.org/zap"

	"github.com/suparena/dynasim/capacity"
	dserrors "github.com/suparena/dynasim/errors"
	"github.com/suparena/dynasim/registry"
	"github.com/suparena/dynasim/storagemodels"
	"github.com/suparena/dynasim/store"

	"github.com/suparena/dynasim/advisor"
)

// Dispatcher routes tool invocations to the table store and assembles the
// uniform response envelope. Every invocation follows the same pipeline:
// descriptor lookup, structural validation, parameter decoding, store call,
// cost charging, advisory collection. Structural failures (unknown tool,
// missing or malformed parameters) short-circuit before the store and carry
// zero cost; failures inside the store are charged like any other operation.
type Dispatcher struct {
	store      *store.Store
	accountant *capacity.Accountant
	analyzers  []advisor.Analyzer
	logger     *zap.Logger
}

// New creates a Dispatcher. A nil logger disables logging.
func New(st *store.Store, acct *capacity.Accountant, analyzers []advisor.Analyzer, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		store:      st,
		accountant: acct,
		analyzers:  analyzers,
		logger:     logger,
	}
}

// outcome carries a handler's response payload plus the operation facts the
// accountant and the analyzers consume.
type outcome struct {
	data map[string]any
	rec  storagemodels.OperationRecord
}

// Invoke executes one tool call and always returns a response envelope; it
// never returns a Go error. The context is honored before any work starts.
func (d *Dispatcher) Invoke(ctx context.Context, tool string, params map[string]any) storagemodels.Response {
	if params == nil {
		params = map[string]any{}
	}
	if err := ctx.Err(); err != nil {
		return d.reject(tool, dserrors.NewInvalidParametersError("context", err.Error()))
	}

	desc, err := registry.GetTool(tool)
	if err != nil {
		return d.reject(tool, dserrors.NewInvalidParametersError("tool", fmt.Sprintf("unknown tool %q", tool)))
	}
	for _, name := range desc.Required {
		if _, ok := params[name]; !ok {
			return d.reject(tool, dserrors.NewInvalidParametersError(name, "required parameter is missing"))
		}
	}

	out, err := d.dispatch(desc.Name, params)
	if err != nil && dserrors.IsInvalidParameters(err) {
		// Parameters never became valid enough to reach the store.
		return d.reject(tool, err)
	}

	rec := out.rec
	rec.Kind = desc.Name
	rec.Success = err == nil
	rec.Timestamp = strfmt.DateTime(time.Now())

	cost, capInfo, capAdvisories := d.accountant.Charge(rec)

	advisories := make([]storagemodels.Advisory, 0, len(capAdvisories))
	advisories = append(advisories, capAdvisories...)
	if err == nil {
		for _, a := range d.analyzers {
			advisories = append(advisories, a.Observe(rec)...)
		}
	}

	resp := storagemodels.Response{
		Success:    err == nil,
		Cost:       cost,
		Capacity:   capInfo,
		Advisories: advisories,
	}
	if err != nil {
		resp.Error = err.Error()
		resp.ErrorCode = dserrors.Code(err)
		d.logger.Warn("tool failed",
			zap.String("tool", desc.Name),
			zap.String("table", rec.Table),
			zap.String("errorCode", resp.ErrorCode),
			zap.Error(err))
		return resp
	}

	resp.Data = out.data
	d.logger.Debug("tool completed",
		zap.String("tool", desc.Name),
		zap.String("table", rec.Table),
		zap.Int("itemCount", rec.ItemCount),
		zap.Float64("cost", cost))
	return resp
}

// reject builds the envelope for a structural failure. Nothing reached the
// store, so no cost is charged and no ledger entry is made.
func (d *Dispatcher) reject(tool string, err error) storagemodels.Response {
	d.logger.Warn("tool rejected",
		zap.String("tool", tool),
		zap.Error(err))
	return storagemodels.Response{
		Error:      err.Error(),
		ErrorCode:  dserrors.Code(err),
		Advisories: []storagemodels.Advisory{},
	}
}

func (d *Dispatcher) dispatch(tool string, params map[string]any) (outcome, error) {
	switch tool {
	case "create_table":
		return d.createTable(params)
	case "describe_table":
		return d.describeTable(params)
	case "delete_table":
		return d.deleteTable(params)
	case "put_item":
		return d.putItem(params)
	case "get_item":
		return d.getItem(params)
	case "update_item":
		return d.updateItem(params)
	case "delete_item":
		return d.deleteItem(params)
	case "query":
		return d.query(params)
	case "scan":
		return d.scan(params)
	case "batch_write_item":
		return d.batchWriteItem(params)
	case "batch_get_item":
		return d.batchGetItem(params)
	}
	// Unreachable while the catalog and this switch stay in step.
	return outcome{}, dserrors.NewInvalidParametersError("tool", fmt.Sprintf("tool %q has no handler", tool))
}
