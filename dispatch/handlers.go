/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dispatch

import (
	"fmt"

	dserrors "github.com/suparena/dynasim/errors"
	"github.com/suparena/dynasim/storagemodels"
	"github.com/suparena/dynasim/store"
)

func (d *Dispatcher) createTable(params map[string]any) (outcome, error) {
	name, err := stringParam(params, "table_name")
	if err != nil {
		return outcome{}, err
	}
	rawSchema, ok := params["key_schema"].(map[string]any)
	if !ok {
		return outcome{}, dserrors.NewInvalidParametersError("key_schema", "expected an object with partition_key and optional sort_key")
	}
	schema := store.KeySchema{}
	schema.PartitionKey, _ = rawSchema["partition_key"].(string)
	schema.SortKey, _ = rawSchema["sort_key"].(string)

	billingRaw, err := optionalStringParam(params, "billing_mode")
	if err != nil {
		return outcome{}, err
	}
	billing, err := store.NormalizeBillingMode(billingRaw)
	if err != nil {
		return outcome{}, err
	}

	desc, err := d.store.CreateTable(name, schema, billing)
	if err != nil {
		return outcome{rec: storagemodels.OperationRecord{Table: name}}, err
	}
	return outcome{
		data: map[string]any{"table": tablePayload(desc)},
		rec:  storagemodels.OperationRecord{Table: name},
	}, nil
}

func (d *Dispatcher) describeTable(params map[string]any) (outcome, error) {
	name, err := stringParam(params, "table_name")
	if err != nil {
		return outcome{}, err
	}
	desc, err := d.store.DescribeTable(name)
	if err != nil {
		return outcome{rec: storagemodels.OperationRecord{Table: name}}, err
	}
	return outcome{
		data: map[string]any{"table": tablePayload(desc)},
		rec:  storagemodels.OperationRecord{Table: name},
	}, nil
}

func (d *Dispatcher) deleteTable(params map[string]any) (outcome, error) {
	name, err := stringParam(params, "table_name")
	if err != nil {
		return outcome{}, err
	}
	desc, err := d.store.DeleteTable(name)
	if err != nil {
		return outcome{rec: storagemodels.OperationRecord{Table: name}}, err
	}
	return outcome{
		data: map[string]any{"deleted": true, "table": tablePayload(desc)},
		rec:  storagemodels.OperationRecord{Table: name},
	}, nil
}

func (d *Dispatcher) putItem(params map[string]any) (outcome, error) {
	name, err := stringParam(params, "table_name")
	if err != nil {
		return outcome{}, err
	}
	item, err := decodeItem("item", params["item"])
	if err != nil {
		return outcome{}, err
	}
	rec := storagemodels.OperationRecord{Table: name, ItemCount: 1, KeyBased: true}

	res, err := d.store.PutItem(name, item)
	if err != nil {
		return outcome{rec: rec}, err
	}
	rec.SizeBytes = res.SizeBytes
	data := map[string]any{
		"item":     encodeItem(res.Item),
		"replaced": res.Replaced,
	}
	if boolParam(params, "return_stream_event") {
		data["streamEvent"] = encodeEvent(res.Event)
	}
	return outcome{data: data, rec: rec}, nil
}

func (d *Dispatcher) getItem(params map[string]any) (outcome, error) {
	name, err := stringParam(params, "table_name")
	if err != nil {
		return outcome{}, err
	}
	key, err := decodeItem("key", params["key"])
	if err != nil {
		return outcome{}, err
	}
	rec := storagemodels.OperationRecord{Table: name, KeyBased: true}

	item, err := d.store.GetItem(name, key)
	if err != nil {
		return outcome{rec: rec}, err
	}
	data := map[string]any{"found": item != nil}
	if item != nil {
		rec.ItemCount = 1
		rec.SizeBytes = store.ItemSize(item)
		data["item"] = encodeItem(item)
	}
	return outcome{data: data, rec: rec}, nil
}

func (d *Dispatcher) updateItem(params map[string]any) (outcome, error) {
	name, err := stringParam(params, "table_name")
	if err != nil {
		return outcome{}, err
	}
	key, err := decodeItem("key", params["key"])
	if err != nil {
		return outcome{}, err
	}
	updateExpr, err := stringParam(params, "update_expression")
	if err != nil {
		return outcome{}, err
	}
	values, err := decodeValues("expression_values", params["expression_values"])
	if err != nil {
		return outcome{}, err
	}
	rec := storagemodels.OperationRecord{Table: name, ItemCount: 1, KeyBased: true}

	res, err := d.store.UpdateItem(name, key, updateExpr, values)
	if err != nil {
		return outcome{rec: rec}, err
	}
	rec.SizeBytes = res.SizeBytes
	data := map[string]any{
		"item":    encodeItem(res.Item),
		"created": res.Created,
	}
	if boolParam(params, "return_stream_event") {
		data["streamEvent"] = encodeEvent(res.Event)
	}
	return outcome{data: data, rec: rec}, nil
}

func (d *Dispatcher) deleteItem(params map[string]any) (outcome, error) {
	name, err := stringParam(params, "table_name")
	if err != nil {
		return outcome{}, err
	}
	key, err := decodeItem("key", params["key"])
	if err != nil {
		return outcome{}, err
	}
	rec := storagemodels.OperationRecord{Table: name, KeyBased: true}

	res, err := d.store.DeleteItem(name, key)
	if err != nil {
		return outcome{rec: rec}, err
	}
	if res.Existed {
		rec.ItemCount = 1
		rec.SizeBytes = res.SizeBytes
	}
	data := map[string]any{"deleted": res.Existed}
	if boolParam(params, "return_stream_event") && res.Event != nil {
		data["streamEvent"] = encodeEvent(res.Event)
	}
	return outcome{data: data, rec: rec}, nil
}

func (d *Dispatcher) query(params map[string]any) (outcome, error) {
	name, err := stringParam(params, "table_name")
	if err != nil {
		return outcome{}, err
	}
	keyCondition, err := stringParam(params, "key_condition")
	if err != nil {
		return outcome{}, err
	}
	filterExpr, err := optionalStringParam(params, "filter_expression")
	if err != nil {
		return outcome{}, err
	}
	values, err := decodeValues("expression_values", params["expression_values"])
	if err != nil {
		return outcome{}, err
	}
	rec := storagemodels.OperationRecord{Table: name, HasFilter: filterExpr != ""}

	res, err := d.store.Query(name, keyCondition, filterExpr, values)
	if err != nil {
		return outcome{rec: rec}, err
	}
	rec.ItemCount = len(res.Items)
	rec.ScannedCount = res.ScannedCount
	rec.SizeBytes = res.SizeBytes
	rec.KeyBased = res.PartitionPinned
	rec.PartitionPinned = res.PartitionPinned
	rec.SortKeyCondition = res.SortKeyCondition
	rec.PartitionKeyName = res.KeySchema.PartitionKey
	rec.SortKeyName = res.KeySchema.SortKey
	rec.PartitionItemCount = res.PartitionItemCount
	rec.FilterAttributes = res.FilterAttributes

	data := map[string]any{
		"items":        encodeItems(res.Items),
		"count":        len(res.Items),
		"scannedCount": res.ScannedCount,
	}
	return outcome{data: data, rec: rec}, nil
}

func (d *Dispatcher) scan(params map[string]any) (outcome, error) {
	name, err := stringParam(params, "table_name")
	if err != nil {
		return outcome{}, err
	}
	filterExpr, err := optionalStringParam(params, "filter_expression")
	if err != nil {
		return outcome{}, err
	}
	values, err := decodeValues("expression_values", params["expression_values"])
	if err != nil {
		return outcome{}, err
	}
	limit, err := optionalIntParam(params, "limit")
	if err != nil {
		return outcome{}, err
	}
	rec := storagemodels.OperationRecord{Table: name, HasFilter: filterExpr != ""}

	res, err := d.store.Scan(name, filterExpr, values, limit)
	if err != nil {
		return outcome{rec: rec}, err
	}
	rec.ItemCount = len(res.Items)
	rec.ScannedCount = res.ScannedCount
	rec.SizeBytes = res.SizeBytes
	rec.PartitionKeyName = res.KeySchema.PartitionKey
	rec.SortKeyName = res.KeySchema.SortKey
	rec.FilterAttributes = res.FilterAttributes

	data := map[string]any{
		"items":        encodeItems(res.Items),
		"count":        len(res.Items),
		"scannedCount": res.ScannedCount,
	}
	return outcome{data: data, rec: rec}, nil
}

func (d *Dispatcher) batchWriteItem(params map[string]any) (outcome, error) {
	name, err := stringParam(params, "table_name")
	if err != nil {
		return outcome{}, err
	}
	raws, ok := params["items"].([]any)
	if !ok {
		return outcome{}, dserrors.NewInvalidParametersError("items", "expected a list of items")
	}
	if len(raws) == 0 {
		return outcome{}, dserrors.NewInvalidParametersError("items", "must not be empty")
	}
	wantEvents := boolParam(params, "return_stream_event")

	// Per-item decode failures are per-item outcomes, not structural
	// failures; only the well-formed items reach the store.
	results := make([]any, len(raws))
	decoded := make([]store.Item, 0, len(raws))
	indexes := make([]int, 0, len(raws))
	for i, raw := range raws {
		item, derr := decodeItem(fmt.Sprintf("items[%d]", i), raw)
		if derr != nil {
			results[i] = map[string]any{
				"index":     i,
				"success":   false,
				"error":     derr.Error(),
				"errorCode": dserrors.Code(derr),
			}
			continue
		}
		decoded = append(decoded, item)
		indexes = append(indexes, i)
	}

	rec := storagemodels.OperationRecord{Table: name, ItemCount: len(raws), KeyBased: true}

	res, err := d.store.BatchWriteItem(name, decoded)
	if err != nil {
		return outcome{rec: rec}, err
	}
	for j, r := range res.Results {
		i := indexes[j]
		entry := map[string]any{"index": i, "success": r.Err == nil}
		if r.Err != nil {
			entry["error"] = r.Err.Error()
			entry["errorCode"] = dserrors.Code(r.Err)
		} else {
			entry["replaced"] = r.Replaced
			if wantEvents {
				entry["streamEvent"] = encodeEvent(r.Event)
			}
		}
		results[i] = entry
	}
	rec.SizeBytes = res.SizeBytes

	data := map[string]any{
		"results":        results,
		"processedCount": res.Written,
	}
	return outcome{data: data, rec: rec}, nil
}

func (d *Dispatcher) batchGetItem(params map[string]any) (outcome, error) {
	name, err := stringParam(params, "table_name")
	if err != nil {
		return outcome{}, err
	}
	raws, ok := params["keys"].([]any)
	if !ok {
		return outcome{}, dserrors.NewInvalidParametersError("keys", "expected a list of keys")
	}
	if len(raws) == 0 {
		return outcome{}, dserrors.NewInvalidParametersError("keys", "must not be empty")
	}

	results := make([]any, len(raws))
	decoded := make([]store.Item, 0, len(raws))
	indexes := make([]int, 0, len(raws))
	for i, raw := range raws {
		key, derr := decodeItem(fmt.Sprintf("keys[%d]", i), raw)
		if derr != nil {
			results[i] = map[string]any{
				"index":     i,
				"success":   false,
				"error":     derr.Error(),
				"errorCode": dserrors.Code(derr),
			}
			continue
		}
		decoded = append(decoded, key)
		indexes = append(indexes, i)
	}

	rec := storagemodels.OperationRecord{Table: name, ItemCount: len(raws), KeyBased: true}

	res, err := d.store.BatchGetItem(name, decoded)
	if err != nil {
		return outcome{rec: rec}, err
	}
	for j, r := range res.Results {
		i := indexes[j]
		entry := map[string]any{"index": i, "success": r.Err == nil}
		if r.Err != nil {
			entry["error"] = r.Err.Error()
			entry["errorCode"] = dserrors.Code(r.Err)
		} else {
			entry["found"] = r.Found
			if r.Found {
				entry["item"] = encodeItem(r.Item)
			}
		}
		results[i] = entry
	}
	rec.SizeBytes = res.SizeBytes

	data := map[string]any{
		"results":    results,
		"foundCount": res.Found,
	}
	return outcome{data: data, rec: rec}, nil
}
