/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dispatch

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	dserrors "github.com/suparena/dynasim/errors"
	"github.com/suparena/dynasim/storagemodels"
	"github.com/suparena/dynasim/store"
)

// decodeItem converts a caller-supplied attribute map into a store item.
// Values are marshaled through the SDK's attributevalue converter and then
// restricted to the scalar set the engine admits: string, number, boolean
// and null. Anything else (lists, maps, binary) is INVALID_PARAMETERS.
func decodeItem(field string, raw any) (store.Item, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, dserrors.NewInvalidParametersError(field, "expected an object mapping attribute names to scalar values")
	}
	if len(m) == 0 {
		return nil, dserrors.NewInvalidParametersError(field, "must not be empty")
	}
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return nil, dserrors.NewInvalidParametersError(field, err.Error())
	}
	if err := validateScalars(field, item); err != nil {
		return nil, err
	}
	return item, nil
}

// decodeValues converts expression placeholder bindings (":name" to scalar).
// An absent or empty map is valid; expressions without placeholders need none.
func decodeValues(field string, raw any) (map[string]types.AttributeValue, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, dserrors.NewInvalidParametersError(field, "expected an object mapping placeholders to scalar values")
	}
	if len(m) == 0 {
		return nil, nil
	}
	values, err := attributevalue.MarshalMap(m)
	if err != nil {
		return nil, dserrors.NewInvalidParametersError(field, err.Error())
	}
	if err := validateScalars(field, values); err != nil {
		return nil, err
	}
	return values, nil
}

func validateScalars(field string, attrs map[string]types.AttributeValue) error {
	for name, v := range attrs {
		switch v.(type) {
		case *types.AttributeValueMemberS,
			*types.AttributeValueMemberN,
			*types.AttributeValueMemberBOOL,
			*types.AttributeValueMemberNULL:
		default:
			return dserrors.NewInvalidParametersError(field,
				fmt.Sprintf("attribute %q has an unsupported type; only string, number, boolean and null are allowed", name))
		}
	}
	return nil
}

func stringParam(params map[string]any, name string) (string, error) {
	v, ok := params[name]
	if !ok {
		return "", dserrors.NewInvalidParametersError(name, "required parameter is missing")
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", dserrors.NewInvalidParametersError(name, "expected a non-empty string")
	}
	return s, nil
}

func optionalStringParam(params map[string]any, name string) (string, error) {
	v, ok := params[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", dserrors.NewInvalidParametersError(name, "expected a string")
	}
	return s, nil
}

func optionalIntParam(params map[string]any, name string) (int, error) {
	v, ok := params[name]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, dserrors.NewInvalidParametersError(name, "expected a number")
}

func boolParam(params map[string]any, name string) bool {
	b, _ := params[name].(bool)
	return b
}

// encodeItem renders a stored item back to plain Go values for the response
// payload (strings, float64 numbers, booleans, nils).
func encodeItem(item store.Item) map[string]any {
	if item == nil {
		return nil
	}
	out := make(map[string]any, len(item))
	if err := attributevalue.UnmarshalMap(item, &out); err != nil {
		// Stored items only hold scalar members, which always unmarshal.
		return map[string]any{}
	}
	return out
}

func encodeItems(items []store.Item) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = encodeItem(item)
	}
	return out
}

func encodeEvent(ev *storagemodels.StreamEvent) map[string]any {
	if ev == nil {
		return nil
	}
	out := map[string]any{
		"eventID":                 ev.EventID,
		"table":                   ev.Table,
		"kind":                    string(ev.Kind),
		"sequenceNumber":          ev.SequenceNumber,
		"sizeBytes":               ev.SizeBytes,
		"keys":                    encodeItem(ev.Keys),
		"approximateCreationTime": ev.ApproximateCreationTime.String(),
	}
	if ev.NewImage != nil {
		out["newImage"] = encodeItem(ev.NewImage)
	}
	if ev.OldImage != nil {
		out["oldImage"] = encodeItem(ev.OldImage)
	}
	return out
}

func tablePayload(desc *store.TableDescription) map[string]any {
	keySchema := map[string]any{"partitionKey": desc.KeySchema.PartitionKey}
	if desc.KeySchema.SortKey != "" {
		keySchema["sortKey"] = desc.KeySchema.SortKey
	}
	return map[string]any{
		"name":        desc.Name,
		"keySchema":   keySchema,
		"billingMode": string(desc.BillingMode),
		"itemCount":   desc.ItemCount,
		"status":      "ACTIVE",
	}
}
