/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expression

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	dserrors "github.com/suparena/dynasim/errors"
)

// EvalCondition evaluates a condition tree against an item. Placeholders are
// resolved from values; an unknown placeholder is an error. Comparing an
// attribute the item does not carry is false, not an error, matching
// DynamoDB's filter semantics. Evaluation is pure.
func EvalCondition(cond Condition, item map[string]types.AttributeValue, values map[string]types.AttributeValue) (bool, error) {
	switch c := cond.(type) {
	case *And:
		left, err := EvalCondition(c.Left, item, values)
		if err != nil {
			return false, err
		}
		if !left {
			return false, nil
		}
		return EvalCondition(c.Right, item, values)
	case *Comparison:
		return evalComparison(c, item, values)
	}
	return false, dserrors.NewInvalidExpressionError("", fmt.Sprintf("unsupported condition node %T", cond))
}

func evalComparison(cmp *Comparison, item map[string]types.AttributeValue, values map[string]types.AttributeValue) (bool, error) {
	operand, err := resolveOperand(cmp.Value, values)
	if err != nil {
		return false, err
	}
	attr, ok := item[cmp.Attr]
	if !ok {
		return false, nil
	}

	if cmp.Op == OpEQ {
		return equalValues(attr, operand)
	}
	order, err := orderValues(attr, operand)
	if err != nil {
		return false, err
	}
	switch cmp.Op {
	case OpLT:
		return order < 0, nil
	case OpGT:
		return order > 0, nil
	case OpLE:
		return order <= 0, nil
	case OpGE:
		return order >= 0, nil
	}
	return false, dserrors.NewInvalidExpressionError("", fmt.Sprintf("unsupported operator %q", cmp.Op))
}

// ApplyUpdate applies an update expression to an item, returning a new item.
// The input item is never mutated; a nil item applies the update to an empty
// item (upsert creation). Actions apply left to right.
func ApplyUpdate(expr *UpdateExpression, item map[string]types.AttributeValue, values map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	result := make(map[string]types.AttributeValue, len(item)+len(expr.Actions))
	for k, v := range item {
		result[k] = v
	}
	for _, action := range expr.Actions {
		switch action.Kind {
		case ActionSet:
			value, err := resolveOperand(action.Value, values)
			if err != nil {
				return nil, err
			}
			result[action.Attr] = value
		case ActionRemove:
			delete(result, action.Attr)
		}
	}
	return result, nil
}

func resolveOperand(op Operand, values map[string]types.AttributeValue) (types.AttributeValue, error) {
	switch o := op.(type) {
	case Literal:
		return o.Value, nil
	case Placeholder:
		v, ok := values[o.Name]
		if !ok {
			return nil, dserrors.NewInvalidExpressionError("", fmt.Sprintf("unknown placeholder %q", o.Name))
		}
		return v, nil
	}
	return nil, dserrors.NewInvalidExpressionError("", fmt.Sprintf("unsupported operand %T", op))
}

// equalValues compares two scalar attribute values for equality. Comparing
// values of different kinds is a type mismatch error.
func equalValues(a, b types.AttributeValue) (bool, error) {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		if !ok {
			return false, typeMismatch(a, b)
		}
		return av.Value == bv.Value, nil
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		if !ok {
			return false, typeMismatch(a, b)
		}
		an, bn, err := parseNumbers(av.Value, bv.Value)
		if err != nil {
			return false, err
		}
		return an == bn, nil
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		if !ok {
			return false, typeMismatch(a, b)
		}
		return av.Value == bv.Value, nil
	case *types.AttributeValueMemberNULL:
		_, ok := b.(*types.AttributeValueMemberNULL)
		if !ok {
			return false, typeMismatch(a, b)
		}
		return true, nil
	}
	return false, dserrors.NewInvalidExpressionError("", fmt.Sprintf("unsupported attribute type %T", a))
}

// orderValues returns -1, 0 or 1 for ordered comparison. Only strings
// (lexicographic) and numbers support ordering; range comparators on booleans
// or null are a type mismatch.
func orderValues(a, b types.AttributeValue) (int, error) {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		if !ok {
			return 0, typeMismatch(a, b)
		}
		switch {
		case av.Value < bv.Value:
			return -1, nil
		case av.Value > bv.Value:
			return 1, nil
		}
		return 0, nil
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		if !ok {
			return 0, typeMismatch(a, b)
		}
		an, bn, err := parseNumbers(av.Value, bv.Value)
		if err != nil {
			return 0, err
		}
		switch {
		case an < bn:
			return -1, nil
		case an > bn:
			return 1, nil
		}
		return 0, nil
	}
	return 0, dserrors.NewInvalidExpressionError("", fmt.Sprintf("type %s does not support range comparison", kindName(a)))
}

func parseNumbers(a, b string) (float64, float64, error) {
	an, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, dserrors.NewInvalidExpressionError("", fmt.Sprintf("invalid number %q", a))
	}
	bn, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, dserrors.NewInvalidExpressionError("", fmt.Sprintf("invalid number %q", b))
	}
	return an, bn, nil
}

func typeMismatch(a, b types.AttributeValue) error {
	return dserrors.NewInvalidExpressionError("", fmt.Sprintf("type mismatch: cannot compare %s with %s", kindName(a), kindName(b)))
}

func kindName(v types.AttributeValue) string {
	switch v.(type) {
	case *types.AttributeValueMemberS:
		return "string"
	case *types.AttributeValueMemberN:
		return "number"
	case *types.AttributeValueMemberBOOL:
		return "boolean"
	case *types.AttributeValueMemberNULL:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
