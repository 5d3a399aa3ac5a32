/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expression

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// CompareOp is a comparison operator in a condition expression.
type CompareOp string

const (
	OpEQ CompareOp = "="
	OpLT CompareOp = "<"
	OpGT CompareOp = ">"
	OpLE CompareOp = "<="
	OpGE CompareOp = ">="
)

// Operand is the right-hand side of a comparison or SET clause: either a
// placeholder resolved against supplied expression values, or a literal.
type Operand interface {
	operand()
}

// Placeholder references a bound expression value, e.g. ":status".
// Name retains the leading colon so it can be looked up directly.
type Placeholder struct {
	Name string
}

func (Placeholder) operand() {}

// Literal is an inline scalar value, e.g. 30 or 'San Francisco'.
type Literal struct {
	Value types.AttributeValue
}

func (Literal) operand() {}

// Condition is a parsed condition, filter, or key-condition expression tree.
type Condition interface {
	condition()
}

// Comparison compares one item attribute against an operand.
type Comparison struct {
	Attr  string
	Op    CompareOp
	Value Operand
}

func (*Comparison) condition() {}

// And is the conjunction of two conditions.
type And struct {
	Left  Condition
	Right Condition
}

func (*And) condition() {}

// UpdateActionKind distinguishes SET assignments from REMOVE clauses.
type UpdateActionKind int

const (
	ActionSet UpdateActionKind = iota
	ActionRemove
)

// UpdateAction is a single clause of an update expression. Value is nil for
// REMOVE actions.
type UpdateAction struct {
	Kind  UpdateActionKind
	Attr  string
	Value Operand
}

// UpdateExpression is an ordered list of update actions. Actions apply left
// to right; later clauses observe earlier mutations.
type UpdateExpression struct {
	Actions []UpdateAction
}

// Conjuncts flattens a condition tree into its comparison list, left to right.
func Conjuncts(cond Condition) []*Comparison {
	switch c := cond.(type) {
	case *Comparison:
		return []*Comparison{c}
	case *And:
		return append(Conjuncts(c.Left), Conjuncts(c.Right)...)
	}
	return nil
}

// ReferencedAttributes returns the attribute names a condition references, in
// first-seen order without duplicates.
func ReferencedAttributes(cond Condition) []string {
	seen := make(map[string]bool)
	var attrs []string
	for _, cmp := range Conjuncts(cond) {
		if !seen[cmp.Attr] {
			seen[cmp.Attr] = true
			attrs = append(attrs, cmp.Attr)
		}
	}
	return attrs
}
