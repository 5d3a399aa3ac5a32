/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expression

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	dserrors "github.com/suparena/dynasim/errors"
)

type parser struct {
	input  string
	tokens []token
	pos    int
}

func newParser(input string) (*parser, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, dserrors.NewInvalidExpressionError(input, err.Error())
	}
	return &parser{input: input, tokens: tokens}, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	return dserrors.NewInvalidExpressionError(p.input, fmt.Sprintf(format, args...))
}

// ParseCondition parses a condition, filter, or key-condition expression:
//
//	condition  := comparison { AND comparison }
//	comparison := attr op operand
//	op         := "=" | "<" | ">" | "<=" | ">="
//	operand    := placeholder | number | string | "true" | "false"
func ParseCondition(input string) (Condition, error) {
	if strings.TrimSpace(input) == "" {
		return nil, dserrors.NewInvalidExpressionError(input, "empty expression")
	}
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokenEOF {
		return nil, p.errorf("unexpected token %q at position %d", t.text, t.pos)
	}
	return cond, nil
}

func (p *parser) parseCondition() (Condition, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	var cond Condition = left
	for p.peek().kind == tokenAnd {
		p.next()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		cond = &And{Left: cond, Right: right}
	}
	return cond, nil
}

func (p *parser) parseComparison() (*Comparison, error) {
	attr := p.next()
	if attr.kind != tokenIdent {
		return nil, p.errorf("expected attribute name, got %q", attr.text)
	}
	op := p.next()
	if op.kind != tokenCompare {
		return nil, p.errorf("expected comparison operator after %q, got %q", attr.text, op.text)
	}
	operand, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return &Comparison{Attr: attr.text, Op: CompareOp(op.text), Value: operand}, nil
}

func (p *parser) parseOperand() (Operand, error) {
	t := p.next()
	switch t.kind {
	case tokenPlaceholder:
		return Placeholder{Name: t.text}, nil
	case tokenNumber:
		return Literal{Value: &types.AttributeValueMemberN{Value: t.text}}, nil
	case tokenString:
		return Literal{Value: &types.AttributeValueMemberS{Value: t.text}}, nil
	case tokenIdent:
		switch strings.ToLower(t.text) {
		case "true":
			return Literal{Value: &types.AttributeValueMemberBOOL{Value: true}}, nil
		case "false":
			return Literal{Value: &types.AttributeValueMemberBOOL{Value: false}}, nil
		}
		return nil, p.errorf("expected value or placeholder, got identifier %q", t.text)
	}
	return nil, p.errorf("expected value or placeholder at position %d", t.pos)
}

// ParseUpdate parses an update expression:
//
//	update := clause { clause }
//	clause := "SET" assignment { "," assignment }
//	        | "REMOVE" attr { "," attr }
//	assignment := attr "=" operand
func ParseUpdate(input string) (*UpdateExpression, error) {
	if strings.TrimSpace(input) == "" {
		return nil, dserrors.NewInvalidExpressionError(input, "empty update expression")
	}
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}

	expr := &UpdateExpression{}
	for p.peek().kind != tokenEOF {
		switch t := p.next(); t.kind {
		case tokenSet:
			if err := p.parseSetClauses(expr); err != nil {
				return nil, err
			}
		case tokenRemove:
			if err := p.parseRemoveClauses(expr); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf("expected SET or REMOVE, got %q", t.text)
		}
	}
	if len(expr.Actions) == 0 {
		return nil, dserrors.NewInvalidExpressionError(input, "update expression has no actions")
	}
	return expr, nil
}

func (p *parser) parseSetClauses(expr *UpdateExpression) error {
	for {
		attr := p.next()
		if attr.kind != tokenIdent {
			return p.errorf("expected attribute name in SET clause, got %q", attr.text)
		}
		if eq := p.next(); eq.kind != tokenCompare || eq.text != "=" {
			return p.errorf("expected '=' after %q in SET clause", attr.text)
		}
		operand, err := p.parseOperand()
		if err != nil {
			return err
		}
		expr.Actions = append(expr.Actions, UpdateAction{Kind: ActionSet, Attr: attr.text, Value: operand})

		if p.peek().kind != tokenComma {
			return nil
		}
		p.next()
	}
}

func (p *parser) parseRemoveClauses(expr *UpdateExpression) error {
	for {
		attr := p.next()
		if attr.kind != tokenIdent {
			return p.errorf("expected attribute name in REMOVE clause, got %q", attr.text)
		}
		expr.Actions = append(expr.Actions, UpdateAction{Kind: ActionRemove, Attr: attr.text})

		if p.peek().kind != tokenComma {
			return nil
		}
		p.next()
	}
}
