/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("table", "orders")

	expected := `table "orders" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("table", "orders")

	expected := `table "orders" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrAlreadyExists) {
		t.Error("AlreadyExistsError should match ErrAlreadyExists")
	}

	if !IsAlreadyExists(err) {
		t.Error("IsAlreadyExists should return true for AlreadyExistsError")
	}
}

func TestInvalidSchemaError(t *testing.T) {
	err := NewInvalidSchemaError("partition key is required")

	expected := "invalid key schema: partition key is required"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsInvalidSchema(err) {
		t.Error("IsInvalidSchema should return true for InvalidSchemaError")
	}
}

func TestMissingKeyError(t *testing.T) {
	err := NewMissingKeyError("orders", "order_id")

	expected := `item for table "orders" is missing key attribute "order_id"`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsMissingKey(err) {
		t.Error("IsMissingKey should return true for MissingKeyError")
	}
}

func TestInvalidExpressionError(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		reason     string
		expected   string
	}{
		{
			name:       "with expression",
			expression: "SET = :v",
			reason:     "expected attribute name",
			expected:   `invalid expression "SET = :v": expected attribute name`,
		},
		{
			name:     "without expression",
			reason:   "unknown placeholder :v",
			expected: "invalid expression: unknown placeholder :v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInvalidExpressionError(tt.expression, tt.reason)
			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}
			if !IsInvalidExpression(err) {
				t.Error("IsInvalidExpression should return true")
			}
		})
	}
}

func TestInvalidParametersError(t *testing.T) {
	err := NewInvalidParametersError("limit", "expected a number")

	expected := `invalid parameter "limit": expected a number`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsInvalidParameters(err) {
		t.Error("IsInvalidParameters should return true for InvalidParametersError")
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{nil, ""},
		{NewNotFoundError("table", "t"), CodeNotFound},
		{NewAlreadyExistsError("table", "t"), CodeAlreadyExists},
		{NewInvalidSchemaError("no pk"), CodeInvalidSchema},
		{NewMissingKeyError("t", "pk"), CodeMissingKey},
		{NewInvalidExpressionError("x", "bad"), CodeInvalidExpression},
		{NewInvalidParametersError("f", "bad"), CodeInvalidParameters},
		{fmt.Errorf("something else"), CodeInternal},
	}

	for _, tt := range tests {
		if got := Code(tt.err); got != tt.code {
			t.Errorf("Code(%v) = %q, want %q", tt.err, got, tt.code)
		}
	}
}

func TestWrappedErrorsKeepTheirCode(t *testing.T) {
	err := fmt.Errorf("query failed: %w", NewNotFoundError("table", "orders"))

	if !IsNotFound(err) {
		t.Error("wrapped NotFoundError should still match")
	}
	if got := Code(err); got != CodeNotFound {
		t.Errorf("Code of wrapped error = %q, want %q", got, CodeNotFound)
	}
}
