/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a table or other required resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when attempting to create a table that already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidSchema is returned when a key schema lacks a partition key
	ErrInvalidSchema = errors.New("invalid key schema")

	// ErrMissingKey is returned when an item or key omits a key-schema attribute
	ErrMissingKey = errors.New("missing key attribute")

	// ErrInvalidExpression is returned when an expression fails to parse or evaluate
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrInvalidParameters is returned when a tool call is malformed
	ErrInvalidParameters = errors.New("invalid parameters")
)

// Stable wire codes carried in the response envelope.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeInvalidSchema     = "INVALID_SCHEMA"
	CodeMissingKey        = "MISSING_KEY"
	CodeInvalidExpression = "INVALID_EXPRESSION"
	CodeInvalidParameters = "INVALID_PARAMETERS"
	CodeInternal          = "INTERNAL"
)

// NotFoundError represents an error when a table or resource is not found
type NotFoundError struct {
	Resource string
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when a table already exists
type AlreadyExistsError struct {
	Resource string
	Name     string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Resource, e.Name)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// InvalidSchemaError represents a rejected key schema
type InvalidSchemaError struct {
	Reason string
}

func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("invalid key schema: %s", e.Reason)
}

func (e *InvalidSchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// MissingKeyError represents an item or key that omits a key-schema attribute
type MissingKeyError struct {
	Table     string
	Attribute string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("item for table %q is missing key attribute %q", e.Table, e.Attribute)
}

func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// InvalidExpressionError represents an expression parse or evaluation failure
type InvalidExpressionError struct {
	Expression string
	Reason     string
}

func (e *InvalidExpressionError) Error() string {
	if e.Expression != "" {
		return fmt.Sprintf("invalid expression %q: %s", e.Expression, e.Reason)
	}
	return fmt.Sprintf("invalid expression: %s", e.Reason)
}

func (e *InvalidExpressionError) Is(target error) bool {
	return target == ErrInvalidExpression
}

// InvalidParametersError represents a malformed tool call
type InvalidParametersError struct {
	Field   string
	Message string
}

func (e *InvalidParametersError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid parameters: %s", e.Message)
}

func (e *InvalidParametersError) Is(target error) bool {
	return target == ErrInvalidParameters
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, name string) error {
	return &NotFoundError{Resource: resource, Name: name}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(resource, name string) error {
	return &AlreadyExistsError{Resource: resource, Name: name}
}

// NewInvalidSchemaError creates a new InvalidSchemaError
func NewInvalidSchemaError(reason string) error {
	return &InvalidSchemaError{Reason: reason}
}

// NewMissingKeyError creates a new MissingKeyError
func NewMissingKeyError(table, attribute string) error {
	return &MissingKeyError{Table: table, Attribute: attribute}
}

// NewInvalidExpressionError creates a new InvalidExpressionError
func NewInvalidExpressionError(expression, reason string) error {
	return &InvalidExpressionError{Expression: expression, Reason: reason}
}

// NewInvalidParametersError creates a new InvalidParametersError
func NewInvalidParametersError(field, message string) error {
	return &InvalidParametersError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidSchema checks if an error is an invalid schema error
func IsInvalidSchema(err error) bool {
	return errors.Is(err, ErrInvalidSchema)
}

// IsMissingKey checks if an error is a missing key error
func IsMissingKey(err error) bool {
	return errors.Is(err, ErrMissingKey)
}

// IsInvalidExpression checks if an error is an invalid expression error
func IsInvalidExpression(err error) bool {
	return errors.Is(err, ErrInvalidExpression)
}

// IsInvalidParameters checks if an error is an invalid parameters error
func IsInvalidParameters(err error) bool {
	return errors.Is(err, ErrInvalidParameters)
}

// Code maps an error to its stable wire code for the response envelope.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case IsNotFound(err):
		return CodeNotFound
	case IsAlreadyExists(err):
		return CodeAlreadyExists
	case IsInvalidSchema(err):
		return CodeInvalidSchema
	case IsMissingKey(err):
		return CodeMissingKey
	case IsInvalidExpression(err):
		return CodeInvalidExpression
	case IsInvalidParameters(err):
		return CodeInvalidParameters
	default:
		return CodeInternal
	}
}
