/*
Package errors provides semantic error types for the dynasim engine.

The package defines the engine's error taxonomy with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.
Every error additionally maps to a stable wire code via Code(), which the tool
dispatcher places in the response envelope.

Common Errors:

	var (
	    ErrNotFound          = errors.New("resource not found")
	    ErrAlreadyExists     = errors.New("resource already exists")
	    ErrInvalidSchema     = errors.New("invalid key schema")
	    ErrMissingKey        = errors.New("missing key attribute")
	    ErrInvalidExpression = errors.New("invalid expression")
	    ErrInvalidParameters = errors.New("invalid parameters")
	)

Usage:

	// Check error type
	desc, err := store.DescribeTable("orders")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle missing table
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewNotFoundError("table", "orders")
	err := errors.NewMissingKeyError("orders", "order_id")
	err := errors.NewInvalidExpressionError("SET = :v", "expected attribute name")

	// Map to a wire code for the envelope
	code := errors.Code(err) // "NOT_FOUND"

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
