package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	streamtypes "github.com/aws/aws-sdk-go-v2/service/dynamodbstreams/types"
	"github.com/go-openapi/strfmt"
)

// StreamEvent is a change-data-capture record synthesized for every successful
// item mutation. Events are immutable once created and appended to a per-table
// log in sequence order.
type StreamEvent struct {
	// EventID uniquely identifies the event within the process.
	EventID string `json:"eventID"`
	// Table is the name of the table the mutation applied to.
	Table string `json:"table"`
	// Kind is INSERT, MODIFY or REMOVE.
	Kind streamtypes.OperationType `json:"kind"`
	// Keys is the key projection of the affected item.
	Keys map[string]types.AttributeValue `json:"-"`
	// NewImage is the item after the mutation (nil for REMOVE).
	NewImage map[string]types.AttributeValue `json:"-"`
	// OldImage is the item before the mutation (nil for INSERT).
	OldImage map[string]types.AttributeValue `json:"-"`
	// SequenceNumber is monotonic per table, starting at 1. It is never
	// reused and survives table deletion and recreation.
	SequenceNumber int64 `json:"sequenceNumber"`
	// SizeBytes is the approximate encoded size of the new image (old image
	// for REMOVE).
	SizeBytes int `json:"sizeBytes"`
	// ApproximateCreationTime is when the mutation was applied.
	ApproximateCreationTime strfmt.DateTime `json:"approximateCreationTime"`
}
