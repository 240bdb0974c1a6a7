// Package chainsdk is the runtime of generated Go clients. Generated call
// sites perform every operation through a user supplied Requester.
package chainsdk

import (
	"context"
	"encoding/json"
	"fmt"
)

// Document is a pre-compiled GraphQL operation.
type Document struct {
	// Name of the operation.
	Name string
	// Kind is one of "query", "mutation" or "subscription".
	Kind string
	// Query is the printed operation, fragments included.
	Query string
}

// String returns the operation text.
func (d Document) String() string { return d.Query }

// DocumentType is the set of document representations a requester accepts.
type DocumentType interface {
	~string | Document
}

// Variables holds the variables of an operation.
type Variables map[string]any

// Optional sets name to *value when value is not nil.
func Optional[T any](v Variables, name string, value *T) {
	if value != nil {
		v[name] = *value
	}
}

// OptionalSlice sets name to value when value is not nil.
func OptionalSlice[T any](v Variables, name string, value []T) {
	if value != nil {
		v[name] = value
	}
}

// Requester performs an operation and returns the "data" member of the
// response. It is the only place generated clients touch the transport.
type Requester[D DocumentType] func(ctx context.Context, doc D, vars Variables) (json.RawMessage, error)

// Do performs the operation through r and decodes the response data into a
// new T. Errors are wrapped in an OperationError naming the operation.
func Do[T any, D DocumentType](ctx context.Context, r Requester[D], operation string, doc D, vars Variables) (*T, error) {
	if r == nil {
		return nil, NewOperationError(operation, ErrNilRequester)
	}
	data, err := r(ctx, doc, vars)
	if err != nil {
		return nil, NewOperationError(operation, err)
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, NewOperationError(operation, ErrNoData)
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, NewOperationError(operation, fmt.Errorf("decode response: %w", err))
	}
	return out, nil
}
