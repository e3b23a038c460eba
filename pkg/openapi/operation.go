package openapi

import (
	"errors"

	"github.com/goliatone/go-formoptions/pkg/schema"
)

// Operation models the subset of OpenAPI operation metadata needed to
// resolve options from a request body.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody schema.Schema
}

// NewOperation validates core fields.
func NewOperation(id, method, path string, request schema.Schema) (Operation, error) {
	if id == "" {
		return Operation{}, errors.New("openapi: operation id is required")
	}
	if method == "" {
		return Operation{}, errors.New("openapi: operation method is required")
	}
	if path == "" {
		return Operation{}, errors.New("openapi: operation path is required")
	}
	return Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		RequestBody: request,
	}, nil
}

// MustNewOperation panics when construction fails, assisting fixtures/tests.
func MustNewOperation(id, method, path string, request schema.Schema) Operation {
	op, err := NewOperation(id, method, path, request)
	if err != nil {
		panic(err)
	}
	return op
}

// Entry converts the operation into a schema IR entry.
func (op Operation) Entry() schema.Entry {
	title := op.Summary
	if title == "" {
		title = op.RequestBody.Title
	}
	return schema.Entry{
		ID:          op.ID,
		Title:       title,
		Description: op.Description,
		Schema:      op.RequestBody,
	}
}
