package orchestrator

import (
	"context"

	"github.com/goliatone/go-formoptions/pkg/schema"
)

// Transformer mutates a normalized schema entry before fields are looked up.
// Implementations can inject enum values, rename titles, or prune branches.
type Transformer interface {
	Transform(ctx context.Context, entry *schema.Entry) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, entry *schema.Entry) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, entry *schema.Entry) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, entry)
}
