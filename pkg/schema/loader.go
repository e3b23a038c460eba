package schema

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches raw documents for a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures the built-in loader.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS lookups.
	FileSystem fs.FS
	// HTTPClient is used for URL sources. When nil and AllowHTTP is set a
	// client with RequestTimeout is created.
	HTTPClient *http.Client
	// AllowHTTP enables URL sources.
	AllowHTTP bool
	// RequestTimeout bounds each HTTP fetch.
	RequestTimeout time.Duration
	// MaxBytes caps the size of a single document. Zero means 5 MiB.
	MaxBytes int64
}
