// Package loader reads schema and overlay documents from files, fs.FS
// entries, HTTP endpoints and in-memory buffers.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-formoptions/pkg/schema"
)

const defaultMaxBytes = int64(5 << 20)

// Loader implements schema.Loader by delegating to a strategy per source kind.
type Loader struct {
	fs       fs.FS
	http     *http.Client
	timeout  time.Duration
	maxBytes int64
	inline   map[string][]byte
}

var _ schema.Loader = (*Loader)(nil)

// New constructs a Loader from options.
func New(options schema.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTP:
		httpClient = &http.Client{Timeout: timeout}
	}

	maxBytes := options.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	return &Loader{
		fs:       options.FileSystem,
		http:     httpClient,
		timeout:  timeout,
		maxBytes: maxBytes,
		inline:   make(map[string][]byte),
	}
}

// Register makes raw available to inline sources named name. It is meant for
// setup before the loader is shared; Register is not safe to call
// concurrently with Load.
func (l *Loader) Register(name string, raw []byte) schema.Source {
	src := schema.SourceFromInline(name)
	l.inline[src.Location()] = append([]byte(nil), raw...)
	return src
}

// Load fetches the document behind src.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = loadFile(ctx, src.Location(), l.maxBytes)
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindURL:
		if l.http == nil {
			return schema.Document{}, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout, l.maxBytes)
	case schema.SourceKindInline:
		raw, ok := l.inline[src.Location()]
		if !ok {
			return schema.Document{}, fmt.Errorf("loader: inline source %q not registered", src.Location())
		}
		data = raw
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, err
	}
	if int64(len(data)) > l.maxBytes {
		return schema.Document{}, fmt.Errorf("loader: %s exceeds %d bytes", src.Location(), l.maxBytes)
	}

	return schema.NewDocument(src, data)
}
