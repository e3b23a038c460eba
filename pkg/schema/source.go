package schema

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a schema or overlay document originated so loaders
// can read files, fs.FS entries, URLs or in-memory payloads uniformly.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindURL    SourceKind = "url"
	SourceKindInline SourceKind = "inline"
)

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceFromInline labels a payload that was supplied directly, such as stdin.
func SourceFromInline(name string) Source {
	if strings.TrimSpace(name) == "" {
		name = "inline"
	}
	return source{kind: SourceKindInline, location: name}
}

// SourceFromURL parses raw and returns a Source. It panics on invalid input to
// surface configuration mistakes early; use ParseSource for user input.
func SourceFromURL(raw string) Source {
	src, err := urlSource(raw)
	if err != nil {
		panic(err)
	}
	return src
}

// ParseSource maps user input to a Source: http(s) URLs become URL sources,
// everything else is treated as a file path.
func ParseSource(raw string) (Source, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, fmt.Errorf("schema: empty source")
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return urlSource(value)
	}
	return SourceFromFile(value), nil
}

func urlSource(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("schema: invalid URL %q: %w", raw, err)
	}
	return source{kind: SourceKindURL, location: raw}, nil
}
