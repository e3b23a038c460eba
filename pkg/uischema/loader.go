package uischema

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Store keeps overlays parsed from a directory tree, keyed by the file name
// without its extension. It is safe for concurrent readers once built.
type Store struct {
	overlays map[string]*Overlay
}

// LoadFS walks fsys and parses every JSON/YAML file as an overlay. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{overlays: make(map[string]*Overlay)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", name, err)
		}

		id := overlayID(name)
		if _, exists := store.overlays[id]; exists {
			return fmt.Errorf("uischema: duplicate overlay %q (file %s)", id, name)
		}

		overlay, err := parse(data, name)
		if err != nil {
			return err
		}
		store.overlays[id] = overlay
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Overlay returns the overlay registered under id.
func (s *Store) Overlay(id string) (*Overlay, bool) {
	if s == nil {
		return nil, false
	}
	overlay, ok := s.overlays[id]
	return overlay, ok
}

// IDs lists the registered overlay identifiers in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.overlays))
	for id := range s.overlays {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.overlays) == 0
}

func overlayID(name string) string {
	trimmed := strings.TrimSuffix(name, path.Ext(name))
	return strings.TrimSuffix(trimmed, ".ui")
}

func isOverlayFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
