package timezones

import (
	"context"

	"github.com/goliatone/go-formoptions/pkg/sources"
)

// SourceName is the name the provider is usually registered under.
const SourceName = "timezones"

// Provider returns an option source over the zone list. Recognised params:
// "query" filters zones like Search and "limit" caps the result. Without a
// query every zone is returned, up to limit when one is given.
func Provider(fns ...OptionFn) sources.Provider {
	opts := NewOptions(fns...)
	return sources.ProviderFunc(func(ctx context.Context, params sources.Params) ([]any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		zones := opts.Zones
		if zones == nil {
			loaded, err := DefaultZones()
			if err != nil {
				return nil, err
			}
			zones = loaded
		}

		limit, hasLimit := params.Int("limit")
		query := params.String("query")

		var matched []string
		switch {
		case query != "":
			matched = Search(zones, query, limit, opts)
		case hasLimit:
			top := opts
			top.EmptySearchMode = EmptySearchTop
			matched = Search(zones, "", limit, top)
		default:
			matched = zones
		}

		out := make([]any, len(matched))
		for idx, zone := range matched {
			out[idx] = zone
		}
		return out, nil
	})
}

// Register adds the provider to reg under SourceName.
func Register(reg *sources.Registry, fns ...OptionFn) error {
	return reg.Register(SourceName, Provider(fns...))
}
