package timezones

import (
	"slices"
	"strings"

	"github.com/goliatone/go-formoptions/pkg/options"
)

// Search returns the zones whose name contains query, ignoring case. Zones
// starting with the query come before the other hits; each group is sorted.
// An empty query yields nothing, or the head of zones under EmptySearchTop.
func Search(zones []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		return slices.Clone(zones[:min(limit, len(zones))])
	}

	var leading, inner []string
	for _, zone := range zones {
		lower := strings.ToLower(zone)
		switch {
		case strings.HasPrefix(lower, needle):
			leading = append(leading, zone)
		case strings.Contains(lower, needle):
			inner = append(inner, zone)
		}
	}
	slices.Sort(leading)
	slices.Sort(inner)

	hits := append(leading, inner...)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	if hits == nil {
		return []string{}
	}
	return hits
}

// SearchOptions is Search with every zone turned into an option labelled by
// its identifier.
func SearchOptions(zones []string, query string, limit int, opts Options) []options.Option {
	hits := Search(zones, query, limit, opts)
	if len(hits) == 0 {
		return nil
	}
	out := make([]options.Option, len(hits))
	for idx, zone := range hits {
		out[idx] = options.Option{Label: zone, Value: zone}
	}
	return out
}
