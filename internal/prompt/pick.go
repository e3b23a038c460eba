package prompt

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formoptions/pkg/options"
)

// Pick asks for exactly one option. current, when it matches an option's
// string form, is preselected.
func Pick(ctx context.Context, driver Driver, message string, opts []options.Option, current any) (options.Option, error) {
	if len(opts) == 0 {
		return options.Option{}, ErrNoChoices
	}
	cfg := SelectConfig{
		Message:      message,
		Options:      labels(opts),
		DefaultIndex: indexOfValue(opts, current),
	}
	idx, err := driver.Select(ctx, cfg)
	if err != nil {
		return options.Option{}, err
	}
	if idx < 0 || idx >= len(opts) {
		return options.Option{}, fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return opts[idx], nil
}

// PickMany asks for any number of options and returns them in list order.
func PickMany(ctx context.Context, driver Driver, message string, opts []options.Option, current []any) ([]options.Option, error) {
	if len(opts) == 0 {
		return nil, ErrNoChoices
	}
	var defaults []int
	for _, value := range current {
		if idx := indexOfValue(opts, value); idx >= 0 {
			defaults = append(defaults, idx)
		}
	}
	indices, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  message,
		Options:  labels(opts),
		Defaults: defaults,
	})
	if err != nil {
		return nil, err
	}
	out := make([]options.Option, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(opts) {
			return nil, fmt.Errorf("prompt: selection %d out of range", idx)
		}
		out = append(out, opts[idx])
	}
	return out, nil
}

func labels(opts []options.Option) []string {
	out := make([]string, len(opts))
	for idx, opt := range opts {
		out[idx] = opt.Label
	}
	return out
}

func indexOfValue(opts []options.Option, value any) int {
	if value == nil {
		return -1
	}
	want := options.StringForm(value)
	for idx, opt := range opts {
		if options.StringForm(opt.Value) == want {
			return idx
		}
	}
	return -1
}
