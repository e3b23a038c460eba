package timezones

// EmptySearchMode decides what a search without a query returns.
type EmptySearchMode string

const (
	// EmptySearchNone returns nothing for an empty query.
	EmptySearchNone EmptySearchMode = "none"
	// EmptySearchTop returns the first zones of the list up to the limit.
	EmptySearchTop EmptySearchMode = "top"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Options tunes searching and the provider.
type Options struct {
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode

	// Zones replaces the embedded list when non-nil.
	Zones []string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		DefaultLimit:    defaultLimit,
		MaxLimit:        maxLimit,
		EmptySearchMode: EmptySearchNone,
	}
}

// NewOptions applies fns over DefaultOptions. Non-positive limits and an
// empty mode fall back to the defaults.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	opts.normalize()
	return opts
}

func (o *Options) normalize() {
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = defaultLimit
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = maxLimit
	}
	if o.EmptySearchMode == "" {
		o.EmptySearchMode = EmptySearchNone
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) { o.DefaultLimit = limit }
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) { o.EmptySearchMode = mode }
}

// WithZones replaces the embedded zone list. The slice is copied.
func WithZones(zones []string) OptionFn {
	return func(o *Options) {
		if zones == nil {
			o.Zones = nil
			return
		}
		o.Zones = append([]string{}, zones...)
	}
}

// clampLimit maps a requested limit onto [0, MaxLimit]; zero asks for the
// default.
func clampLimit(limit int, opts Options) int {
	switch {
	case limit < 0:
		return 0
	case limit == 0:
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
