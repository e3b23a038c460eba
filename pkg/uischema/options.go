package uischema

// Options is the set of directives the option resolver reads from an overlay
// fragment. Empty strings and nil slices mean the directive is absent.
type Options struct {
	Title         string
	Names         Names
	Order         []any
	SelectorField string
}

// HasOrder reports whether an order directive was supplied. An empty but
// present directive still applies and drops every option.
func (o Options) HasOrder() bool {
	return o.Order != nil
}

// Options extracts the recognized directives. A nil overlay yields the zero
// value.
func (o *Overlay) Options() Options {
	if o == nil {
		return Options{}
	}
	return Options{
		Title:         o.Title,
		Names:         o.Names,
		Order:         o.Order,
		SelectorField: o.SelectorField,
	}
}
