package options

// labelSource yields a candidate label; "" means it has nothing to offer.
type labelSource func() string

// labelChain evaluates sources in order and stops at the first non-empty
// label. Each builder spells out its own chain so the precedence reads top to
// bottom.
type labelChain []labelSource

func (c labelChain) resolve() string {
	for _, source := range c {
		if source == nil {
			continue
		}
		if label := source(); label != "" {
			return label
		}
	}
	return ""
}

func fixed(label string) labelSource {
	return func() string { return label }
}

func valueLabel(value any) labelSource {
	return func() string { return StringForm(value) }
}
