package options

import "github.com/goliatone/go-formoptions/pkg/uischema"

func fromEnum(values []any, directives uischema.Options) []Option {
	out := make([]Option, 0, len(values))
	for idx, value := range values {
		key := StringForm(value)
		label := labelChain{
			func() string {
				name, _ := directives.Names.Lookup(idx, key)
				return name
			},
			fixed(key),
		}.resolve()
		out = append(out, Option{Label: label, Value: value})
	}
	if directives.HasOrder() {
		out = ApplyOrder(out, directives.Order)
	}
	return out
}
