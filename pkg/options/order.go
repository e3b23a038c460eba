package options

import "github.com/goliatone/go-formoptions/pkg/uischema"

// ApplyOrder arranges opts as listed by order. Tokens match option values by
// string form; tokens with no matching option are skipped. The wildcard "*"
// expands to every option not named by another token, in original order.
// Without a wildcard, unlisted options are dropped. A second wildcard repeats
// the remaining options. When several options share a string form, a token
// resolves to the last of them.
func ApplyOrder(opts []Option, order []any) []Option {
	byValue := make(map[string]Option, len(opts))
	for _, opt := range opts {
		byValue[StringForm(opt.Value)] = opt
	}

	listed := make(map[string]struct{}, len(order))
	for _, token := range order {
		if isWildcard(token) {
			continue
		}
		listed[StringForm(token)] = struct{}{}
	}

	var rest []Option
	for _, opt := range opts {
		if _, ok := listed[StringForm(opt.Value)]; !ok {
			rest = append(rest, opt)
		}
	}

	out := make([]Option, 0, len(opts))
	for _, token := range order {
		if isWildcard(token) {
			out = append(out, rest...)
			continue
		}
		if opt, ok := byValue[StringForm(token)]; ok {
			out = append(out, opt)
		}
	}
	return out
}

func isWildcard(token any) bool {
	value, ok := token.(string)
	return ok && value == uischema.WildcardToken
}
