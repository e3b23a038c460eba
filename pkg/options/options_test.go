package options_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formoptions/pkg/options"
	"github.com/goliatone/go-formoptions/pkg/schema"
	"github.com/goliatone/go-formoptions/pkg/uischema"
)

func TestResolve_NoOptionShape(t *testing.T) {
	if got, ok := options.Resolve(&schema.Schema{Type: "string", Title: "Name"}, nil); ok || got != nil {
		t.Fatalf("expected absent result, got %#v (ok=%v)", got, ok)
	}
	if _, ok := options.Resolve(nil, &uischema.Overlay{Title: "x"}); ok {
		t.Fatalf("nil schema should resolve to absent")
	}
}

func TestResolve_EnumIdentityLabels(t *testing.T) {
	s := &schema.Schema{Type: "string", Enum: []any{"Opt1", "Opt2", "Opt3"}}

	got, ok := options.Resolve(s, nil)
	if !ok {
		t.Fatalf("expected options")
	}
	want := []options.Option{
		{Label: "Opt1", Value: "Opt1"},
		{Label: "Opt2", Value: "Opt2"},
		{Label: "Opt3", Value: "Opt3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_EmptyEnum(t *testing.T) {
	got, ok := options.Resolve(&schema.Schema{Enum: []any{}, OneOf: []schema.Schema{{Const: "x"}}}, nil)
	if !ok {
		t.Fatalf("empty enum still resolves")
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestResolve_EnumPositionalNames(t *testing.T) {
	s := &schema.Schema{Enum: []any{"Opt1", "Opt2", "Opt3", "Opt4"}}
	overlay := &uischema.Overlay{Names: uischema.Names{List: []string{"Option1", "", "Option3"}}}

	got, _ := options.Resolve(s, overlay)
	want := []options.Option{
		{Label: "Option1", Value: "Opt1"},
		{Label: "Opt2", Value: "Opt2"},
		{Label: "Option3", Value: "Opt3"},
		{Label: "Opt4", Value: "Opt4"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_EnumMappedNames(t *testing.T) {
	cases := []struct {
		name   string
		values []any
		names  map[string]string
		want   []options.Option
	}{
		{
			name:   "strings",
			values: []any{"person", "phone", "video"},
			names:  map[string]string{"person": "In person", "phone": "By phone", "video": "Via video"},
			want: []options.Option{
				{Label: "In person", Value: "person"},
				{Label: "By phone", Value: "phone"},
				{Label: "Via video", Value: "video"},
			},
		},
		{
			name:   "numbers with gaps",
			values: []any{float64(1), float64(2), float64(3)},
			names:  map[string]string{"1": "One", "3": "Three"},
			want: []options.Option{
				{Label: "One", Value: float64(1)},
				{Label: "2", Value: float64(2)},
				{Label: "Three", Value: float64(3)},
			},
		},
		{
			name:   "duplicates resolve independently",
			values: []any{"a", "b", "a"},
			names:  map[string]string{"a": "Alpha"},
			want: []options.Option{
				{Label: "Alpha", Value: "a"},
				{Label: "b", Value: "b"},
				{Label: "Alpha", Value: "a"},
			},
		},
		{
			name:   "booleans",
			values: []any{true, false},
			names:  map[string]string{"true": "Yes"},
			want: []options.Option{
				{Label: "Yes", Value: true},
				{Label: "false", Value: false},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &schema.Schema{Enum: tc.values}
			got, _ := options.Resolve(s, &uischema.Overlay{Names: uischema.Names{Map: tc.names}})
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_EnumOrder(t *testing.T) {
	cases := []struct {
		name   string
		values []any
		order  []any
		want   []any
	}{
		{name: "wildcard in the middle", values: []any{"a", "b", "c", "d"}, order: []any{"d", "*", "a"}, want: []any{"d", "b", "c", "a"}},
		{name: "no wildcard drops unlisted", values: []any{"a", "b", "c"}, order: []any{"c", "a"}, want: []any{"c", "a"}},
		{name: "unknown tokens are skipped", values: []any{"a", "b"}, order: []any{"z", "b", "*"}, want: []any{"b", "a"}},
		{name: "numeric token matches string value", values: []any{"1", "2"}, order: []any{float64(2), "*"}, want: []any{"2", "1"}},
		{name: "string token matches numeric value", values: []any{float64(1), float64(2)}, order: []any{"2", "1"}, want: []any{float64(2), float64(1)}},
		{name: "repeated wildcard duplicates rest", values: []any{"a", "b", "c"}, order: []any{"*", "b", "*"}, want: []any{"a", "c", "b", "a", "c"}},
		{name: "empty order drops everything", values: []any{"a"}, order: []any{}, want: []any{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := options.Resolve(&schema.Schema{Enum: tc.values}, &uischema.Overlay{Order: tc.order})
			values := make([]any, 0, len(got))
			for _, opt := range got {
				values = append(values, opt.Value)
			}
			if diff := cmp.Diff(tc.want, values); diff != "" {
				t.Fatalf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_EnumMappedNamesWithOrder(t *testing.T) {
	s := &schema.Schema{Type: "number", Enum: []any{float64(0), float64(1), float64(2), float64(3), float64(4)}}
	overlay := &uischema.Overlay{
		Names: uischema.Names{Map: map[string]string{
			"0": "Didn't like it",
			"1": "Meh",
			"2": "OK",
			"3": "Liked it",
			"4": "Loved it",
		}},
		Order: []any{4, 3, 2, 1, 0},
	}

	got, _ := options.Resolve(s, overlay)
	want := []options.Option{
		{Label: "Loved it", Value: float64(4)},
		{Label: "Liked it", Value: float64(3)},
		{Label: "OK", Value: float64(2)},
		{Label: "Meh", Value: float64(1)},
		{Label: "Didn't like it", Value: float64(0)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_FractionalNumbersMatchDecimalKeys(t *testing.T) {
	s := &schema.Schema{Type: "number", Enum: []any{0.000001, 1234567.5, 1e-7}}
	overlay := &uischema.Overlay{
		Names: uischema.Names{Map: map[string]string{"1234567.5": "Big"}},
		Order: []any{"1234567.5", "1e-7"},
	}

	got, _ := options.Resolve(s, overlay)
	want := []options.Option{
		{Label: "Big", Value: 1234567.5},
		{Label: "1e-7", Value: 1e-7},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	plain, _ := options.Resolve(s, nil)
	labels := make([]string, 0, len(plain))
	for _, opt := range plain {
		labels = append(labels, opt.Label)
	}
	if diff := cmp.Diff([]string{"0.000001", "1234567.5", "1e-7"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_EnumObjectsWithPositionalNames(t *testing.T) {
	newYork := map[string]any{"name": "New York", "lat": float64(40), "lon": float64(74)}
	amsterdam := map[string]any{"name": "Amsterdam", "lat": float64(52), "lon": float64(5)}
	s := &schema.Schema{Enum: []any{newYork, amsterdam}}

	got, _ := options.Resolve(s, &uischema.Overlay{Names: uischema.Names{List: []string{"New York", "Amsterdam"}}})
	want := []options.Option{
		{Label: "New York", Value: newYork},
		{Label: "Amsterdam", Value: amsterdam},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	unnamed, _ := options.Resolve(s, nil)
	if unnamed[1].Label != `{"lat":52,"lon":5,"name":"Amsterdam"}` {
		t.Fatalf("object label should fall back to its JSON form, got %q", unnamed[1].Label)
	}
}

func TestResolve_EnumTakesPrecedenceOverAlternatives(t *testing.T) {
	s := &schema.Schema{Enum: []any{"x"}, AnyOf: []schema.Schema{{Const: "y"}}}
	got, _ := options.Resolve(s, nil)
	if diff := cmp.Diff([]options.Option{{Label: "x", Value: "x"}}, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_AlternativesWithoutDiscriminator(t *testing.T) {
	branches := []schema.Schema{
		{Const: "Option1", Title: "Option1 title", Description: "Option1 description"},
		{Const: "Option2", Title: "Option2 title", Description: "Option2 description"},
		{Const: "Option3"},
		{Enum: []any{"Option4"}},
		{Title: "No value"},
	}

	for _, kind := range []string{"anyOf", "oneOf"} {
		t.Run(kind, func(t *testing.T) {
			s := &schema.Schema{Title: "string"}
			if kind == "anyOf" {
				s.AnyOf = branches
			} else {
				s.OneOf = branches
			}

			got, ok := options.Resolve(s, nil)
			if !ok {
				t.Fatalf("expected options")
			}
			want := []options.Option{
				{Schema: &branches[0], Label: "Option1 title", Value: "Option1"},
				{Schema: &branches[1], Label: "Option2 title", Value: "Option2"},
				{Schema: &branches[2], Label: "Option3", Value: "Option3"},
				{Schema: &branches[3], Label: "Option4", Value: "Option4"},
				{Schema: &branches[4], Label: "No value", Value: nil},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_AnyOfPreferredOverOneOf(t *testing.T) {
	s := &schema.Schema{
		AnyOf: []schema.Schema{{Const: "any"}},
		OneOf: []schema.Schema{{Const: "one"}},
	}
	overlay := &uischema.Overlay{
		AnyOf: []uischema.Overlay{{Title: "Any title"}},
		OneOf: []uischema.Overlay{{Title: "One title"}},
	}
	got, _ := options.Resolve(s, overlay)
	if len(got) != 1 || got[0].Label != "Any title" || got[0].Value != "any" {
		t.Fatalf("expected anyOf branch with anyOf overlay, got %#v", got)
	}
}

func TestResolve_AlternativesOverlayTitle(t *testing.T) {
	s := &schema.Schema{
		OneOf: []schema.Schema{
			{Const: "Option", Title: "Schema title", Description: "Option description"},
			{Const: "Other", Title: "Other title"},
		},
	}
	overlay := &uischema.Overlay{OneOf: []uischema.Overlay{{Title: "Alternate"}}}

	got, _ := options.Resolve(s, overlay)
	want := []options.Option{
		{Schema: &s.OneOf[0], Label: "Alternate", Value: "Option"},
		{Schema: &s.OneOf[1], Label: "Other title", Value: "Other"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func animalBranches(withInnerTitles, withBranchTitles bool) []schema.Schema {
	out := make([]schema.Schema, 0, 2)
	for _, pair := range [][2]string{{"dog", "Dog"}, {"fish", "Fish"}} {
		inner := schema.Schema{Type: "string", Const: pair[0]}
		branch := schema.Schema{Type: "object", Properties: map[string]schema.Schema{"animal": inner}}
		if withInnerTitles {
			inner.Title = pair[1]
			branch.Properties["animal"] = inner
		}
		if withBranchTitles {
			branch.Title = pair[1] + " branch"
		}
		out = append(out, branch)
	}
	return out
}

func TestResolve_Discriminator(t *testing.T) {
	cases := []struct {
		name       string
		inner      bool
		branch     bool
		wantLabels []string
	}{
		{name: "titles on branches", branch: true, wantLabels: []string{"Dog branch", "Fish branch"}},
		{name: "titles on discriminator property", inner: true, wantLabels: []string{"Dog", "Fish"}},
		{name: "inner title beats branch title", inner: true, branch: true, wantLabels: []string{"Dog", "Fish"}},
		{name: "value as fallback", wantLabels: []string{"dog", "fish"}},
	}

	for _, tc := range cases {
		for _, kind := range []string{"anyOf", "oneOf"} {
			t.Run(tc.name+"/"+kind, func(t *testing.T) {
				branches := animalBranches(tc.inner, tc.branch)
				s := &schema.Schema{Title: "string", Discriminator: &schema.Discriminator{PropertyName: "animal"}}
				if kind == "anyOf" {
					s.AnyOf = branches
				} else {
					s.OneOf = branches
				}

				got, _ := options.Resolve(s, &uischema.Overlay{})
				want := []options.Option{
					{Schema: &branches[0], Label: tc.wantLabels[0], Value: "dog"},
					{Schema: &branches[1], Label: tc.wantLabels[1], Value: "fish"},
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Fatalf("options mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestResolve_DiscriminatorPrefersDefaultOverConst(t *testing.T) {
	s := &schema.Schema{
		Discriminator: &schema.Discriminator{PropertyName: "kind"},
		OneOf: []schema.Schema{
			{Properties: map[string]schema.Schema{"kind": {Default: "preset", Const: "fixed"}}},
			{Properties: map[string]schema.Schema{"other": {Const: "x"}}},
		},
	}
	got, _ := options.Resolve(s, nil)
	want := []options.Option{
		{Schema: &s.OneOf[0], Label: "preset", Value: "preset"},
		{Schema: &s.OneOf[1], Label: "", Value: nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_DiscriminatorExplicitNullDefault(t *testing.T) {
	s := &schema.Schema{
		Discriminator: &schema.Discriminator{PropertyName: "kind"},
		OneOf: []schema.Schema{
			{Title: "Unset", Properties: map[string]schema.Schema{"kind": {DefaultSet: true, Const: "fixed"}}},
			{Properties: map[string]schema.Schema{"kind": {Const: "fixed"}}},
		},
	}
	got, _ := options.Resolve(s, nil)
	want := []options.Option{
		{Schema: &s.OneOf[0], Label: "Unset", Value: nil},
		{Schema: &s.OneOf[1], Label: "fixed", Value: "fixed"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_SelectorOverride(t *testing.T) {
	branches := []schema.Schema{
		{Properties: map[string]schema.Schema{
			"animal": {Title: "Dog", Const: "dog"},
			"kind":   {Title: "Mammal", Const: "mammal"},
		}},
	}

	t.Run("without discriminator", func(t *testing.T) {
		s := &schema.Schema{AnyOf: branches}
		got, _ := options.Resolve(s, &uischema.Overlay{SelectorField: "animal"})
		want := []options.Option{{Schema: &branches[0], Label: "Dog", Value: "dog"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("options mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("overrides discriminator", func(t *testing.T) {
		s := &schema.Schema{AnyOf: branches, Discriminator: &schema.Discriminator{PropertyName: "kind"}}
		got, _ := options.Resolve(s, &uischema.Overlay{SelectorField: "animal"})
		if got[0].Value != "dog" || got[0].Label != "Dog" {
			t.Fatalf("overlay selector should win, got %#v", got[0])
		}
		plain, _ := options.Resolve(s, nil)
		if plain[0].Value != "mammal" || plain[0].Label != "Mammal" {
			t.Fatalf("discriminator should apply without override, got %#v", plain[0])
		}
	})

	t.Run("overlay branch title wins", func(t *testing.T) {
		s := &schema.Schema{AnyOf: branches}
		overlay := &uischema.Overlay{SelectorField: "animal", AnyOf: []uischema.Overlay{{Title: "Alternate"}}}
		got, _ := options.Resolve(s, overlay)
		want := []options.Option{{Schema: &branches[0], Label: "Alternate", Value: "dog"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("options mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestResolve_OptionSchemaAliasesBranch(t *testing.T) {
	s := &schema.Schema{OneOf: []schema.Schema{{Const: "a"}, {Const: "b"}}}
	got, _ := options.Resolve(s, nil)
	for idx := range got {
		if got[idx].Schema != &s.OneOf[idx] {
			t.Fatalf("option %d schema should point at the caller's branch", idx)
		}
	}
}

func TestResolve_DoesNotMutateInputs(t *testing.T) {
	s := &schema.Schema{Enum: []any{"a", "b", "c"}}
	overlay := &uischema.Overlay{
		Names: uischema.Names{List: []string{"A", "B", "C"}},
		Order: []any{"c", "*"},
	}
	wantSchema := schema.Schema{Enum: []any{"a", "b", "c"}}
	wantOverlay := uischema.Overlay{
		Names: uischema.Names{List: []string{"A", "B", "C"}},
		Order: []any{"c", "*"},
	}

	first, _ := options.Resolve(s, overlay)
	second, _ := options.Resolve(s, overlay)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("resolve should be deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(wantSchema, *s); diff != "" {
		t.Fatalf("schema mutated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantOverlay, *overlay); diff != "" {
		t.Fatalf("overlay mutated (-want +got):\n%s", diff)
	}
}

func TestConstant(t *testing.T) {
	cases := []struct {
		name   string
		schema *schema.Schema
		want   any
		ok     bool
	}{
		{name: "nil", schema: nil},
		{name: "const", schema: &schema.Schema{Const: "x", Enum: []any{"y"}}, want: "x", ok: true},
		{name: "single enum", schema: &schema.Schema{Enum: []any{float64(3)}}, want: float64(3), ok: true},
		{name: "multi enum", schema: &schema.Schema{Enum: []any{"a", "b"}}},
		{name: "default only", schema: &schema.Schema{Default: "d"}},
		{name: "explicit null const", schema: &schema.Schema{ConstSet: true, Enum: []any{"y"}}, want: nil, ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := options.Constant(tc.schema)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("Constant: want (%v, %v) got (%v, %v)", tc.want, tc.ok, got, ok)
			}
		})
	}
}
