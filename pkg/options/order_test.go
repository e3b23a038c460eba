package options_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formoptions/pkg/options"
)

func TestApplyOrder_DuplicateValuesResolveToLast(t *testing.T) {
	opts := []options.Option{
		{Label: "first a", Value: "a"},
		{Label: "b", Value: "b"},
		{Label: "second a", Value: "a"},
	}
	got := options.ApplyOrder(opts, []any{"a", "*"})
	want := []options.Option{
		{Label: "second a", Value: "a"},
		{Label: "b", Value: "b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyOrder_WildcardOnly(t *testing.T) {
	opts := []options.Option{{Label: "x", Value: true}, {Label: "y", Value: false}}
	got := options.ApplyOrder(opts, []any{"*"})
	if diff := cmp.Diff(opts, got); diff != "" {
		t.Fatalf("wildcard-only order should keep original order (-want +got):\n%s", diff)
	}
}

func TestApplyOrder_BooleanTokens(t *testing.T) {
	opts := []options.Option{{Label: "yes", Value: true}, {Label: "no", Value: false}}
	got := options.ApplyOrder(opts, []any{"false", true})
	want := []options.Option{{Label: "no", Value: false}, {Label: "yes", Value: true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyOrder_WildcardMustBeString(t *testing.T) {
	opts := []options.Option{{Label: "a", Value: "a"}}
	if got := options.ApplyOrder(opts, []any{[]any{"*"}}); len(got) != 0 {
		t.Fatalf("non-string wildcard should not expand, got %#v", got)
	}
}
