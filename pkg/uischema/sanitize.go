package uischema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeText strips markup from overlay-supplied text. Labels end up inside
// option elements and terminal prompts, so only the text content survives;
// entities escaped by the policy are decoded back to plain characters.
func SanitizeText(raw string) string {
	if raw == "" || !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	cleaned := textSanitizer().Sanitize(raw)
	return html.UnescapeString(cleaned)
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func sanitizeOverlay(o *Overlay) {
	if o == nil {
		return
	}
	o.Title = SanitizeText(o.Title)
	for idx, name := range o.Names.List {
		o.Names.List[idx] = SanitizeText(name)
	}
	for key, name := range o.Names.Map {
		o.Names.Map[key] = SanitizeText(name)
	}
	for idx := range o.OneOf {
		sanitizeOverlay(&o.OneOf[idx])
	}
	for idx := range o.AnyOf {
		sanitizeOverlay(&o.AnyOf[idx])
	}
	sanitizeOverlay(o.Items)
	for key, child := range o.Properties {
		sanitizeOverlay(&child)
		o.Properties[key] = child
	}
}
