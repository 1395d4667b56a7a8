// Package htmlsanitize strips unsafe markup from user-supplied HTML.
//
// Donation descriptions and pickup notes may contain light formatting
// entered by donors; everything else (scripts, event handlers,
// javascript: URLs, form elements) is removed before storage.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Tables with inline alignment are allowed so structured
	// descriptions survive sanitization.
	p.AllowAttrs("style").OnElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")

	return p
}

// Sanitize returns s with disallowed tags and attributes removed.
// The empty string passes through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
