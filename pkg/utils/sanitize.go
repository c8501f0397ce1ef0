package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict policy: drop every tag and attribute, keep text content only.
var sanitizePolicy = bluemonday.StrictPolicy()

// Sanitize strips all markup from free-text input before it reaches the
// store. Entities introduced by the sanitizer (&amp; etc.) are unescaped
// back so plain text round-trips unchanged.
func Sanitize(input string) string {
	out := sanitizePolicy.Sanitize(input)
	out = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&#34;", `"`,
		"&#39;", "'",
	).Replace(out)
	return strings.TrimSpace(out)
}
