// Package sanitize cleans free text typed into clinical forms before it is
// sent to the API.
package sanitize

import (
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func strict() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text strips markup and control characters (keeping newlines and tabs)
// and trims the result. Entities that the policy escapes are decoded again,
// so "fever & cough" stays as typed.
func Text(s string) string {
	s = strings.TrimSpace(Controls(s))
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict().Sanitize(s)))
}

// Controls removes NUL and other control characters except \n, \r and \t.
func Controls(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
