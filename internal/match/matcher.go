// Package match implements the query matching shared by every filter
// controller: a trimmed, case-insensitive, literal substring match.
package match

import (
	"regexp"
	"strings"
)

// Matcher tests candidate text against one compiled query
type Matcher struct {
	query string
	re    *regexp.Regexp
}

// Compile builds a Matcher for query. Surrounding whitespace is ignored and
// an empty query matches everything. Regex metacharacters are escaped so
// the query is always matched literally.
func Compile(query string) Matcher {
	q := strings.TrimSpace(query)
	if q == "" {
		return Matcher{}
	}
	return Matcher{
		query: q,
		re:    regexp.MustCompile("(?i)" + Escape(q)),
	}
}

// Escape quotes every regex metacharacter in s
func Escape(s string) string {
	return regexp.QuoteMeta(s)
}

// Empty reports whether the query was blank
func (m Matcher) Empty() bool {
	return m.re == nil
}

// Query returns the trimmed query
func (m Matcher) Query() string {
	return m.query
}

// Match reports whether text contains the query
func (m Matcher) Match(text string) bool {
	if m.re == nil {
		return true
	}
	return m.re.MatchString(text)
}

// MatchAny reports whether any of texts contains the query. With an empty
// query it is true even when texts is empty.
func (m Matcher) MatchAny(texts ...string) bool {
	if m.re == nil {
		return true
	}
	for _, t := range texts {
		if m.re.MatchString(t) {
			return true
		}
	}
	return false
}
