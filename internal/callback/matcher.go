// Package callback matches redirect URIs against registered callback
// URLs. A registered URL accepts itself and any sub-path under it.
package callback

import (
	"fmt"
	"regexp"
)

// Matcher reports whether a redirect URI is covered by one registered
// callback URL.
type Matcher struct {
	re *regexp.Regexp
}

// Compile builds a Matcher for a registered callback URL. The matcher
// accepts the exact URL and any URL extending it with a "/" sub-path,
// optionally followed by a query string.
func Compile(callbackURL string) *Matcher {
	quoted := regexp.QuoteMeta(callbackURL)
	return &Matcher{
		re: regexp.MustCompile(fmt.Sprintf("^%s$|^%s/", quoted, quoted)),
	}
}

// Match reports whether redirectURI is the callback URL or one of its
// sub-paths.
func (m *Matcher) Match(redirectURI string) bool {
	return m.re.MatchString(redirectURI)
}
