// Package actor decides whether an account login belongs to one of
// the automated reviewers the tools are looking for.
package actor

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DefaultLogins are the bot accounts recognized when no explicit
// actor configuration disables them.
var DefaultLogins = []string{
	"codex",
	"codex[bot]",
	"openai-codex",
	"openai-codex[bot]",
}

// ErrNoMatchers reports a matcher with no exact logins and no
// pattern. It is checked before any gh invocation so a misconfigured
// run fails fast.
var ErrNoMatchers = errors.New("no actor matcher configured; set --actor, --actor-regex, or keep defaults")

// Options configures a Matcher.
type Options struct {
	// Logins are exact account names to match, any case.
	Logins []string

	// Pattern is a case-insensitive regular expression searched
	// (not anchored) against the raw login. Empty disables it.
	Pattern string

	// NoDefaults drops DefaultLogins from the exact set.
	NoDefaults bool
}

// Matcher matches logins against a lowercase exact set and an
// optional pattern. The two complement each other: a login is
// accepted when either side matches.
type Matcher struct {
	exact      map[string]bool
	pattern    *regexp.Regexp
	patternSrc string
}

// New builds a Matcher from opts. It returns ErrNoMatchers when both
// the exact set and the pattern end up empty.
func New(opts Options) (*Matcher, error) {
	exact := make(map[string]bool)
	if !opts.NoDefaults {
		for _, login := range DefaultLogins {
			exact[strings.ToLower(login)] = true
		}
	}
	for _, login := range opts.Logins {
		exact[strings.ToLower(login)] = true
	}

	var pattern *regexp.Regexp
	if opts.Pattern != "" {
		re, err := regexp.Compile("(?i)" + opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid actor regex %q: %w", opts.Pattern, err)
		}
		pattern = re
	}

	if len(exact) == 0 && pattern == nil {
		return nil, ErrNoMatchers
	}

	return &Matcher{
		exact:      exact,
		pattern:    pattern,
		patternSrc: opts.Pattern,
	}, nil
}

// Match reports whether login belongs to a configured actor.
func (m *Matcher) Match(login string) bool {
	if m.exact[strings.ToLower(login)] {
		return true
	}
	return m.pattern != nil && m.pattern.MatchString(login)
}

// Logins returns the configured exact logins, lowercased and sorted.
func (m *Matcher) Logins() []string {
	logins := make([]string, 0, len(m.exact))
	for login := range m.exact {
		logins = append(logins, login)
	}
	sort.Strings(logins)
	return logins
}

// Pattern returns the raw regex source the Matcher was built with,
// or "" when none was configured.
func (m *Matcher) Pattern() string {
	return m.patternSrc
}
