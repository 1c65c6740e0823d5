// Package match implements the core token-sequence pattern matcher.
package match

import (
	"strings"
)

var (
	// Single is the default marker for the wildcard that matches
	// exactly one input token.
	Single = "_"

	// Multi is the default marker for the wildcard that matches
	// zero or more input tokens.
	Multi = "%"
)

// Pattern is an ordered sequence of literal tokens and wildcard
// markers.
//
// A Pattern should be treated as immutable once it's in use.
type Pattern []string

// ParsePattern splits a source string on whitespace.
//
//	ParsePattern("when was % born")
func ParsePattern(s string) Pattern {
	return Pattern(strings.Fields(s))
}

// Matcher carries the wildcard marker configuration.
//
// Markers are only special on the pattern side.  An input token that
// happens to equal a marker is just a token.
type Matcher struct {
	// Single is the marker for the one-token wildcard.
	Single string

	// Multi is the marker for the zero-or-more-tokens wildcard.
	Multi string
}

// DefaultMatcher is the Matcher that the package-level Match uses.
var DefaultMatcher = NewMatcher()

// NewMatcher makes a Matcher with the default markers.
func NewMatcher() *Matcher {
	return &Matcher{
		Single: Single,
		Multi:  Multi,
	}
}

// IsSingle reports whether the pattern element is the one-token
// wildcard.
func (m *Matcher) IsSingle(s string) bool {
	return s == m.Single
}

// IsMulti reports whether the pattern element is the
// zero-or-more-tokens wildcard.
func (m *Matcher) IsMulti(s string) bool {
	return s == m.Multi
}

// IsLiteral reports whether the pattern element is a plain token.
func (m *Matcher) IsLiteral(s string) bool {
	return !m.IsSingle(s) && !m.IsMulti(s)
}

// Wildcards returns the number of wildcard markers in the pattern,
// which is also the number of captures a successful Match returns.
func (m *Matcher) Wildcards(p Pattern) int {
	n := 0
	for _, t := range p {
		if !m.IsLiteral(t) {
			n++
		}
	}
	return n
}

// Match compares the pattern against the input tokens.
//
// On success, Match returns one capture per wildcard, in the order
// the wildcards appear in the pattern.  A Single wildcard captures
// the token it consumed; a Multi wildcard captures the space-joined
// run of tokens it consumed, which is "" when it consumed nothing.
//
// A failed match returns (nil, false).  That's a normal result, not
// an error: the pattern just doesn't describe the input.
//
// A Multi wildcard tries consumption lengths in increasing order and
// backtracks when the rest of the pattern can't match the rest of
// the input.  So when several splits would work, the leftmost Multi
// takes as few tokens as possible: matching ["%","%"] against
// ["a","b"] gives ["", "a b"].
func (m *Matcher) Match(p Pattern, input []string) ([]string, bool) {
	return m.match(p, input, make([]string, 0, m.Wildcards(p)))
}

func (m *Matcher) match(p Pattern, input []string, acc []string) ([]string, bool) {
	if len(p) == 0 {
		if len(input) == 0 {
			return acc, true
		}
		return nil, false
	}

	switch head := p[0]; {
	case m.IsMulti(head):
		// Shortest consumption first.  A failed split backs out,
		// and this wildcard tries the next longer one.
		for n := 0; n <= len(input); n++ {
			capture := strings.Join(input[:n], " ")
			if caps, ok := m.match(p[1:], input[n:], append(acc, capture)); ok {
				return caps, true
			}
		}
		return nil, false

	case m.IsSingle(head):
		if len(input) == 0 {
			return nil, false
		}
		return m.match(p[1:], input[1:], append(acc, input[0]))

	default:
		if len(input) == 0 || input[0] != head {
			return nil, false
		}
		return m.match(p[1:], input[1:], acc)
	}
}

// Match uses the DefaultMatcher.
func Match(p Pattern, input []string) ([]string, bool) {
	return DefaultMatcher.Match(p, input)
}
