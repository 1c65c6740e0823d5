package match

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

type MatchTest struct {
	Pattern string
	Input   string
	Want    []string
	NoMatch bool
	Title   string
}

func (mt MatchTest) Name(i int) string {
	if mt.Title == "" {
		return fmt.Sprintf("%03d", i)
	}
	return fmt.Sprintf("%03d %s", i, mt.Title)
}

func (mt MatchTest) Run(t *testing.T) {
	var input []string
	if mt.Input != "" {
		input = strings.Fields(mt.Input)
	}
	got, ok := Match(ParsePattern(mt.Pattern), input)
	if mt.NoMatch {
		if ok {
			t.Fatalf("unexpected match: %#v", got)
		}
		return
	}
	if !ok {
		t.Fatal("expected a match")
	}
	want := mt.Want
	if want == nil {
		want = []string{}
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, wanted %#v", got, want)
	}
}

var matchTests = []MatchTest{
	{
		Title:   "empty pattern, empty input",
		Pattern: "",
		Input:   "",
	},
	{
		Title:   "empty pattern, non-empty input",
		Pattern: "",
		Input:   "hello",
		NoMatch: true,
	},
	{
		Title:   "literals only, equal",
		Pattern: "how are you",
		Input:   "how are you",
	},
	{
		Title:   "literals only, differing token",
		Pattern: "how are you",
		Input:   "how are they",
		NoMatch: true,
	},
	{
		Title:   "literals only, input too long",
		Pattern: "how are",
		Input:   "how are you",
		NoMatch: true,
	},
	{
		Title:   "literals only, input too short",
		Pattern: "how are you",
		Input:   "how are",
		NoMatch: true,
	},
	{
		Title:   "single multi, whole input",
		Pattern: "%",
		Input:   "a b c",
		Want:    []string{"a b c"},
	},
	{
		Title:   "single multi, empty input",
		Pattern: "%",
		Input:   "",
		Want:    []string{""},
	},
	{
		Title:   "multi in the middle",
		Pattern: "when was % born",
		Input:   "when was ada lovelace born",
		Want:    []string{"ada lovelace"},
	},
	{
		Title:   "multi takes nothing",
		Pattern: "when was % born",
		Input:   "when was born",
		Want:    []string{""},
	},
	{
		Title:   "multi then stray token",
		Pattern: "when was % born",
		Input:   "when was ada lovelace born yesterday",
		NoMatch: true,
	},
	{
		Title:   "single and multi together",
		Pattern: "what is the length of runway _ at %",
		Input:   "what is the length of runway 4l at heathrow",
		Want:    []string{"4l", "heathrow"},
	},
	{
		Title:   "single needs a token",
		Pattern: "runway _",
		Input:   "runway",
		NoMatch: true,
	},
	{
		Title:   "single takes exactly one token",
		Pattern: "runway _",
		Input:   "runway 4l extra",
		NoMatch: true,
	},
	{
		Title:   "adjacent multis, leftmost shortest",
		Pattern: "% %",
		Input:   "a b",
		Want:    []string{"", "a b"},
	},
	{
		Title:   "adjacent multis, empty input",
		Pattern: "% %",
		Input:   "",
		Want:    []string{"", ""},
	},
	{
		Title:   "multi at the start",
		Pattern: "% born",
		Input:   "ada lovelace born",
		Want:    []string{"ada lovelace"},
	},
	{
		Title:   "multi must backtrack past a literal",
		Pattern: "% b c",
		Input:   "a b b c",
		Want:    []string{"a b"},
	},
	{
		Title:   "multi between singles",
		Pattern: "_ % _",
		Input:   "a b c d",
		Want:    []string{"a", "b c", "d"},
	},
	{
		Title:   "all wildcards, empty input",
		Pattern: "% % %",
		Input:   "",
		Want:    []string{"", "", ""},
	},
	{
		Title:   "marker in input is just a token",
		Pattern: "a b",
		Input:   "a %",
		NoMatch: true,
	},
	{
		Title:   "marker in input matched by a wildcard",
		Pattern: "a _",
		Input:   "a %",
		Want:    []string{"%"},
	},
}

func TestMatch(t *testing.T) {
	for i, mt := range matchTests {
		t.Run(mt.Name(i), func(t *testing.T) {
			mt.Run(t)
		})
	}
}

func TestMatchCaptureArity(t *testing.T) {
	// Every successful match returns exactly one capture per
	// wildcard, however many tokens got consumed.
	patterns := []string{
		"%", "% %", "_ %", "% _ %", "a % b", "% a % b %", "_ _ _",
	}
	inputs := [][]string{
		{},
		{"a"},
		{"a", "b"},
		{"a", "b", "a", "b"},
		{"x", "a", "y", "b", "z"},
	}
	for _, ps := range patterns {
		p := ParsePattern(ps)
		k := DefaultMatcher.Wildcards(p)
		for _, input := range inputs {
			caps, ok := Match(p, input)
			if !ok {
				continue
			}
			if len(caps) != k {
				t.Fatalf("pattern %q on %#v: %d captures, wanted %d",
					ps, input, len(caps), k)
			}
		}
	}
}

func TestMatchRejoin(t *testing.T) {
	// For a pattern of nothing but Multi wildcards, the captures
	// rejoin to the input.
	for _, input := range [][]string{
		{},
		{"a"},
		{"a", "b", "c"},
		{"ada", "lovelace"},
	} {
		for _, ps := range []string{"%", "% %", "% % %"} {
			caps, ok := Match(ParsePattern(ps), input)
			if !ok {
				t.Fatalf("pattern %q should match %#v", ps, input)
			}
			joined := strings.Join(input, " ")
			parts := make([]string, 0, len(caps))
			for _, c := range caps {
				if c != "" {
					parts = append(parts, c)
				}
			}
			if got := strings.Join(parts, " "); got != joined {
				t.Fatalf("pattern %q on %#v: captures rejoin to %q, wanted %q",
					ps, input, got, joined)
			}
		}
	}
}

func TestMatcherCustomMarkers(t *testing.T) {
	m := &Matcher{Single: "?", Multi: "*"}
	caps, ok := m.Match(Pattern{"when", "was", "*", "born"},
		[]string{"when", "was", "ada", "lovelace", "born"})
	if !ok {
		t.Fatal("expected a match")
	}
	if !reflect.DeepEqual(caps, []string{"ada lovelace"}) {
		t.Fatal(caps)
	}

	// With custom markers, the defaults are literals again.
	if _, ok := m.Match(Pattern{"%"}, []string{"a"}); ok {
		t.Fatal("'%' should have been a literal")
	}
}
