// Package dispatch routes tokenized queries through an ordered
// pattern-action table.
package dispatch

import (
	"context"
	"strings"

	"github.com/tokenwise/factbot/match"
)

var (
	// NoAnswers is the answer list for a query that matched a
	// pattern whose action produced nothing.
	NoAnswers = []string{"No answers"}

	// DontUnderstand is the answer list for a query that no
	// pattern in the table matched.
	DontUnderstand = []string{"I don't understand"}
)

// Entry pairs one pattern with the action to run when that pattern
// matches.
type Entry struct {
	// Doc is optional documentation for this entry.  (See
	// tools.RenderTableHTML.)
	Doc string

	Pattern match.Pattern
	Action  Action
}

// Table is an ordered pattern-action table.
//
// Order is match priority: Dispatch uses the first entry whose
// pattern matches, so (for example) a termination entry declared
// last really is considered last.  A Table must not be mutated once
// it's in use.
type Table []*Entry

// Outcome is the result of dispatching one query.
//
// Termination is a tagged variant here rather than an error so that
// callers handle it with ordinary control flow.
type Outcome struct {
	// Answers is the list of answer lines for the query.  Never
	// empty unless Halt is set.
	Answers []string

	// Halt reports that the matched action requested the end of
	// the session.
	Halt bool
}

// Dispatch finds the first entry whose pattern matches the input
// tokens and runs its action with the captures.
//
// A matched action that produces no answers yields NoAnswers; no
// matching pattern at all yields DontUnderstand.  An action error
// (a lookup failure, typically) propagates unwrapped: deciding how
// to recover belongs to the caller, not here.
func (t Table) Dispatch(ctx context.Context, tokens []string) (*Outcome, error) {
	for _, e := range t {
		caps, ok := match.Match(e.Pattern, tokens)
		if !ok {
			continue
		}
		exe, err := e.Action.Exec(ctx, caps)
		if err != nil {
			return nil, err
		}
		if exe == nil {
			exe = &Execution{}
		}
		if exe.Halt {
			return &Outcome{Halt: true}, nil
		}
		if len(exe.Answers) == 0 {
			return &Outcome{Answers: NoAnswers}, nil
		}
		return &Outcome{Answers: exe.Answers}, nil
	}
	return &Outcome{Answers: DontUnderstand}, nil
}

// Tokenize normalizes a raw query line the way the interactive
// callers do: lower-cased, query marks stripped, split on
// whitespace.
func Tokenize(line string) []string {
	line = strings.ToLower(line)
	line = strings.ReplaceAll(line, "?", "")
	return strings.Fields(line)
}
