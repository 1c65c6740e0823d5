// Package qa defines the standard question-answering pattern table.
package qa

import (
	"context"
	"strings"

	"github.com/tokenwise/factbot/dispatch"
	"github.com/tokenwise/factbot/match"
	"github.com/tokenwise/factbot/wiki"
)

// Lookup is the field-lookup capability the actions call into.
//
// *wiki.Client implements it.
type Lookup interface {
	LookupField(ctx context.Context, topic string, field wiki.Field) (string, error)
}

// Actions returns the named actions for the standard table, bound to
// the given Lookup.
//
// Lookup failures pass through the actions untouched.  The session
// driver, not this layer, decides what a failed lookup means to the
// user.
func Actions(lookup Lookup) map[string]dispatch.Action {
	answer := func(value string, err error) (*dispatch.Execution, error) {
		if err != nil {
			return nil, err
		}
		return dispatch.NewExecution(value), nil
	}

	return map[string]dispatch.Action{
		// Captures: the person's name.
		"birthDate": &dispatch.FuncAction{
			F: func(ctx context.Context, captures []string) (*dispatch.Execution, error) {
				v, err := lookup.LookupField(ctx, strings.Join(captures, " "), wiki.BirthDate)
				return answer(v, err)
			},
		},

		// Captures: the planet's name.
		"polarRadius": &dispatch.FuncAction{
			F: func(ctx context.Context, captures []string) (*dispatch.Execution, error) {
				v, err := lookup.LookupField(ctx, captures[0], wiki.PolarRadius)
				return answer(v, err)
			},
		},

		// Captures: the school's name.
		"address": &dispatch.FuncAction{
			F: func(ctx context.Context, captures []string) (*dispatch.Execution, error) {
				v, err := lookup.LookupField(ctx, strings.Join(captures, " "), wiki.Address)
				return answer(v, err)
			},
		},

		// Captures: the airport's name.  The value is in feet.
		"elevation": &dispatch.FuncAction{
			F: func(ctx context.Context, captures []string) (*dispatch.Execution, error) {
				v, err := lookup.LookupField(ctx, strings.Join(captures, " "), wiki.Elevation)
				if err != nil {
					return nil, err
				}
				return dispatch.NewExecution(v + " ft"), nil
			},
		},

		// Captures: the runway's name, then the airport's name.
		"runwayLength": &dispatch.FuncAction{
			F: func(ctx context.Context, captures []string) (*dispatch.Execution, error) {
				v, err := lookup.LookupField(ctx, captures[1], wiki.RunwayLength(captures[0]))
				if err != nil {
					return nil, err
				}
				return dispatch.NewExecution(v + " ft"), nil
			},
		},

		// bye ends the session.
		"bye": &dispatch.FuncAction{
			F: func(ctx context.Context, captures []string) (*dispatch.Execution, error) {
				return &dispatch.Execution{Halt: true}, nil
			},
		},
	}
}

// defaultEntries is the standard table in declaration order, which
// is match-priority order.  bye is deliberately last: it gets no
// special treatment.
var defaultEntries = []struct {
	pattern string
	action  string
	doc     string
}{
	{"when was % born", "birthDate", "Birth date of the named person."},
	{"what is the polar radius of %", "polarRadius", "Polar radius of the named planet, in km."},
	{"what is the address of %", "address", "Street address of the named school."},
	{"what is the elevation of %", "elevation", "Elevation of the named airport, in feet."},
	{"what is the length of runway _ at %", "runwayLength", "Length of the named runway at the named airport."},
	{"bye", "bye", "Ends the session."},
}

// DefaultTable builds the standard table bound to the given Lookup.
func DefaultTable(lookup Lookup) dispatch.Table {
	actions := Actions(lookup)
	table := make(dispatch.Table, 0, len(defaultEntries))
	for _, e := range defaultEntries {
		table = append(table, &dispatch.Entry{
			Doc:     e.doc,
			Pattern: match.ParsePattern(e.pattern),
			Action:  actions[e.action],
		})
	}
	return table
}

// DefaultTableSource is the declarative form of the standard table,
// for callers that want to write it out, render it, or extend it.
func DefaultTableSource() *dispatch.TableSource {
	entries := make([]*dispatch.EntrySource, 0, len(defaultEntries))
	for _, e := range defaultEntries {
		entries = append(entries, &dispatch.EntrySource{
			Doc:     e.doc,
			Pattern: e.pattern,
			Action:  e.action,
		})
	}
	return &dispatch.TableSource{
		Name:    "standard",
		Doc:     "The standard Wikipedia question-answering table.",
		Entries: entries,
	}
}
