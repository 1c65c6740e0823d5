package dispatch

import (
	"context"
	"fmt"
	"io/ioutil"

	"github.com/tokenwise/factbot/match"

	"github.com/jsccast/yaml"
)

// EntrySource is the declarative form of one table entry.
//
// Action is either the name of a registered Go action or a map with
// "interpreter" and "source" properties for a scripted action.
type EntrySource struct {
	Doc     string      `json:"doc,omitempty" yaml:",omitempty"`
	Pattern string      `json:"pattern" yaml:"pattern"`
	Action  interface{} `json:"action" yaml:"action"`
}

// TableSource is the declarative form of a Table, typically read
// from a YAML file.
//
// Entry order in the source is match-priority order in the compiled
// Table.
type TableSource struct {
	Name    string         `json:"name,omitempty" yaml:",omitempty"`
	Doc     string         `json:"doc,omitempty" yaml:",omitempty"`
	Entries []*EntrySource `json:"entries" yaml:"entries"`
}

// Compile turns the TableSource into a Table.
//
// Named actions are resolved against the registry; inline actions
// are compiled with the given interpreters (which default to
// DefaultInterpreters).
func (ts *TableSource) Compile(ctx context.Context, registry map[string]Action, interpreters map[string]Interpreter) (Table, error) {
	table := make(Table, 0, len(ts.Entries))
	for i, es := range ts.Entries {
		pattern := match.ParsePattern(es.Pattern)
		if len(pattern) == 0 {
			return nil, fmt.Errorf("entry %d has an empty pattern", i)
		}
		action, err := es.compileAction(ctx, registry, interpreters)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, es.Pattern, err)
		}
		table = append(table, &Entry{
			Doc:     es.Doc,
			Pattern: pattern,
			Action:  action,
		})
	}
	return table, nil
}

func (es *EntrySource) compileAction(ctx context.Context, registry map[string]Action, interpreters map[string]Interpreter) (Action, error) {
	switch src := es.Action.(type) {
	case string:
		action, have := registry[src]
		if !have {
			return nil, &UnknownAction{Name: src}
		}
		return action, nil
	case map[string]interface{}:
		return actionSource(src).Compile(ctx, interpreters)
	case map[interface{}]interface{}:
		// YAML codecs give string-keyed maps this type.
		m := make(map[string]interface{}, len(src))
		for k, v := range src {
			s, is := k.(string)
			if !is {
				return nil, fmt.Errorf("non-string action property %#v", k)
			}
			m[s] = v
		}
		return actionSource(m).Compile(ctx, interpreters)
	default:
		return nil, fmt.Errorf("bad action %#v", es.Action)
	}
}

func actionSource(m map[string]interface{}) *ActionSource {
	src := &ActionSource{
		Source: m["source"],
	}
	if interpreter, is := m["interpreter"].(string); is {
		src.Interpreter = interpreter
	}
	return src
}

// LoadTable reads a YAML TableSource from a file and compiles it.
func LoadTable(ctx context.Context, filename string, registry map[string]Action, interpreters map[string]Interpreter) (Table, error) {
	bs, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var ts TableSource
	if err := yaml.Unmarshal(bs, &ts); err != nil {
		return nil, err
	}
	return ts.Compile(ctx, registry, interpreters)
}
