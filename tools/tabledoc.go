// Package tools has some utilities for working with pattern tables.
package tools

import (
	"fmt"
	"html"
	"io"
	"io/ioutil"

	"github.com/tokenwise/factbot/dispatch"

	md "github.com/russross/blackfriday/v2"
	"gopkg.in/yaml.v2"
)

// ReadTableSource parses a YAML pattern table file.
func ReadTableSource(filename string) (*dispatch.TableSource, error) {
	bs, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var ts dispatch.TableSource
	if err := yaml.Unmarshal(bs, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

// RenderTableHTML writes an HTML rendering of the table: its doc
// (as Markdown), then one row per entry in match-priority order.
func RenderTableHTML(ts *dispatch.TableSource, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	f(`<div class="table">`)
	if ts.Name != "" {
		f(`<h1 class="tableName">%s</h1>`, html.EscapeString(ts.Name))
	}
	if ts.Doc != "" {
		f(`<div class="tableDoc doc">%s</div>`, md.Run([]byte(ts.Doc)))
	}

	f(`<table class="entries">`)
	for i, e := range ts.Entries {
		f(`<tr class="entry"><td><div class="entryNum">%d</div></td><td>`, i)
		f(`<table>`)
		f(`<tr><td>pattern</td><td><code>%s</code></td></tr>`, html.EscapeString(e.Pattern))
		if e.Doc != "" {
			f(`<tr><td>doc</td><td><div class="entryDoc doc">%s</div></td></tr>`, md.Run([]byte(e.Doc)))
		}
		switch action := e.Action.(type) {
		case string:
			f(`<tr><td>action</td><td><code>%s</code></td></tr>`, html.EscapeString(action))
		case nil:
		default:
			f(`<tr><td>action</td><td><div class="code"><pre>%s</pre></div></td></tr>`,
				html.EscapeString(fmt.Sprintf("%v", action)))
		}
		f(`</table>`)
		f(`</td></tr>`)
	}
	f(`</table>`)
	f(`</div>`)

	return nil
}
