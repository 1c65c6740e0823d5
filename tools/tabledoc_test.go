package tools

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tokenwise/factbot/dispatch"

	_ "github.com/tokenwise/factbot/interpreters/noop"
)

var tableYAML = `name: test
doc: A *little* test table.
entries:
  - pattern: when was % born
    doc: Birth date of somebody.
    action: birthDate
  - pattern: echo %
    action:
      interpreter: noop
      source: whatever
`

func writeTable(t *testing.T) string {
	dir, err := ioutil.TempDir("", "factbot-tabledoc")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	filename := filepath.Join(dir, "table.yaml")
	if err := ioutil.WriteFile(filename, []byte(tableYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestRenderTableHTML(t *testing.T) {
	ts, err := ReadTableSource(writeTable(t))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := RenderTableHTML(ts, &buf); err != nil {
		t.Fatal(err)
	}
	rendered := buf.String()

	for _, want := range []string{
		"when was % born",
		"birthDate",
		"<em>little</em>",
		"Birth date of somebody.",
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("rendering lacks %q:\n%s", want, rendered)
		}
	}
}

func TestReadTableSourceCompiles(t *testing.T) {
	// A table that renders should also compile (given its named
	// actions).
	ts, err := ReadTableSource(writeTable(t))
	if err != nil {
		t.Fatal(err)
	}

	registry := map[string]dispatch.Action{
		"birthDate": &dispatch.FuncAction{},
	}
	if _, err := ts.Compile(context.Background(), registry, nil); err != nil {
		t.Fatal(err)
	}
}
