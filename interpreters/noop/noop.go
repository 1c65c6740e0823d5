// Package noop provides an interpreter that does nothing, which is
// useful for testing table compilation.
package noop

import (
	"context"

	"github.com/tokenwise/factbot/dispatch"
)

func init() {
	dispatch.DefaultInterpreters["noop"] = NewInterpreter()
}

type Interpreter struct {
}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func (i *Interpreter) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	return code, nil
}

// Exec produces no answers.
func (i *Interpreter) Exec(ctx context.Context, captures []string, code interface{}, compiled interface{}) (*dispatch.Execution, error) {
	return &dispatch.Execution{}, nil
}
