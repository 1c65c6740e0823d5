package dispatch

import (
	"context"
	"errors"
)

var (
	// InterpreterNotFound occurs when you try to Compile an
	// ActionSource, and the required interpreter isn't in the
	// given map of interpreters.
	InterpreterNotFound = errors.New("interpreter not found")

	// DefaultInterpreters will be used in ActionSource.Compile if
	// given nil interpreters.
	DefaultInterpreters = make(map[string]Interpreter)
)

// Execution is what running an action produces.
type Execution struct {
	// Answers is the ordered list of answer lines, one entry per
	// answer.
	Answers []string

	// Halt requests the end of the session.
	Halt bool
}

// NewExecution wraps answer lines in an Execution.
func NewExecution(answers ...string) *Execution {
	return &Execution{Answers: answers}
}

// Interpreter can optionally compile and execute code for Actions.
type Interpreter interface {
	// Compile can make something that helps when Exec()ing the
	// code later.
	Compile(ctx context.Context, code interface{}) (interface{}, error)

	// Exec executes the code with the query's captures.  The
	// result of a previous Compile() might be provided.
	Exec(ctx context.Context, captures []string, code interface{}, compiled interface{}) (*Execution, error)
}

// Action turns a capture set into answers (or a halt request).
type Action interface {
	Exec(ctx context.Context, captures []string) (*Execution, error)
}

// FuncAction is an Action wrapped around a Go function.
type FuncAction struct {
	F func(context.Context, []string) (*Execution, error) `json:"-" yaml:"-"`
}

// Exec runs the given action.
func (a *FuncAction) Exec(ctx context.Context, captures []string) (*Execution, error) {
	if a == nil || a.F == nil {
		return &Execution{}, nil
	}
	return a.F(ctx, captures)
}

// ActionSource can be compiled to an Action.
type ActionSource struct {
	Interpreter string      `json:"interpreter,omitempty" yaml:",omitempty"`
	Source      interface{} `json:"source"`
}

// Compile attempts to compile the ActionSource into an Action using
// the given interpreters, which defaults to DefaultInterpreters.
func (a *ActionSource) Compile(ctx context.Context, interpreters map[string]Interpreter) (Action, error) {
	if interpreters == nil {
		interpreters = DefaultInterpreters
	}

	interpreter, have := interpreters[a.Interpreter]
	if !have {
		return nil, InterpreterNotFound
	}

	compiled, err := interpreter.Compile(ctx, a.Source)
	if err != nil {
		return nil, err
	}

	return &FuncAction{
		F: func(ctx context.Context, captures []string) (*Execution, error) {
			return interpreter.Exec(ctx, captures, a.Source, compiled)
		},
	}, nil
}
