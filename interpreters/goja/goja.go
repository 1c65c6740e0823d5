// Package goja provides a dispatch.Interpreter based on Goja, which
// is a Go implementation of ECMAScript 5.1+.
//
// See https://github.com/dop251/goja.
package goja

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tokenwise/factbot/dispatch"

	"github.com/dop251/goja"
	"github.com/gorhill/cronexpr"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Exec if the execution is
	// interrupted.
	Interrupted = errors.New(InterruptedMessage)
)

// init adds an Interpreter as one of the DefaultInterpreters.
func init() {
	dispatch.DefaultInterpreters["goja"] = NewInterpreter()
}

// Interpreter implements dispatch.Interpreter.
type Interpreter struct {
	// Testing is used to expose or hide some runtime
	// capabilities.
	Testing bool
}

// NewInterpreter makes a new Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// wrapSrc puts the action source in a function body so that the
// source can use 'return'.
func wrapSrc(src string) string {
	return fmt.Sprintf("(function() {\n%s\n}());\n", src)
}

// Compile implements the Interpreter method of the same name.
//
// The action source must be a string of ECMAScript.
func (i *Interpreter) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	src, is := code.(string)
	if !is {
		return nil, fmt.Errorf("bad action source (%T)", code)
	}
	obj, err := goja.Compile("action", wrapSrc(src), true)
	if err != nil {
		return nil, errors.New(err.Error() + ": " + src)
	}
	return obj, nil
}

func protest(o *goja.Runtime, x interface{}) {
	panic(o.ToValue(x))
}

// Exec implements the Interpreter method of the same name.
//
// The following properties are available from the runtime at _:
//
//	captures: the array of strings the pattern's wildcards captured.
//	out(s): add the given string as an answer.
//	halt(): request the end of the session.
//	cronNext(expr): the next time matching the given cron
//	  expression, as an RFC3339 string.
//
// For testing only (requires the Testing flag):
//
//	sleep(ms): sleep for the given number of milliseconds.
//
// The code's return value, if it's a string or an array, is also
// collected into the answers.
func (i *Interpreter) Exec(ctx context.Context, captures []string, src interface{}, compiled interface{}) (*dispatch.Execution, error) {
	exe := &dispatch.Execution{}

	if compiled == nil {
		var err error
		if compiled, err = i.Compile(ctx, src); err != nil {
			return nil, err
		}
	}
	p, is := compiled.(*goja.Program)
	if !is {
		return nil, fmt.Errorf("bad compilation: %T %#v", compiled, compiled)
	}

	o := goja.New()

	env := map[string]interface{}{
		"captures": captures,
	}

	env["out"] = func(x interface{}) {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		exe.Answers = append(exe.Answers, stringify(x))
	}

	env["halt"] = func() {
		exe.Halt = true
	}

	env["cronNext"] = func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		expr, is := x.(string)
		if !is {
			protest(o, "not a string")
		}
		c, err := cronexpr.Parse(expr)
		if err != nil {
			protest(o, err.Error())
		}
		return c.Next(time.Now()).UTC().Format(time.RFC3339)
	}

	if i.Testing {
		env["sleep"] = func(ms int) {
			time.Sleep(time.Duration(ms) * time.Millisecond)
		}
	}

	o.Set("_", env)

	// We want to make sure that the following goroutine is
	// terminated as soon as possible.
	ictx, cancel := context.WithCancel(ctx)
	go func() {
		<-ictx.Done()
		// If this Exec method calls cancel() after RunProgram
		// returns, then we'll never see this
		// InterruptedMessage, which is actually the behavior
		// we want.  In this case, we weren't actually
		// interrupted.
		o.Interrupt(InterruptedMessage)
	}()

	v, err := o.RunProgram(p)
	cancel()

	if err != nil {
		if _, is := err.(*goja.InterruptedError); is {
			return nil, Interrupted
		}
		return nil, err
	}

	switch vv := v.Export().(type) {
	case nil:
	case string:
		exe.Answers = append(exe.Answers, vv)
	case []interface{}:
		for _, x := range vv {
			exe.Answers = append(exe.Answers, stringify(x))
		}
	case []string:
		exe.Answers = append(exe.Answers, vv...)
	case bool:
		// An action that just reports success (or not).
	default:
		return nil, fmt.Errorf("%#v (%T) isn't an answer list", vv, vv)
	}

	return exe, nil
}

func stringify(x interface{}) string {
	if s, is := x.(string); is {
		return s
	}
	return fmt.Sprintf("%v", x)
}
