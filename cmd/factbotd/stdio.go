package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdCoupling reads query lines from stdin and writes answer lines
// to stdout.
type StdCoupling struct {
	S *Service

	// In is coupled to queries.
	In io.Reader

	// Out is coupled to answers.
	Out io.Writer

	// EchoInput writes input lines (prepended with "query") to
	// the output.
	EchoInput bool
}

// NewStdCoupling makes a StdCoupling from the given args.
//
// With nil args, just returns the FlagSet (for usage messages).
func NewStdCoupling(s *Service, args []string) (Coupling, *flag.FlagSet) {
	var (
		fs   = flag.NewFlagSet("std", flag.ExitOnError)
		echo = fs.Bool("echo", false, "echo input lines")
	)

	if args == nil {
		return nil, fs
	}

	fs.Parse(args)

	return &StdCoupling{
		S:         s,
		In:        os.Stdin,
		Out:       os.Stdout,
		EchoInput: *echo,
	}, fs
}

// Serve processes stdin until EOF, a halting query, or context
// cancellation.
func (c *StdCoupling) Serve(ctx context.Context) error {
	in := bufio.NewScanner(c.In)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !in.Scan() {
			return in.Err()
		}
		line := in.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if c.EchoInput {
			fmt.Fprintf(c.Out, "query %s\n", line)
		}

		r := c.S.Answer(ctx, line)
		if r.Error != "" {
			fmt.Fprintf(c.Out, "error %s\n", r.Error)
			continue
		}
		for _, answer := range r.Answers {
			fmt.Fprintf(c.Out, "%s\n", answer)
		}
		if r.Done {
			return nil
		}
	}
}
