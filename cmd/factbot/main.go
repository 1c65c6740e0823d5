// Package main is the interactive Wikipedia chatbot.
//
// Type a query like "When was Ada Lovelace born?" and get an answer
// line (or a couple of sentinel complaints).  "bye" (or EOF, or an
// interrupt) ends the session.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/tokenwise/factbot/dispatch"
	"github.com/tokenwise/factbot/qa"
	"github.com/tokenwise/factbot/wiki"

	_ "github.com/tokenwise/factbot/interpreters/goja"
)

func main() {

	var (
		tableFilename = flag.String("t", "", "optional pattern table filename (YAML)")
		cacheFilename = flag.String("cache", "", "optional page cache filename")
		baseURL       = flag.String("base", wiki.DefaultBaseURL, "MediaWiki API endpoint")
	)

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := wiki.NewClient()
	client.BaseURL = *baseURL

	if *cacheFilename != "" {
		cache, err := wiki.NewCache(*cacheFilename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			os.Exit(1)
		}
		if err := cache.Open(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			os.Exit(1)
		}
		defer cache.Close()
		client.Cache = cache
	}

	var table dispatch.Table
	if *tableFilename == "" {
		table = qa.DefaultTable(client)
	} else {
		var err error
		table, err = dispatch.LoadTable(ctx, *tableFilename, qa.Actions(client), nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Welcome to the wikipedia chatbot!\n\n")

	in := bufio.NewScanner(os.Stdin)
LOOP:
	for {
		fmt.Printf("\nYour query? ")
		if !in.Scan() {
			break
		}
		select {
		case <-ctx.Done():
			break LOOP
		default:
		}

		tokens := dispatch.Tokenize(in.Text())
		if len(tokens) == 0 {
			continue
		}

		o, err := table.Dispatch(ctx, tokens)
		if err != nil {
			// A lookup failure only spoils this one query.
			fmt.Printf("%s\n", err)
			continue
		}
		if o.Halt {
			break
		}
		for _, answer := range o.Answers {
			fmt.Printf("%s\n", answer)
		}
	}

	fmt.Printf("\nSo long!\n\n")
}
