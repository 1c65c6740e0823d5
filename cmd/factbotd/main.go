// Package main is a query-answering service with pluggable IO:
// stdin/stdout, WebSockets, HTTP, or MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/tokenwise/factbot/dispatch"
	"github.com/tokenwise/factbot/qa"
	"github.com/tokenwise/factbot/wiki"

	_ "github.com/tokenwise/factbot/interpreters/goja"

	"github.com/gorhill/cronexpr"
	"go.uber.org/zap"
)

// Coupling connects the service to some IO.
type Coupling interface {
	// Serve blocks until the coupling is done or the context is
	// canceled.
	Serve(ctx context.Context) error
}

func main() {

	var (
		coupling      = flag.String("io", "std", `IO protocol: "std", "ws", "http", or "mq"`)
		tableFilename = flag.String("t", "", "optional pattern table filename (YAML)")
		cacheFilename = flag.String("cache", "", "optional page cache filename")
		sweepSchedule = flag.String("sweep", "", "optional cache sweep schedule (cron expression)")
		sweepMaxAge   = flag.Duration("max-age", 24*time.Hour, "cache entries older than this are swept")
		baseURL       = flag.String("base", wiki.DefaultBaseURL, "MediaWiki API endpoint")
		verbose       = flag.Bool("v", false, "verbose (development) logging")
		help          = flag.Bool("h", false, "get usage")
	)

	flag.Parse()

	if *help {
		flag.PrintDefaults()

		for _, io := range []string{"std", "ws", "http", "mq"} {
			fmt.Fprintf(os.Stderr, "\n-io %s:\n\n", io)
			_, fs := newCoupling(io, nil, nil)
			fs.PrintDefaults()
		}

		os.Exit(0)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := wiki.NewClient()
	client.BaseURL = *baseURL
	client.Logger = logger

	var cache *wiki.Cache
	if *cacheFilename != "" {
		if cache, err = wiki.NewCache(*cacheFilename); err != nil {
			logger.Fatal("cache", zap.Error(err))
		}
		if err = cache.Open(); err != nil {
			logger.Fatal("cache", zap.Error(err))
		}
		defer cache.Close()
		client.Cache = cache
	}

	var table dispatch.Table
	if *tableFilename == "" {
		table = qa.DefaultTable(client)
	} else {
		if table, err = dispatch.LoadTable(ctx, *tableFilename, qa.Actions(client), nil); err != nil {
			logger.Fatal("table", zap.Error(err))
		}
	}

	if *sweepSchedule != "" {
		if cache == nil {
			logger.Fatal("sweep schedule given without -cache")
		}
		expr, err := cronexpr.Parse(*sweepSchedule)
		if err != nil {
			logger.Fatal("sweep schedule", zap.Error(err))
		}
		go sweep(ctx, logger, cache, expr, *sweepMaxAge)
	}

	s := &Service{
		Table:  table,
		Logger: logger,
	}

	c, _ := newCoupling(*coupling, s, flag.Args())
	if c == nil {
		logger.Fatal("unknown io", zap.String("io", *coupling))
	}

	logger.Info("serving", zap.String("io", *coupling))
	if err := c.Serve(ctx); err != nil && err != context.Canceled {
		logger.Fatal("serve", zap.Error(err))
	}
}

func newCoupling(name string, s *Service, args []string) (Coupling, *flag.FlagSet) {
	switch name {
	case "std":
		return NewStdCoupling(s, args)
	case "ws":
		return NewWebSocketCoupling(s, args)
	case "http", "httpd":
		return NewHTTPDCoupling(s, args)
	case "mq", "mqtt":
		return NewMQTTCoupling(s, args)
	default:
		return nil, nil
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// sweep removes stale cache entries on the given schedule.
func sweep(ctx context.Context, logger *zap.Logger, cache *wiki.Cache, expr *cronexpr.Expression, maxAge time.Duration) {
	for {
		next := expr.Next(time.Now())
		if next.IsZero() {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}
		removed, err := cache.Sweep(maxAge)
		if err != nil {
			logger.Error("cache sweep", zap.Error(err))
			continue
		}
		logger.Info("cache sweep", zap.Int("removed", removed))
	}
}
