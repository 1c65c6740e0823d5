package main

import (
	"context"

	"github.com/tokenwise/factbot/dispatch"

	"go.uber.org/zap"
)

// Farewell is the answer that goes with a Done response.
var Farewell = "So long!"

// Service answers queries with a fixed pattern table.
type Service struct {
	Table  dispatch.Table
	Logger *zap.Logger
}

// Response is what a coupling sends back for one query.
type Response struct {
	Answers []string `json:"answers,omitempty"`

	// Error reports a lookup failure for this query only.  The
	// session (connection, subscription) stays up.
	Error string `json:"error,omitempty"`

	// Done reports that the query asked to end the session.  What
	// that means is up to the coupling: a WebSocket closes; MQTT
	// just keeps listening.
	Done bool `json:"done,omitempty"`
}

// Answer dispatches one raw query line.
func (s *Service) Answer(ctx context.Context, line string) *Response {
	tokens := dispatch.Tokenize(line)

	o, err := s.Table.Dispatch(ctx, tokens)
	if err != nil {
		s.Logger.Info("lookup failed", zap.String("query", line), zap.Error(err))
		return &Response{Error: err.Error()}
	}
	if o.Halt {
		return &Response{Answers: []string{Farewell}, Done: true}
	}

	s.Logger.Debug("answered", zap.String("query", line), zap.Strings("answers", o.Answers))

	return &Response{Answers: o.Answers}
}
