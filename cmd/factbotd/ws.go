package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocketCoupling serves queries over WebSockets: one text message
// in, one JSON Response out.
type WebSocketCoupling struct {
	S *Service

	Addr string
	Path string

	upgrader websocket.Upgrader
}

// NewWebSocketCoupling makes a WebSocketCoupling from the given
// args.
//
// With nil args, just returns the FlagSet (for usage messages).
func NewWebSocketCoupling(s *Service, args []string) (Coupling, *flag.FlagSet) {
	var (
		fs   = flag.NewFlagSet("ws", flag.ExitOnError)
		addr = fs.String("addr", ":8080", "listen address")
		path = fs.String("path", "/ws", "WebSocket endpoint path")
	)

	if args == nil {
		return nil, fs
	}

	fs.Parse(args)

	return &WebSocketCoupling{
		S:    s,
		Addr: *addr,
		Path: *path,
	}, fs
}

// Serve listens until the context is canceled.
func (c *WebSocketCoupling) Serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(c.Path, func(w http.ResponseWriter, r *http.Request) {
		conn, err := c.upgrader.Upgrade(w, r, nil)
		if err != nil {
			c.S.Logger.Error("ws upgrade", zap.Error(err))
			return
		}
		defer conn.Close()

		c.S.Logger.Info("ws connected", zap.String("remote", conn.RemoteAddr().String()))

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				c.S.Logger.Info("ws read", zap.Error(err))
				return
			}
			resp := c.S.Answer(r.Context(), string(data))
			if err := conn.WriteJSON(resp); err != nil {
				c.S.Logger.Error("ws write", zap.Error(err))
				return
			}
			if resp.Done {
				return
			}
		}
	})

	server := &http.Server{
		Addr:    c.Addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
