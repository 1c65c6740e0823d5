package main

import (
	"context"
	"encoding/json"
	"flag"
	"io/ioutil"
	"net/http"

	"go.uber.org/zap"
)

// HTTPDCoupling serves queries over plain HTTP.
//
//	curl 'localhost:8080/query?q=when+was+ada+lovelace+born'
//
// A POST body of the form {"q":"..."} also works.
type HTTPDCoupling struct {
	S *Service

	Addr string
}

// NewHTTPDCoupling makes an HTTPDCoupling from the given args.
//
// With nil args, just returns the FlagSet (for usage messages).
func NewHTTPDCoupling(s *Service, args []string) (Coupling, *flag.FlagSet) {
	var (
		fs   = flag.NewFlagSet("http", flag.ExitOnError)
		addr = fs.String("addr", ":8080", "listen address")
	)

	if args == nil {
		return nil, fs
	}

	fs.Parse(args)

	return &HTTPDCoupling{
		S:    s,
		Addr: *addr,
	}, fs
}

func (c *HTTPDCoupling) query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" && r.Body != nil {
		body, err := ioutil.ReadAll(r.Body)
		if err == nil {
			var posted struct {
				Q string `json:"q"`
			}
			if err := json.Unmarshal(body, &posted); err == nil {
				q = posted.Q
			}
		}
	}
	if q == "" {
		http.Error(w, `need a query ("q")`, http.StatusBadRequest)
		return
	}

	resp := c.S.Answer(r.Context(), q)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		c.S.Logger.Error("http write", zap.Error(err))
	}
}

// Serve listens until the context is canceled.
//
// HTTP is sessionless, so a Done response here is just a response.
func (c *HTTPDCoupling) Serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/query", c.query)

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
