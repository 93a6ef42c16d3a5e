package cli

import (
	"fmt"
	"net/http"

	"pillbox/internal/logger"
	"pillbox/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address for the HTTP API." default:"127.0.0.1:7420"`
}

func (c *ServeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	srv := server.New(ctx.Store)
	logger.Info("starting HTTP API", "addr", c.Addr)
	fmt.Printf("Serving pillbox API on http://%s\n", c.Addr)

	return http.ListenAndServe(c.Addr, srv.Router())
}
