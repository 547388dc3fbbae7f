package cli

import (
	"fmt"
	"net/http"

	"github.com/dcoutinho/tempora/internal/constants"
	"github.com/dcoutinho/tempora/internal/logger"
	"github.com/dcoutinho/tempora/internal/server"
)

type ServeCmd struct {
	Addr   string `help:"Listen address." default:"${listen_addr}"`
	Static string `help:"Directory of static dashboard assets to serve at /." type:"existingdir" optional:""`
}

func (c *ServeCmd) Run(ctx *Context) error {
	// Fail early with a readable error instead of a 500 on the first request.
	if _, err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("cannot serve %s: %w", ctx.Store.Path(), err)
	}

	addr := c.Addr
	if addr == "" {
		addr = constants.DefaultListenAddr
	}

	srv := server.New(ctx.Store, c.Static)
	logger.Info("Listening", "addr", addr, "data", ctx.Store.Path())
	fmt.Printf("tempora listening on %s\n", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
