package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/spacetraveling"
	"github.com/eringen/spacetraveling/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the blog over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		site := cfg.site()
		if serveAddr != "" {
			site.Addr = serveAddr
		}
		app := spacetraveling.New(site, spacetraveling.DefaultViews(),
			spacetraveling.WithLogger(logger.L),
			spacetraveling.WithStaticDir(cfg.Server.StaticDir),
		)
		defer app.Close()

		errc := make(chan error, 1)
		go func() { errc <- app.Start() }()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errc:
			return err
		case sig := <-quit:
			logger.L.Infow("shutting down", "signal", sig.String())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}
