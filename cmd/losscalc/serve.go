package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/econloss/loss-calculator/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compute API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.settings.Server.Address
			}
			srv := server.New(server.Options{
				MaxBodyBytes: a.settings.Server.MaxBodyBytes(),
				MemoSize:     a.settings.Server.MemoSize,
				Engine:       a.engine(false),
				Logger:       a.logger,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err := srv.ListenAndServe(ctx, addr)
			a.logger.Info("server stopped", zap.String("op", "serve"))
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings)")
	return cmd
}
