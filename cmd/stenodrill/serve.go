package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/stenodrill/internal/api"
	"github.com/verte-zerg/stenodrill/internal/config"
)

var serveAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	env, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer env.sync()
	applyStringConfig(cmd, "addr", &serveAddr, env.file.Server.Addr)
	if serveAddr == "" {
		return fmt.Errorf("--addr must not be empty (or set $%s)", config.EnvAddr)
	}

	st, closeStore, err := env.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(st, env.evaluator, env.log)
	if err := srv.ListenAndServe(ctx, serveAddr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
