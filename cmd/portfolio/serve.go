package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "portfolio-generator/internal/adapter/http"
	"portfolio-generator/internal/config"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wizard as a local JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.App.Addr = addr
		}
		if err := loopbackOnly(cfg.App.Addr); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := newContainer(ctx, cfg, os.Stderr)
		defer c.Close()

		h := httpadapter.NewHandler(c.session, c.runner, c.processor, c.cards, c.jobs, c.log)
		app := httpadapter.NewApp(h)

		errCh := make(chan error, 1)
		go func() {
			c.log.Info("listening", "addr", cfg.App.Addr)
			errCh <- app.Listen(cfg.App.Addr)
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		c.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	},
}

// loopbackOnly rejects listen addresses reachable from other hosts.
func loopbackOnly(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	if host == "localhost" {
		return nil
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return nil
	}
	return fmt.Errorf("listen address %q is not a loopback address", addr)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, 127.0.0.1:3000)")
	rootCmd.AddCommand(serveCmd)
}
