package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nick-dorsch/ticklist/internal/mcp"
	"github.com/nick-dorsch/ticklist/internal/server"
	"github.com/nick-dorsch/ticklist/internal/tasklist"
	"github.com/spf13/cobra"
)

func (a *app) webCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the task list over a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				if !cmd.Flags().Changed("port") {
					port = s.cfg.Web.Port
				}

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				srv := server.NewServer(tasklist.NewGuarded(s.ctrl), s.logger)

				errCh := make(chan error, 1)
				go func() {
					errCh <- srv.Start(fmt.Sprintf(":%s", port))
				}()

				select {
				case err := <-errCh:
					if err != nil && !errors.Is(err, http.ErrServerClosed) {
						return fmt.Errorf("web server: %w", err)
					}
					return nil
				case <-ctx.Done():
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				s.logger.Info("shutting down web api")
				return srv.Shutdown(shutdownCtx)
			})
		},
	}

	cmd.Flags().StringVar(&port, "port", "8000", "Port to listen on")
	return cmd
}

func (a *app) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the task list as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol; logs stay on stderr.
			return a.withSession(cmd, func(s *session) error {
				srv := mcp.NewServer(tasklist.NewGuarded(s.ctrl), s.logger)
				return mcp.Serve(srv)
			})
		},
	}
}
