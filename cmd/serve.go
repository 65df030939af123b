package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/jenkins-mcp/config"
)

var (
	transport string
	address   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server on stdio (default) or over server-sent events.

With --transport sse the server listens on --address until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&transport, "transport", "t", "", "transport to serve on (stdio or sse)")
	serveCmd.Flags().StringVarP(&address, "address", "a", "", "listen address for the sse transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	if transport != "" {
		cfg.Server.Transport = transport
	}
	if address != "" {
		cfg.Server.Address = address
	}

	logger.Info().
		Str("jenkins_url", jenkinsClient.BaseURL()).
		Str("transport", cfg.Server.Transport).
		Str("version", version).
		Int("tools", len(toolServer.Tools())).
		Msg("Starting Jenkins MCP server")

	switch cfg.Server.Transport {
	case config.TransportStdio:
		if err := toolServer.ServeStdio(); err != nil {
			return fmt.Errorf("stdio server failed: %w", err)
		}
		return nil
	case config.TransportSSE:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := toolServer.ServeSSE(ctx, cfg.Server.Address); err != nil {
			return fmt.Errorf("sse server failed: %w", err)
		}
		logger.Info().Msg("Server stopped")
		return nil
	default:
		return fmt.Errorf("unsupported transport: %s", cfg.Server.Transport)
	}
}
