package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dirant/dirant/internal/logging"
	"github.com/dirant/dirant/internal/mcp"
	"github.com/dirant/dirant/internal/version"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the agent as an MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// stdout belongs to the MCP transport, so logs go to stderr.
			log, err := logging.NewStderrLogger(cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck // best-effort

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			comps, err := buildComponents(ctx, cfg, log)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(comps.agent, comps.registry, mcp.Config{
				Name:    "dirant",
				Version: version.Version,
			}, log)
			return srv.ServeStdio(ctx)
		},
	}
}
