package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dirant/dirant/internal/logging"
	"github.com/dirant/dirant/internal/ui"
)

func newRunCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run [query]",
		Short: "Process a query, or start the interactive session when no query is given",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
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

			if len(args) == 0 {
				return ui.Run(ctx, comps.agent)
			}

			resp := comps.agent.ProcessQuery(ctx, strings.Join(args, " "))
			if asJSON {
				out, err := json.MarshalIndent(resp, "", "  ")
				if err != nil {
					return fmt.Errorf("encode response: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			if len(resp.OperationsPerformed) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\n(tools used: %s)\n", strings.Join(resp.OperationsPerformed, ", "))
			}
			if !resp.Success {
				return fmt.Errorf("query was not completed successfully")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full structured response as JSON")
	return cmd
}
