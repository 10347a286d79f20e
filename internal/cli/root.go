// Package cli wires configuration, providers, and the agent behind the
// dirant command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dirant/dirant/internal/config"
)

var (
	cfgPath string
	baseDir string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dirant",
		Short:         "Natural-language file operations agent",
		Long:          "dirant manages files in a sandboxed directory through natural-language requests, either interactively, one-shot, or as an MCP server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: dirant.yaml in the working directory)")
	root.PersistentFlags().StringVar(&baseDir, "dir", "", "base directory for file operations (overrides config)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if baseDir != "" {
		cfg.BaseDir = baseDir
	}
	return cfg, nil
}
