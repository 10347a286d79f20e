package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dirant/dirant/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dirant %s\n", version.Full())
		},
	}
}
