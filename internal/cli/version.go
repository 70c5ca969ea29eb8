package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/relnote/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information",
		Args:    noArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if plain {
				fmt.Fprintln(out, version.Version)
				return
			}
			fmt.Fprintln(out, version.String())
			fmt.Fprintf(out, "go: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print only the version number")
	return cmd
}
