package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/termnamer/internal/version"
)

// NewVersionCommand prints build metadata. --short prints the bare version.
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Show termnamer version information",
		Annotations: standalone(),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version.Version)
				return nil
			}
			fmt.Fprintf(out, "termnamer %s (%s/%s, %s)\n", version.Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
			if version.Commit != "" {
				fmt.Fprintf(out, "commit %s", version.Commit)
				if version.BuildDate != "" {
					fmt.Fprintf(out, ", built %s", version.BuildDate)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
