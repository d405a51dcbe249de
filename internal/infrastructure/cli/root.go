// Package cli builds the termnamer command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/termnamer/internal/app"
	"github.com/doeshing/termnamer/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCmd wires the cobra root command. The container is built lazily
// once flags are parsed, and only for commands that need it.
func NewRootCmd() *cobra.Command {
	var (
		opts      Options
		container = &app.Container{}
		built     bool
	)

	root := &cobra.Command{
		Use:   "termnamer",
		Short: "Name terminal sessions from the commands run in them",
		Long: "termnamer watches shell commands per terminal session and, once enough\n" +
			"context has accumulated, asks a text-generation backend for a short name.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !commands.NeedsContainer(cmd) {
				return nil
			}
			c, err := app.BuildContainer(cmd.Context(), app.Options{
				ConfigPath: opts.ConfigPath,
				Verbose:    opts.Verbose,
			})
			if err != nil {
				return err
			}
			c.Clipboard = NewClipboard()
			renamer := NewStdoutRenamer(cmd.OutOrStdout())
			c.RenameService.Renamer = renamer
			c.WatchService.OnOpened = renamer.Opened
			*container = *c
			built = true
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !built {
				return nil
			}
			return container.Close()
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default ~/.termnamer/config.yaml, or $TERMNAMER_CONFIG)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Debug logging, mirrored to stderr")

	root.AddCommand(
		commands.NewWatchCommand(container),
		commands.NewNameCommand(container),
		commands.NewCleanCommand(),
		commands.NewPromptCommand(),
		commands.NewUsageCommand(container),
		commands.NewPricingCommand(container),
		commands.NewCacheCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root
}
